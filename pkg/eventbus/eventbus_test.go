package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_PublishCallsAllSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32

	for i := 0; i < 3; i++ {
		bus.Subscribe("sale.created", func(ctx context.Context, event Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
	}
	bus.Subscribe("sale.cancelled", func(ctx context.Context, event Event) error {
		t.Error("не тот слушатель")
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "sale.created"})
	bus.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestBus_ListenerErrorAndPanicDoNotStopOthers(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32

	bus.Subscribe("x", func(ctx context.Context, event Event) error { return errors.New("fail") })
	bus.Subscribe("x", func(ctx context.Context, event Event) error { panic("boom") })
	bus.Subscribe("x", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "x"})
	bus.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBus_ListenerOutlivesCancelledRequestContext(t *testing.T) {
	bus := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ctxErr atomic.Value
	bus.Subscribe("x", func(ctx context.Context, event Event) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	})

	bus.Publish(ctx, testEvent{name: "x"})
	bus.Wait()

	assert.Equal(t, true, ctxErr.Load())
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "nobody"})
		bus.Wait()
	})
}

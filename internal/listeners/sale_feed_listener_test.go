package listeners

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-system/internal/events"
	"sales-system/pkg/eventbus"
)

type sentMessage struct {
	messageType string
	payload     interface{}
}

type recordingBroadcaster struct {
	sent []sentMessage
	err  error
}

func (b *recordingBroadcaster) Broadcast(messageType string, payload interface{}) error {
	b.sent = append(b.sent, sentMessage{messageType: messageType, payload: payload})
	return b.err
}

func TestSaleFeedListener_ForwardsEventUnderItsName(t *testing.T) {
	hub := &recordingBroadcaster{}
	l := NewSaleFeedListener(hub, zap.NewNop())

	event := events.SaleCancelledEvent{SaleID: uuid.New(), SaleNumber: "S-7", OccurredAt: time.Now()}
	require.NoError(t, l.handle(context.Background(), event))

	require.Len(t, hub.sent, 1)
	assert.Equal(t, events.SaleCancelled, hub.sent[0].messageType)
	assert.Equal(t, event, hub.sent[0].payload)
}

func TestSaleFeedListener_ReturnsBroadcastError(t *testing.T) {
	hub := &recordingBroadcaster{err: errors.New("hub stopped")}
	l := NewSaleFeedListener(hub, zap.NewNop())

	err := l.handle(context.Background(), events.SaleModifiedEvent{SaleID: uuid.New()})
	assert.EqualError(t, err, "hub stopped")
}

func TestSaleFeedListener_RegisterSubscribesToSaleEvents(t *testing.T) {
	hub := &recordingBroadcaster{}
	bus := eventbus.New(zap.NewNop())
	NewSaleFeedListener(hub, zap.NewNop()).Register(bus)

	bus.Publish(context.Background(), events.SaleCreatedEvent{SaleID: uuid.New()})
	bus.Wait()

	require.Len(t, hub.sent, 1)
	assert.Equal(t, events.SaleCreated, hub.sent[0].messageType)
}

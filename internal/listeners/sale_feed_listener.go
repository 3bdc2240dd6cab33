package listeners

import (
	"context"

	"go.uber.org/zap"

	"sales-system/internal/events"
	"sales-system/pkg/eventbus"
)

// Broadcaster рассылает сообщение всем подписчикам живой ленты.
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) error
}

// SaleFeedListener пересылает события продаж в WebSocket-ленту.
type SaleFeedListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewSaleFeedListener(hub Broadcaster, logger *zap.Logger) *SaleFeedListener {
	return &SaleFeedListener{hub: hub, logger: logger}
}

func (l *SaleFeedListener) Register(bus *eventbus.Bus) {
	for _, name := range []string{events.SaleCreated, events.SaleModified, events.SaleCancelled, events.SaleItemCancelled} {
		bus.Subscribe(name, l.handle)
	}
}

func (l *SaleFeedListener) handle(_ context.Context, event eventbus.Event) error {
	if err := l.hub.Broadcast(event.Name(), event); err != nil {
		l.logger.Warn("Не удалось отправить событие в ленту продаж",
			zap.String("event", event.Name()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

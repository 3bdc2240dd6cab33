package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sales-system/internal/events"
	"sales-system/pkg/eventbus"
)

// SaleListener пишет события продаж в журнал.
type SaleListener struct {
	logger *zap.Logger
}

func NewSaleListener(logger *zap.Logger) *SaleListener {
	return &SaleListener{logger: logger}
}

func (l *SaleListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.SaleCreated, l.handle)
	bus.Subscribe(events.SaleModified, l.handle)
	bus.Subscribe(events.SaleCancelled, l.handle)
	bus.Subscribe(events.SaleItemCancelled, l.handle)
}

func (l *SaleListener) handle(_ context.Context, event eventbus.Event) error {
	switch e := event.(type) {
	case events.SaleCreatedEvent:
		l.logger.Info("Продажа создана",
			zap.String("sale_id", e.SaleID.String()),
			zap.String("sale_number", e.SaleNumber),
			zap.String("customer_id", e.CustomerID.String()),
			zap.String("branch_id", e.BranchID.String()),
			zap.Int("items", e.ItemsCount),
			zap.String("total", e.TotalAmount.StringFixed(2)),
		)
	case events.SaleModifiedEvent:
		l.logger.Info("Продажа изменена",
			zap.String("sale_id", e.SaleID.String()),
			zap.String("sale_number", e.SaleNumber),
			zap.Int("items", e.ItemsCount),
			zap.String("total", e.TotalAmount.StringFixed(2)),
		)
	case events.SaleCancelledEvent:
		l.logger.Info("Продажа отменена",
			zap.String("sale_id", e.SaleID.String()),
			zap.String("sale_number", e.SaleNumber),
		)
	case events.SaleItemCancelledEvent:
		l.logger.Info("Позиция продажи отменена",
			zap.String("sale_id", e.SaleID.String()),
			zap.String("sale_number", e.SaleNumber),
			zap.String("item_id", e.ItemID.String()),
			zap.String("product_id", e.ProductID.String()),
			zap.String("new_total", e.NewSaleTotal.StringFixed(2)),
		)
	default:
		return fmt.Errorf("неизвестное событие: %s", event.Name())
	}
	return nil
}

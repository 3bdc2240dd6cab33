package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SaleCreated       = "sale.created"
	SaleModified      = "sale.modified"
	SaleCancelled     = "sale.cancelled"
	SaleItemCancelled = "sale.item_cancelled"
)

// SaleCreatedEvent возникает после коммита новой продажи.
type SaleCreatedEvent struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	ItemsCount  int             `json:"items_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func (e SaleCreatedEvent) Name() string { return SaleCreated }

type SaleModifiedEvent struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	ItemsCount  int             `json:"items_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func (e SaleModifiedEvent) Name() string { return SaleModified }

type SaleCancelledEvent struct {
	SaleID     uuid.UUID `json:"sale_id"`
	SaleNumber string    `json:"sale_number"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e SaleCancelledEvent) Name() string { return SaleCancelled }

// SaleItemCancelledEvent несёт пересчитанный итог продажи.
type SaleItemCancelledEvent struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	SaleNumber   string          `json:"sale_number"`
	ItemID       uuid.UUID       `json:"item_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	NewSaleTotal decimal.Decimal `json:"new_sale_total"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func (e SaleItemCancelledEvent) Name() string { return SaleItemCancelled }

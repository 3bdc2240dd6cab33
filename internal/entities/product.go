package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sales-system/pkg/types"
)

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`

	types.BaseEntity
}

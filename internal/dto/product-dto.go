package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

type CreateProductDTO struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Code          string          `json:"code" validate:"required,max=50"`
	Description   string          `json:"description" validate:"omitempty,max=500"`
	Category      string          `json:"category" validate:"omitempty,max=50"`
	Price         decimal.Decimal `json:"price" validate:"gt=0,money"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductDTO struct {
	Name          null.String         `json:"name" validate:"omitempty,min=1,max=100"`
	Code          null.String         `json:"code" validate:"omitempty,min=1,max=50"`
	Description   null.String         `json:"description" validate:"omitempty,max=500"`
	Category      null.String         `json:"category" validate:"omitempty,max=50"`
	Price         decimal.NullDecimal `json:"price" validate:"omitempty,gt=0,money"`
	StockQuantity null.Int            `json:"stock_quantity" validate:"omitempty,gte=0"`
	IsActive      null.Bool           `json:"is_active"`
}

type ProductDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

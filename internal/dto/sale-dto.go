package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleItemInputDTO struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=1,lte=20"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gt=0,money"`
}

type CreateSaleDTO struct {
	SaleNumber string             `json:"sale_number" validate:"required,max=50"`
	SaleDate   string             `json:"sale_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CustomerID uuid.UUID          `json:"customer_id" validate:"required"`
	BranchID   uuid.UUID          `json:"branch_id" validate:"required"`
	Items      []SaleItemInputDTO `json:"items" validate:"required,min=1,max=100,dive"`
}

// UpdateSaleDTO полностью заменяет шапку и позиции активной продажи.
type UpdateSaleDTO struct {
	SaleDate   string             `json:"sale_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CustomerID uuid.UUID          `json:"customer_id" validate:"required"`
	BranchID   uuid.UUID          `json:"branch_id" validate:"required"`
	Items      []SaleItemInputDTO `json:"items" validate:"required,min=1,max=100,dive"`
}

type SaleItemDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

type SaleDTO struct {
	ID           string          `json:"id"`
	SaleNumber   string          `json:"sale_number"`
	SaleDate     string          `json:"sale_date"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	BranchID     string          `json:"branch_id"`
	BranchName   string          `json:"branch_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	Items        []SaleItemDTO   `json:"items"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type SalesReportFilterDTO struct {
	DateFrom string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	BranchID string `query:"branch_id" validate:"omitempty,uuid"`
	Status   string `query:"status" validate:"omitempty,oneof=Active Cancelled"`
	Format   string `query:"format" validate:"omitempty,oneof=json xlsx"`
}

type SalesReportRowDTO struct {
	SaleNumber   string          `json:"sale_number"`
	SaleDate     string          `json:"sale_date"`
	BranchName   string          `json:"branch_name"`
	CustomerName string          `json:"customer_name"`
	ItemsCount   int             `json:"items_count"`
	Discount     decimal.Decimal `json:"discount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
}

type SalesReportDTO struct {
	Rows        []SalesReportRowDTO `json:"rows"`
	SalesCount  int                 `json:"sales_count"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesReportFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	BranchID *uuid.UUID
	Status   *SaleStatus
}

// SalesReportRow описывает одну продажу с агрегатами по позициям.
// ItemsCount и Discount считаются по активным позициям, для отменённой продажи по всем.
type SalesReportRow struct {
	SaleNumber   string
	SaleDate     time.Time
	BranchName   string
	CustomerName string
	ItemsCount   int
	Discount     decimal.Decimal
	TotalAmount  decimal.Decimal
	Status       SaleStatus
}

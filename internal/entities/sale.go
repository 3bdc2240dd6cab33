package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/types"
)

type SaleStatus string

const (
	SaleStatusActive    SaleStatus = "Active"
	SaleStatusCancelled SaleStatus = "Cancelled"
)

type SaleItemStatus string

const (
	SaleItemStatusActive    SaleItemStatus = "Active"
	SaleItemStatusCancelled SaleItemStatus = "Cancelled"
)

// Пороги скидок по количеству одинаковых товаров в позиции.
const (
	MinQuantityForDiscount = 4
	MinQuantityForBulk     = 10
	MaxQuantityPerProduct  = 20
)

var (
	discountRate     = decimal.RequireFromString("0.10")
	bulkDiscountRate = decimal.RequireFromString("0.20")
)

type Sale struct {
	ID           uuid.UUID
	SaleNumber   string
	SaleDate     time.Time
	CustomerID   uuid.UUID
	CustomerName string
	BranchID     uuid.UUID
	BranchName   string
	TotalAmount  decimal.Decimal
	Status       SaleStatus
	Items        []SaleItem

	types.BaseEntity
}

type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalAmount decimal.Decimal
	Status      SaleItemStatus

	types.BaseEntity
}

// DiscountRate возвращает долю скидки для количества. Больше MaxQuantityPerProduct продавать нельзя.
func DiscountRate(quantity int) (decimal.Decimal, error) {
	switch {
	case quantity < 1:
		return decimal.Zero, apperrors.ErrInvalidQuantity
	case quantity > MaxQuantityPerProduct:
		return decimal.Zero, apperrors.ErrQuantityLimitExceeded
	case quantity >= MinQuantityForBulk:
		return bulkDiscountRate, nil
	case quantity >= MinQuantityForDiscount:
		return discountRate, nil
	default:
		return decimal.Zero, nil
	}
}

// NewSaleItem считает скидку и сумму позиции.
func NewSaleItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (SaleItem, error) {
	rate, err := DiscountRate(quantity)
	if err != nil {
		return SaleItem{}, err
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount := gross.Mul(rate).Round(2)

	return SaleItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Discount:    discount,
		TotalAmount: gross.Sub(discount).Round(2),
		Status:      SaleItemStatusActive,
	}, nil
}

// RecalculateTotal суммирует только активные позиции.
func (s *Sale) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		if item.Status == SaleItemStatusActive {
			total = total.Add(item.TotalAmount)
		}
	}
	s.TotalAmount = total.Round(2)
}

func (s *Sale) IsCancelled() bool {
	return s.Status == SaleStatusCancelled
}

// Cancel отменяет продажу вместе со всеми позициями.
func (s *Sale) Cancel() error {
	if s.IsCancelled() {
		return apperrors.ErrSaleAlreadyCancelled
	}
	s.Status = SaleStatusCancelled
	for i := range s.Items {
		s.Items[i].Status = SaleItemStatusCancelled
	}
	return nil
}

// CancelItem отменяет одну позицию и пересчитывает итог.
func (s *Sale) CancelItem(itemID uuid.UUID) (*SaleItem, error) {
	if s.IsCancelled() {
		return nil, apperrors.ErrSaleAlreadyCancelled
	}
	for i := range s.Items {
		if s.Items[i].ID != itemID {
			continue
		}
		if s.Items[i].Status == SaleItemStatusCancelled {
			return nil, apperrors.ErrItemAlreadyCancelled
		}
		s.Items[i].Status = SaleItemStatusCancelled
		s.RecalculateTotal()
		return &s.Items[i], nil
	}
	return nil, apperrors.ErrNotFound
}

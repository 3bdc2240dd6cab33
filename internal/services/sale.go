package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/entities"
	"sales-system/internal/events"
	"sales-system/internal/repositories"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/eventbus"
	"sales-system/pkg/types"
	"sales-system/pkg/validation"
)

// EventPublisher публикует события после коммита.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type SaleServiceInterface interface {
	GetSales(ctx context.Context, filter types.Filter) ([]dto.SaleDTO, uint64, error)
	FindSale(ctx context.Context, id uuid.UUID) (*dto.SaleDTO, error)
	CreateSale(ctx context.Context, payload dto.CreateSaleDTO) (*dto.SaleDTO, error)
	UpdateSale(ctx context.Context, id uuid.UUID, payload dto.UpdateSaleDTO) (*dto.SaleDTO, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
	CancelSale(ctx context.Context, id uuid.UUID) (*dto.SaleDTO, error)
	CancelSaleItem(ctx context.Context, saleID, itemID uuid.UUID) (*dto.SaleDTO, error)
}

type SaleService struct {
	saleRepo     repositories.SaleRepositoryInterface
	customerRepo repositories.CustomerRepositoryInterface
	branchRepo   repositories.BranchRepositoryInterface
	productRepo  repositories.ProductRepositoryInterface
	txManager    repositories.TxManagerInterface
	publisher    EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewSaleService(
	saleRepo repositories.SaleRepositoryInterface,
	customerRepo repositories.CustomerRepositoryInterface,
	branchRepo repositories.BranchRepositoryInterface,
	productRepo repositories.ProductRepositoryInterface,
	txManager repositories.TxManagerInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) SaleServiceInterface {
	return &SaleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

func toSaleItemResponseDTO(i entities.SaleItem) dto.SaleItemDTO {
	return dto.SaleItemDTO{
		ID:          i.ID.String(),
		ProductID:   i.ProductID.String(),
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Discount:    i.Discount,
		TotalAmount: i.TotalAmount,
		Status:      string(i.Status),
	}
}

func toSaleResponseDTO(s entities.Sale) dto.SaleDTO {
	items := make([]dto.SaleItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, toSaleItemResponseDTO(item))
	}
	return dto.SaleDTO{
		ID:           s.ID.String(),
		SaleNumber:   s.SaleNumber,
		SaleDate:     s.SaleDate.Format(dto.TimeLayout),
		CustomerID:   s.CustomerID.String(),
		CustomerName: s.CustomerName,
		BranchID:     s.BranchID.String(),
		BranchName:   s.BranchName,
		TotalAmount:  s.TotalAmount,
		Status:       string(s.Status),
		Items:        items,
		CreatedAt:    s.CreatedAt.Format(dto.TimeLayout),
		UpdatedAt:    s.UpdatedAt.Format(dto.TimeLayout),
	}
}

func (s *SaleService) GetSales(ctx context.Context, filter types.Filter) ([]dto.SaleDTO, uint64, error) {
	sales, total, err := s.saleRepo.GetSales(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.SaleDTO, 0, len(sales))
	for _, sale := range sales {
		result = append(result, toSaleResponseDTO(sale))
	}
	return result, total, nil
}

func (s *SaleService) FindSale(ctx context.Context, id uuid.UUID) (*dto.SaleDTO, error) {
	sale, err := s.saleRepo.FindSale(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := toSaleResponseDTO(*sale)
	return &res, nil
}

func (s *SaleService) parseSaleDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.now().UTC(), nil
	}
	t, err := time.Parse(dto.TimeLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "sale_date",
			Message: "Неверный формат даты",
		})
	}
	return t.UTC(), nil
}

func inactiveReference(message string) error {
	return apperrors.NewHttpError(http.StatusUnprocessableEntity, message, apperrors.ErrInactiveReference, nil)
}

// resolveParties находит клиента и филиал и подставляет их имена в продажу.
func (s *SaleService) resolveParties(ctx context.Context, sale *entities.Sale) error {
	var fields []apperrors.FieldError

	customer, err := s.customerRepo.FindCustomer(ctx, sale.CustomerID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		fields = append(fields, apperrors.FieldError{Field: "customer_id", Message: "Клиент не найден"})
	case err != nil:
		return err
	}

	branch, err := s.branchRepo.FindBranch(ctx, sale.BranchID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		fields = append(fields, apperrors.FieldError{Field: "branch_id", Message: "Филиал не найден"})
	case err != nil:
		return err
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError(fields...)
	}
	if !customer.IsActive {
		return inactiveReference("Клиент не активен")
	}
	if !branch.IsActive {
		return inactiveReference("Филиал не активен")
	}

	sale.CustomerName = customer.Name
	sale.BranchName = branch.Name
	return nil
}

// buildItems считает позиции по правилам скидок. Ошибки собираются по всем позициям сразу.
// Скидка и лимит считаются по количеству одинаковых товаров, поэтому товар может встречаться в продаже только одной позицией.
func (s *SaleService) buildItems(ctx context.Context, inputs []dto.SaleItemInputDTO) ([]entities.SaleItem, error) {
	var fields []apperrors.FieldError
	items := make([]entities.SaleItem, 0, len(inputs))
	var inactive []string
	seen := make(map[uuid.UUID]int, len(inputs))

	for i, in := range inputs {
		if first, ok := seen[in.ProductID]; ok {
			fields = append(fields, apperrors.FieldError{
				Field:   fmt.Sprintf("items[%d].product_id", i),
				Message: fmt.Sprintf("Товар уже указан в позиции items[%d], укажите общее количество в одной позиции", first),
			})
			continue
		}
		seen[in.ProductID] = i

		if !validation.IsMoney(in.UnitPrice) {
			fields = append(fields, apperrors.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Message: "Цена должна быть больше нуля и содержать не более двух знаков после запятой",
			})
			continue
		}

		product, err := s.productRepo.FindProduct(ctx, in.ProductID)
		if errors.Is(err, apperrors.ErrNotFound) {
			fields = append(fields, apperrors.FieldError{
				Field:   fmt.Sprintf("items[%d].product_id", i),
				Message: "Товар не найден",
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			inactive = append(inactive, product.Name)
			continue
		}

		item, err := entities.NewSaleItem(product.ID, product.Name, in.Quantity, in.UnitPrice)
		if err != nil {
			fields = append(fields, apperrors.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: err.Error(),
			})
			continue
		}
		items = append(items, item)
	}

	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}
	if len(inactive) > 0 {
		return nil, inactiveReference("Товар не активен: " + strings.Join(inactive, ", "))
	}
	return items, nil
}

func (s *SaleService) CreateSale(ctx context.Context, payload dto.CreateSaleDTO) (*dto.SaleDTO, error) {
	saleDate, err := s.parseSaleDate(payload.SaleDate)
	if err != nil {
		return nil, err
	}

	sale := &entities.Sale{
		ID:         uuid.New(),
		SaleNumber: strings.TrimSpace(payload.SaleNumber),
		SaleDate:   saleDate,
		CustomerID: payload.CustomerID,
		BranchID:   payload.BranchID,
		Status:     entities.SaleStatusActive,
	}
	if err := s.resolveParties(ctx, sale); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, payload.Items)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	sale.RecalculateTotal()

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.saleRepo.CreateSale(ctx, tx, sale)
	})
	if err != nil {
		s.logger.Error("Ошибка при создании продажи", zap.String("sale_number", sale.SaleNumber), zap.Error(err))
		return nil, err
	}

	s.publisher.Publish(ctx, events.SaleCreatedEvent{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		CustomerID:  sale.CustomerID,
		BranchID:    sale.BranchID,
		ItemsCount:  len(sale.Items),
		TotalAmount: sale.TotalAmount,
		OccurredAt:  s.now(),
	})

	return s.FindSale(ctx, sale.ID)
}

func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, payload dto.UpdateSaleDTO) (*dto.SaleDTO, error) {
	saleDate, err := s.parseSaleDate(payload.SaleDate)
	if err != nil {
		return nil, err
	}

	draft := &entities.Sale{CustomerID: payload.CustomerID, BranchID: payload.BranchID}
	if err := s.resolveParties(ctx, draft); err != nil {
		return nil, err
	}
	items, err := s.buildItems(ctx, payload.Items)
	if err != nil {
		return nil, err
	}

	var updated *entities.Sale
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		sale, err := s.saleRepo.FindSale(ctx, tx, id)
		if err != nil {
			return err
		}
		if sale.IsCancelled() {
			return apperrors.ErrSaleAlreadyCancelled
		}

		sale.SaleDate = saleDate
		sale.CustomerID = draft.CustomerID
		sale.CustomerName = draft.CustomerName
		sale.BranchID = draft.BranchID
		sale.BranchName = draft.BranchName
		sale.Items = items
		sale.RecalculateTotal()

		if err := s.saleRepo.UpdateSale(ctx, tx, sale); err != nil {
			return err
		}
		updated = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.SaleModifiedEvent{
		SaleID:      updated.ID,
		SaleNumber:  updated.SaleNumber,
		ItemsCount:  len(updated.Items),
		TotalAmount: updated.TotalAmount,
		OccurredAt:  s.now(),
	})

	return s.FindSale(ctx, id)
}

func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if err := s.saleRepo.DeleteSale(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Продажа удалена", zap.String("id", id.String()))
	return nil
}

func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) (*dto.SaleDTO, error) {
	var cancelled *entities.Sale
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		sale, err := s.saleRepo.FindSale(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := sale.Cancel(); err != nil {
			return err
		}
		if err := s.saleRepo.SaveStatuses(ctx, tx, sale); err != nil {
			return err
		}
		cancelled = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.SaleCancelledEvent{
		SaleID:     cancelled.ID,
		SaleNumber: cancelled.SaleNumber,
		OccurredAt: s.now(),
	})

	return s.FindSale(ctx, id)
}

func (s *SaleService) CancelSaleItem(ctx context.Context, saleID, itemID uuid.UUID) (*dto.SaleDTO, error) {
	var event events.SaleItemCancelledEvent
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		sale, err := s.saleRepo.FindSale(ctx, tx, saleID)
		if err != nil {
			return err
		}
		item, err := sale.CancelItem(itemID)
		if err != nil {
			return err
		}
		if err := s.saleRepo.SaveStatuses(ctx, tx, sale); err != nil {
			return err
		}
		event = events.SaleItemCancelledEvent{
			SaleID:       sale.ID,
			SaleNumber:   sale.SaleNumber,
			ItemID:       item.ID,
			ProductID:    item.ProductID,
			NewSaleTotal: sale.TotalAmount,
			OccurredAt:   s.now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, event)

	return s.FindSale(ctx, saleID)
}

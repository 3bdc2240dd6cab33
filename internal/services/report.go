package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/entities"
	"sales-system/internal/repositories"
	apperrors "sales-system/pkg/errors"
)

type ReportServiceInterface interface {
	GetSalesReport(ctx context.Context, filter dto.SalesReportFilterDTO) (*dto.SalesReportDTO, error)
}

type ReportService struct {
	saleRepo repositories.SaleRepositoryInterface
	logger   *zap.Logger
}

func NewReportService(saleRepo repositories.SaleRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{saleRepo: saleRepo, logger: logger}
}

// toReportFilter переводит параметры запроса в фильтр. date_to включает весь указанный день.
func toReportFilter(in dto.SalesReportFilterDTO) (entities.SalesReportFilter, error) {
	var filter entities.SalesReportFilter
	var fields []apperrors.FieldError

	if in.DateFrom != "" {
		t, err := time.Parse(dto.DateLayout, in.DateFrom)
		if err != nil {
			fields = append(fields, apperrors.FieldError{Field: "date_from", Message: "Неверный формат даты"})
		} else {
			filter.DateFrom = &t
		}
	}
	if in.DateTo != "" {
		t, err := time.Parse(dto.DateLayout, in.DateTo)
		if err != nil {
			fields = append(fields, apperrors.FieldError{Field: "date_to", Message: "Неверный формат даты"})
		} else {
			end := t.AddDate(0, 0, 1)
			filter.DateTo = &end
		}
	}
	if in.BranchID != "" {
		id, err := uuid.Parse(in.BranchID)
		if err != nil {
			fields = append(fields, apperrors.FieldError{Field: "branch_id", Message: "Неверный идентификатор"})
		} else {
			filter.BranchID = &id
		}
	}
	if in.Status != "" {
		status := entities.SaleStatus(in.Status)
		filter.Status = &status
	}
	if filter.DateFrom != nil && filter.DateTo != nil && !filter.DateFrom.Before(*filter.DateTo) {
		fields = append(fields, apperrors.FieldError{Field: "date_to", Message: "Дата окончания раньше даты начала"})
	}

	if len(fields) > 0 {
		return filter, apperrors.NewValidationError(fields...)
	}
	return filter, nil
}

func (s *ReportService) GetSalesReport(ctx context.Context, in dto.SalesReportFilterDTO) (*dto.SalesReportDTO, error) {
	filter, err := toReportFilter(in)
	if err != nil {
		return nil, err
	}

	rows, err := s.saleRepo.GetSalesReport(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка при построении отчёта по продажам", zap.Error(err))
		return nil, err
	}

	report := &dto.SalesReportDTO{
		Rows:        make([]dto.SalesReportRowDTO, 0, len(rows)),
		SalesCount:  len(rows),
		TotalAmount: decimal.Zero,
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, dto.SalesReportRowDTO{
			SaleNumber:   r.SaleNumber,
			SaleDate:     r.SaleDate.Format(dto.TimeLayout),
			BranchName:   r.BranchName,
			CustomerName: r.CustomerName,
			ItemsCount:   r.ItemsCount,
			Discount:     r.Discount,
			TotalAmount:  r.TotalAmount,
			Status:       string(r.Status),
		})
		if r.Status == entities.SaleStatusActive {
			report.TotalAmount = report.TotalAmount.Add(r.TotalAmount)
		}
	}
	return report, nil
}

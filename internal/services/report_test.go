package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/entities"
	apperrors "sales-system/pkg/errors"
)

func TestToReportFilter_DateToIsInclusive(t *testing.T) {
	filter, err := toReportFilter(dto.SalesReportFilterDTO{
		DateFrom: "2026-03-01",
		DateTo:   "2026-03-31",
		Status:   "Active",
	})
	require.NoError(t, err)

	require.NotNil(t, filter.DateFrom)
	require.NotNil(t, filter.DateTo)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *filter.DateTo)
	assert.Equal(t, entities.SaleStatusActive, *filter.Status)
	assert.Nil(t, filter.BranchID)
}

func TestToReportFilter_Errors(t *testing.T) {
	_, err := toReportFilter(dto.SalesReportFilterDTO{
		DateFrom: "2026-03-10",
		DateTo:   "2026-03-01",
		BranchID: "not-a-uuid",
	})

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	fields := map[string]bool{}
	for _, f := range vErr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["branch_id"])
	assert.True(t, fields["date_to"])
}

func TestReportService_TotalsOnlyActiveSales(t *testing.T) {
	repo := newFakeSaleRepo()
	repo.reportRows = []entities.SalesReportRow{
		{SaleNumber: "S-1", SaleDate: testNow, TotalAmount: decimal.NewFromInt(100), Status: entities.SaleStatusActive},
		{SaleNumber: "S-2", SaleDate: testNow, TotalAmount: decimal.NewFromInt(40), Status: entities.SaleStatusCancelled},
		{SaleNumber: "S-3", SaleDate: testNow, TotalAmount: decimal.RequireFromString("0.5"), Status: entities.SaleStatusActive},
	}
	svc := NewReportService(repo, zap.NewNop())

	report, err := svc.GetSalesReport(context.Background(), dto.SalesReportFilterDTO{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.SalesCount)
	assert.Len(t, report.Rows, 3)
	assert.True(t, decimal.RequireFromString("100.5").Equal(report.TotalAmount), report.TotalAmount.String())
	assert.Equal(t, "Cancelled", report.Rows[1].Status)
}

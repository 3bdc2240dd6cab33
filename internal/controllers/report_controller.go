package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/services"
	"sales-system/pkg/api"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetSalesReport отдаёт отчёт в JSON или, при format=xlsx, файлом Excel.
func (c *ReportController) GetSalesReport(ctx echo.Context) error {
	var filter dto.SalesReportFilterDTO
	if err := bindAndValidate(ctx, &filter); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.GetSalesReport(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if filter.Format != "xlsx" {
		return api.SuccessOne(ctx, http.StatusOK, "Отчёт по продажам сформирован", report)
	}

	f, err := buildSalesWorkbook(report)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("sales_report_%s.xlsx", time.Now().Format(dto.DateLayout))
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

const salesSheet = "Продажи"

var salesReportHeaders = []interface{}{
	"№", "Номер продажи", "Дата", "Филиал", "Клиент", "Позиций", "Скидка", "Сумма", "Статус",
}

func buildSalesWorkbook(report *dto.SalesReportDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(salesSheet, "A1", &salesReportHeaders); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(salesSheet, "A1", "I1", bold); err != nil {
		return nil, err
	}

	for i, r := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			i + 1, r.SaleNumber, r.SaleDate, r.BranchName, r.CustomerName, r.ItemsCount,
			r.Discount.InexactFloat64(), r.TotalAmount.InexactFloat64(), r.Status,
		}
		if err := f.SetSheetRow(salesSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	totalRow := len(report.Rows) + 2
	totalLabel, _ := excelize.CoordinatesToCellName(7, totalRow)
	totalValue, _ := excelize.CoordinatesToCellName(8, totalRow)
	if err := f.SetCellValue(salesSheet, totalLabel, "Итого"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(salesSheet, totalValue, report.TotalAmount.InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(salesSheet, totalLabel, totalValue, bold); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(salesSheet, "B", "C", 22)
	_ = f.SetColWidth(salesSheet, "D", "E", 30)
	return f, nil
}

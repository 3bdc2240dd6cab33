package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/services"
	"sales-system/pkg/api"
	"sales-system/pkg/utils"
)

type SaleController struct {
	saleService services.SaleServiceInterface
	logger      *zap.Logger
}

func NewSaleController(saleService services.SaleServiceInterface, logger *zap.Logger) *SaleController {
	return &SaleController{saleService: saleService, logger: logger}
}

func (c *SaleController) GetSales(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	sales, total, err := c.saleService.GetSales(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список продаж успешно получен", sales, total, filter.Page, filter.Limit)
}

func (c *SaleController) FindSale(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID продажи")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.saleService.FindSale(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Продажа успешно найдена", res)
}

func (c *SaleController) CreateSale(ctx echo.Context) error {
	var payload dto.CreateSaleDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.saleService.CreateSale(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Продажа успешно создана", res)
}

func (c *SaleController) UpdateSale(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID продажи")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateSaleDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.saleService.UpdateSale(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Продажа успешно обновлена", res)
}

func (c *SaleController) DeleteSale(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID продажи")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.saleService.DeleteSale(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *SaleController) CancelSale(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID продажи")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.saleService.CancelSale(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Продажа отменена", res)
}

func (c *SaleController) CancelSaleItem(ctx echo.Context) error {
	saleID, err := parseUUIDParam(ctx, "id", "Некорректный ID продажи")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	itemID, err := parseUUIDParam(ctx, "itemId", "Некорректный ID позиции")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.saleService.CancelSaleItem(ctx.Request().Context(), saleID, itemID)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Позиция продажи отменена", res)
}

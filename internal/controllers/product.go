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

type ProductController struct {
	productService services.ProductServiceInterface
	logger         *zap.Logger
}

func NewProductController(productService services.ProductServiceInterface, logger *zap.Logger) *ProductController {
	return &ProductController{productService: productService, logger: logger}
}

func (c *ProductController) GetProducts(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	products, total, err := c.productService.GetProducts(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список товаров успешно получен", products, total, filter.Page, filter.Limit)
}

func (c *ProductController) FindProduct(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID товара")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.productService.FindProduct(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Товар успешно найден", res)
}

func (c *ProductController) CreateProduct(ctx echo.Context) error {
	var payload dto.CreateProductDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.productService.CreateProduct(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Товар успешно создан", res)
}

func (c *ProductController) UpdateProduct(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID товара")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateProductDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.productService.UpdateProduct(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Товар успешно обновлён", res)
}

func (c *ProductController) DeleteProduct(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID товара")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.productService.DeleteProduct(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

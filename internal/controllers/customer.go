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

type CustomerController struct {
	customerService services.CustomerServiceInterface
	logger          *zap.Logger
}

func NewCustomerController(customerService services.CustomerServiceInterface, logger *zap.Logger) *CustomerController {
	return &CustomerController{customerService: customerService, logger: logger}
}

func (c *CustomerController) GetCustomers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	customers, total, err := c.customerService.GetCustomers(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список клиентов успешно получен", customers, total, filter.Page, filter.Limit)
}

func (c *CustomerController) FindCustomer(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID клиента")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.customerService.FindCustomer(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Клиент успешно найден", res)
}

func (c *CustomerController) CreateCustomer(ctx echo.Context) error {
	var payload dto.CreateCustomerDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.customerService.CreateCustomer(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Клиент успешно создан", res)
}

func (c *CustomerController) UpdateCustomer(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID клиента")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCustomerDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.customerService.UpdateCustomer(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Клиент успешно обновлён", res)
}

func (c *CustomerController) DeleteCustomer(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID клиента")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.customerService.DeleteCustomer(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

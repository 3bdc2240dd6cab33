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

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	users, total, err := c.userService.GetUsers(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список пользователей успешно получен", users, total, filter.Page, filter.Limit)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID пользователя")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.FindUser(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Пользователь успешно найден", res)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.CreateUser(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Пользователь успешно создан", res)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID пользователя")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUserDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.UpdateUser(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Пользователь успешно обновлён", res)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID пользователя")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.DeleteUser(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

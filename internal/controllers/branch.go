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

type BranchController struct {
	branchService services.BranchServiceInterface
	logger        *zap.Logger
}

func NewBranchController(branchService services.BranchServiceInterface, logger *zap.Logger) *BranchController {
	return &BranchController{branchService: branchService, logger: logger}
}

func (c *BranchController) GetBranches(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	branches, total, err := c.branchService.GetBranches(ctx.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessList(ctx, "Список филиалов успешно получен", branches, total, filter.Page, filter.Limit)
}

func (c *BranchController) FindBranch(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID филиала")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.branchService.FindBranch(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Филиал успешно найден", res)
}

func (c *BranchController) CreateBranch(ctx echo.Context) error {
	var payload dto.CreateBranchDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.branchService.CreateBranch(ctx.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Филиал успешно создан", res)
}

func (c *BranchController) UpdateBranch(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID филиала")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateBranchDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.branchService.UpdateBranch(ctx.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Филиал успешно обновлён", res)
}

func (c *BranchController) DeleteBranch(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id", "Некорректный ID филиала")
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.branchService.DeleteBranch(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

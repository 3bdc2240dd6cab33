package controllers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "sales-system/pkg/errors"
)

func parseUUIDParam(ctx echo.Context, name, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError(message)
	}
	return id, nil
}

// bindAndValidate разбирает тело запроса в payload и проверяет его валидатором echo.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewBadRequestError("Неверный формат данных")
	}
	return ctx.Validate(payload)
}

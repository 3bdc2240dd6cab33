package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "sales-system/pkg/errors"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

type ListBody[T any] struct {
	List       []T             `json:"list"`
	Pagination *PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// SuccessOne возвращает один объект
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func SuccessList[T any](c echo.Context, message string, list []T, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}

	if list == nil {
		list = make([]T, 0)
	}

	body := ListBody[T]{
		List: list,
		Pagination: &PaginationMeta{
			TotalCount: total,
			TotalPages: totalPages,
			Page:       page,
			Limit:      limit,
		},
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body:    body,
	})
}

// statusBySentinel: соответствие доменных ошибок HTTP-кодам.
var statusBySentinel = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrConflict, http.StatusConflict},
	{apperrors.ErrSaleAlreadyCancelled, http.StatusConflict},
	{apperrors.ErrItemAlreadyCancelled, http.StatusConflict},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrInvalidQuantity, http.StatusBadRequest},
	{apperrors.ErrQuantityLimitExceeded, http.StatusBadRequest},
	{apperrors.ErrInactiveReference, http.StatusUnprocessableEntity},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized},
	{apperrors.ErrUserNotActive, http.StatusForbidden},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrAccountLocked, http.StatusTooManyRequests},
}

// StatusCode возвращает HTTP-код для ошибки и признак того, что ошибка ожидаемая.
func StatusCode(err error) (int, bool) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code, true
	}
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, true
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.code, true
		}
	}
	return http.StatusInternalServerError, false
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Warn("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return c.JSON(httpErr.Code, Response[any]{
			Status:  false,
			Message: httpErr.Message,
			Body:    httpErr.Details,
		})
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, Response[[]apperrors.FieldError]{
			Status:  false,
			Message: "Ошибка валидации",
			Body:    validationErr.Fields,
		})
	}

	code, known := StatusCode(err)
	if !known {
		logger.Error("Unexpected Error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
		return c.JSON(code, Response[any]{
			Status:  false,
			Message: "Внутренняя ошибка сервера",
		})
	}

	return c.JSON(code, Response[any]{
		Status:  false,
		Message: err.Error(),
	})
}

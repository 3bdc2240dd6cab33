package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "sales-system/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorResponse_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("find branch: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"sale cancelled", apperrors.ErrSaleAlreadyCancelled, http.StatusConflict},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"locked", apperrors.ErrAccountLocked, http.StatusTooManyRequests},
		{"http error", apperrors.NewHttpError(http.StatusTeapot, "teapot", nil, nil), http.StatusTeapot},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, ErrorResponse(c, tc.err, zap.NewNop()))
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, false, decode(t, rec)["status"])
		})
	}
}

func TestErrorResponse_UnknownErrorHidesDetails(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, ErrorResponse(c, fmt.Errorf("pq: connection refused"), zap.NewNop()))

	body := decode(t, rec)
	assert.Equal(t, "Внутренняя ошибка сервера", body["message"])
}

func TestErrorResponse_ValidationErrorListsFields(t *testing.T) {
	c, rec := newContext()
	err := apperrors.NewValidationError(
		apperrors.FieldError{Field: "name", Message: "обязательное поле"},
		apperrors.FieldError{Field: "code", Message: "не длиннее 20 символов"},
	)
	require.NoError(t, ErrorResponse(c, err, zap.NewNop()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields, ok := decode(t, rec)["body"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 2)
}

func TestSuccessList_Pagination(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, SuccessList(c, "ok", []string{"a", "b"}, 21, 1, 10))

	body := decode(t, rec)["body"].(map[string]interface{})
	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 3, pagination["total_pages"])
	assert.EqualValues(t, 21, pagination["total_count"])
}

func TestSuccessList_NilListIsEmptyArray(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, SuccessList[string](c, "ok", nil, 0, 1, 10))

	body := decode(t, rec)["body"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, body["list"])
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-system/pkg/service"
	"sales-system/pkg/utils"
)

func setup(t *testing.T) (*echo.Echo, service.JWTService) {
	t.Helper()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, time.Hour, zap.NewNop())
	mw := NewAuthMiddleware(jwtSvc, zap.NewNop())

	e := echo.New()
	secure := e.Group("", mw.Auth)
	secure.GET("/me", func(c echo.Context) error {
		id, err := utils.GetUserIDFromCtx(c.Request().Context())
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id.String())
	})
	secure.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, mw.RequireRole("Admin"))
	return e, jwtSvc
}

func do(e *echo.Echo, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_MissingAndMalformedHeader(t *testing.T) {
	e, _ := setup(t)

	assert.Equal(t, http.StatusUnauthorized, do(e, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/me", "Bearer not-a-jwt").Code)
}

func TestAuth_AccessTokenPassesUserID(t *testing.T) {
	e, jwtSvc := setup(t)
	userID := uuid.New()
	access, _, err := jwtSvc.GenerateTokens(userID, "Customer")
	require.NoError(t, err)

	rec := do(e, "/me", "Bearer "+access)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	e, jwtSvc := setup(t)
	_, refresh, err := jwtSvc.GenerateTokens(uuid.New(), "Customer")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(e, "/me", "Bearer "+refresh).Code)
}

func TestRequireRole(t *testing.T) {
	e, jwtSvc := setup(t)
	customer, _, err := jwtSvc.GenerateTokens(uuid.New(), "Customer")
	require.NoError(t, err)
	admin, _, err := jwtSvc.GenerateTokens(uuid.New(), "Admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(e, "/admin", "Bearer "+customer).Code)
	assert.Equal(t, http.StatusNoContent, do(e, "/admin", "Bearer "+admin).Code)
}

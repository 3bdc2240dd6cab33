package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "sales-system/pkg/errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, zap.NewNop())
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokens(userID, "Admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
	assert.False(t, claims.IsRefreshToken)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute, time.Hour, zap.NewNop())

	access, _, err := svc.GenerateTokens(uuid.New(), "Customer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, time.Hour, zap.NewNop())
	verifier := NewJWTService("secret-b", time.Hour, time.Hour, zap.NewNop())

	access, _, err := issuer.GenerateTokens(uuid.New(), "Manager")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, zap.NewNop())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{UserID: uuid.New()})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.Error(t, err)
}

package utils

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-system/pkg/contextkeys"
	apperrors "sales-system/pkg/errors"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.True(t, f.WithPagination)
	assert.Empty(t, f.Search)
}

func TestParseFilterFromQuery_Full(t *testing.T) {
	values, err := url.ParseQuery("search=+beer+&sort[price]=DESC&sort[name]=sideways&filter[category]=drinks,snacks&limit=10&page=3&withPagination=false")
	require.NoError(t, err)

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "beer", f.Search)
	assert.Equal(t, map[string]string{"price": "desc"}, f.Sort)
	assert.Equal(t, "drinks,snacks", f.Filter["category"])
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Offset)
	assert.False(t, f.WithPagination)
}

func TestParseFilterFromQuery_OffsetWinsAndLimitCapped(t *testing.T) {
	values := url.Values{"limit": {"100000"}, "page": {"7"}, "offset": {"1000"}}

	f := ParseFilterFromQuery(values)

	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 1000, f.Offset)
	assert.Equal(t, 3, f.Page)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	require.NoError(t, err)

	assert.NoError(t, ComparePasswords(hash, "Str0ng!pass"))
	assert.Error(t, ComparePasswords(hash, "wrong"))
}

func TestHashPassword_RejectsOverlongInput(t *testing.T) {
	_, err := HashPassword("Aa1!" + strings.Repeat("x", 69))

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr), "%v", err)
	assert.Equal(t, "password", vErr.Fields[0].Field)
}

func TestGenerateCodeFromName(t *testing.T) {
	assert.Equal(t, "FILIAL_TSENTR_1", GenerateCodeFromName("Филиал Центр №1", 0))
	assert.Equal(t, "SAO_PAULO_CENTRO", GenerateCodeFromName("  São Paulo - Centro ", 20))
	assert.Equal(t, "SAO_PAULO", GenerateCodeFromName("São Paulo Centro", 10))
}

func TestGetUserIDFromCtx(t *testing.T) {
	_, err := GetUserIDFromCtx(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)

	id := uuid.New()
	got, err := GetUserIDFromCtx(context.WithValue(context.Background(), contextkeys.UserIDKey, id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

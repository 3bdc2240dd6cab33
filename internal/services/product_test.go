package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	apperrors "sales-system/pkg/errors"
)

func newProductServiceForTest() (*ProductService, *fakeProductRepo, *fakeCache) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	svc := NewProductService(repo, cache, 5*time.Minute, zap.NewNop()).(*ProductService)
	return svc, repo, cache
}

func TestProductService_FindUsesCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, cache := newProductServiceForTest()

	created, err := svc.CreateProduct(ctx, dto.CreateProductDTO{
		Name:          " Пиво светлое ",
		Code:          "BEER-05",
		Price:         decimal.RequireFromString("89.99"),
		StockQuantity: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Пиво светлое", created.Name)
	assert.Equal(t, "89.99", created.Price.String())
	assert.Nil(t, created.Description)

	id := uuid.MustParse(created.ID)
	key := productCacheKey(id)
	assert.Contains(t, cache.values, key)
	assert.Equal(t, 5*time.Minute, cache.ttls[key])

	callsBefore := repo.findCalls
	again, err := svc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, callsBefore, repo.findCalls, "второе чтение должно прийти из кеша")
	assert.Equal(t, created.Code, again.Code)
	assert.True(t, created.Price.Equal(again.Price))
}

func TestProductService_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, _, cache := newProductServiceForTest()

	created, err := svc.CreateProduct(ctx, dto.CreateProductDTO{
		Name: "Сок", Code: "JUICE", Price: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	updated, err := svc.UpdateProduct(ctx, id, dto.UpdateProductDTO{
		Price:    decimal.NewNullDecimal(decimal.NewFromInt(55)),
		IsActive: null.BoolFrom(false),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(55).Equal(updated.Price))
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Сок", updated.Name)

	cached, err := svc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(55).Equal(cached.Price))

	require.NoError(t, svc.DeleteProduct(ctx, id))
	assert.NotContains(t, cache.values, productCacheKey(id))

	_, err = svc.FindProduct(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_CorruptedCacheFallsBackToRepo(t *testing.T) {
	ctx := context.Background()
	svc, repo, cache := newProductServiceForTest()

	created, err := svc.CreateProduct(ctx, dto.CreateProductDTO{Name: "Вода", Code: "WATER", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	cache.values[productCacheKey(id)] = "{not json"
	callsBefore := repo.findCalls

	found, err := svc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "WATER", found.Code)
	assert.Equal(t, callsBefore+1, repo.findCalls)
}

func TestProductService_RejectsSubCentPrice(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newProductServiceForTest()

	_, err := svc.CreateProduct(ctx, dto.CreateProductDTO{
		Name: "Жвачка", Code: "GUM", Price: decimal.RequireFromString("0.001"),
	})
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr), "%v", err)
	assert.Equal(t, "price", vErr.Fields[0].Field)
	assert.Empty(t, repo.items)

	created, err := svc.CreateProduct(ctx, dto.CreateProductDTO{
		Name: "Жвачка", Code: "GUM", Price: decimal.RequireFromString("0.01"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = svc.UpdateProduct(ctx, id, dto.UpdateProductDTO{
		Price: decimal.NewNullDecimal(decimal.RequireFromString("0.004")),
	})
	require.True(t, errors.As(err, &vErr), "%v", err)
	assert.Equal(t, "price", vErr.Fields[0].Field)

	found, err := svc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "0.01", found.Price.String())
}

package services

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/types"
)

func TestBranchService_CreateGeneratesCode(t *testing.T) {
	svc := NewBranchService(newFakeBranchRepo(), zap.NewNop())

	branch, err := svc.CreateBranch(context.Background(), dto.CreateBranchDTO{
		Name:    "Северный филиал",
		Address: "  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "SEVERNYY_FILIAL", branch.Code)
	assert.True(t, branch.IsActive)
	assert.Nil(t, branch.Address)
	assert.Equal(t, testNow.Format(dto.TimeLayout), branch.CreatedAt)
}

func TestBranchService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewBranchService(newFakeBranchRepo(), zap.NewNop())

	created, err := svc.CreateBranch(ctx, dto.CreateBranchDTO{Name: "Южный", Code: "SOUTH", PhoneNumber: "+79991234567"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	updated, err := svc.UpdateBranch(ctx, id, dto.UpdateBranchDTO{
		Address:  null.StringFrom("ул. Ленина, 1"),
		IsActive: null.BoolFrom(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Южный", updated.Name)
	assert.Equal(t, "SOUTH", updated.Code)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "ул. Ленина, 1", *updated.Address)
	require.NotNil(t, updated.PhoneNumber)
	assert.False(t, updated.IsActive)
}

func TestBranchService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewBranchService(newFakeBranchRepo(), zap.NewNop())

	_, err := svc.FindBranch(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateBranch(ctx, uuid.New(), dto.UpdateBranchDTO{Name: null.StringFrom("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteBranch(ctx, uuid.New()), apperrors.ErrNotFound)
}

func TestBranchService_ListMapsEveryRow(t *testing.T) {
	ctx := context.Background()
	svc := NewBranchService(newFakeBranchRepo(), zap.NewNop())
	for _, name := range []string{"Первый", "Второй"} {
		_, err := svc.CreateBranch(ctx, dto.CreateBranchDTO{Name: name})
		require.NoError(t, err)
	}

	list, total, err := svc.GetBranches(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, list, 2)
}

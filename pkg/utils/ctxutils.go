package utils

import (
	"context"

	"github.com/google/uuid"

	"sales-system/pkg/contextkeys"
	apperrors "sales-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}

package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "sales-system/pkg/errors"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError(apperrors.FieldError{
			Field:   "password",
			Message: "пароль не должен быть длиннее 72 байт",
		})
	}
	if err != nil {
		return "", fmt.Errorf("не удалось хешировать пароль: %w", err)
	}
	return string(bytes), nil
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "sales-system/pkg/errors"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

// mapWriteError переводит нарушение уникального индекса в ErrConflict, а CHECK-ограничения в 400.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return apperrors.NewHttpError(409, conflictMessage(pgErr.ConstraintName), apperrors.ErrConflict, nil)
	case checkViolation:
		return apperrors.NewHttpError(400, "Значение не прошло проверку базы данных: "+pgErr.ConstraintName, apperrors.ErrBadRequest, nil)
	}
	return err
}

func conflictMessage(constraint string) string {
	switch constraint {
	case "branches_code_uidx":
		return "Филиал с таким кодом уже существует"
	case "customers_email_uidx":
		return "Клиент с таким email уже существует"
	case "products_code_uidx":
		return "Товар с таким кодом уже существует"
	case "users_email_uidx":
		return "Пользователь с таким email уже существует"
	case "sales_sale_number_uidx":
		return "Продажа с таким номером уже существует"
	default:
		return apperrors.ErrConflict.Error()
	}
}

package seeders

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"sales-system/internal/entities"
	"sales-system/pkg/utils"
)

// AdminSeed: учётные данные первого администратора.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// SeedAdmin создаёт администратора, если пользователя с таким email ещё нет.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, admin AdminSeed) error {
	log.Println("  - Создание администратора...")

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль администратора: %w", err)
	}

	tag, err := db.Exec(ctx, `
		INSERT INTO users (id, username, email, password, role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING`,
		uuid.New(), admin.Username, strings.ToLower(admin.Email), hashedPassword,
		string(entities.UserRoleAdmin), string(entities.UserStatusActive),
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	if tag.RowsAffected() == 0 {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	log.Printf("    - Администратор %s создан.", admin.Email)
	return nil
}

// SeedDefaultBranch создаёт головной филиал с кодом MAIN.
func SeedDefaultBranch(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание головного филиала...")

	tag, err := db.Exec(ctx, `
		INSERT INTO branches (id, name, code, is_active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT DO NOTHING`,
		uuid.New(), "Головной офис", "MAIN",
	)
	if err != nil {
		return fmt.Errorf("не удалось вставить головной филиал: %w", err)
	}

	if tag.RowsAffected() == 0 {
		log.Println("    - Головной филиал уже существует. Пропускаем.")
	}
	return nil
}

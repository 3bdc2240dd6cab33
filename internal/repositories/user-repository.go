package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sales-system/internal/entities"
	db "sales-system/internal/infrastructure/bd"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/types"
)

const userTable = "users"

var userMap = map[string]string{
	"id":         "u.id",
	"username":   "u.username",
	"email":      "u.email",
	"role":       "u.role",
	"status":     "u.status",
	"created_at": "u.created_at",
	"updated_at": "u.updated_at",
}

var userColumns = []string{
	"u.id", "u.username", "u.email", "u.phone_number", "u.password", "u.role", "u.status",
	"u.created_at", "u.updated_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) error
	UpdateUser(ctx context.Context, tx pgx.Tx, user entities.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var role, status string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.Password, &role, &status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	u.Role = entities.UserRole(role)
	u.Status = entities.UserStatus(status)
	return &u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := searchPattern(filter.Search)
			return b.Where(sq.Or{
				sq.ILike{"u.username": pat},
				sq.ILike{"u.email": pat},
			})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := applySearch(psql.Select("COUNT(u.id)").From(userTable + " AS u"))
	countBuilder = db.ApplyListParams(countBuilder, countFilter, userMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(userColumns...).From(userTable + " AS u"))
	baseBuilder = db.ApplyListParams(baseBuilder, filter, userMap)
	if !db.HasSort(filter, userMap) {
		baseBuilder = baseBuilder.OrderBy("u.username ASC")
	}

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) findOne(ctx context.Context, querier Querier, where sq.Sqlizer) (*entities.User, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(userColumns...).From(userTable + " AS u").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(querier.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"u.id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, r.storage, sq.Expr("LOWER(u.email) = ?", strings.ToLower(email)))
}

func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) error {
	query := `
		INSERT INTO users (id, username, email, phone_number, password, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PhoneNumber, user.Password,
		string(user.Role), string(user.Status),
	)
	return mapWriteError(err)
}

func (r *UserRepository) UpdateUser(ctx context.Context, tx pgx.Tx, user entities.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, phone_number = $3, password = $4, role = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`
	result, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		user.Username, user.Email, user.PhoneNumber, user.Password,
		string(user.Role), string(user.Status), user.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

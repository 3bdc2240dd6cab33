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

const customerTable = "customers"

var customerMap = map[string]string{
	"id":         "c.id",
	"name":       "c.name",
	"email":      "c.email",
	"document":   "c.document",
	"is_active":  "c.is_active",
	"created_at": "c.created_at",
	"updated_at": "c.updated_at",
}

var customerColumns = []string{
	"c.id", "c.name", "c.email", "c.phone_number", "c.document", "c.address", "c.is_active",
	"c.created_at", "c.updated_at",
}

type CustomerRepositoryInterface interface {
	GetCustomers(ctx context.Context, filter types.Filter) ([]entities.Customer, uint64, error)
	FindCustomer(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entities.Customer, error)
	CreateCustomer(ctx context.Context, tx pgx.Tx, customer entities.Customer) error
	UpdateCustomer(ctx context.Context, tx pgx.Tx, customer entities.Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type CustomerRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCustomerRepository(storage *pgxpool.Pool, logger *zap.Logger) CustomerRepositoryInterface {
	return &CustomerRepository{storage: storage, logger: logger}
}

func scanCustomer(row pgx.Row) (*entities.Customer, error) {
	var c entities.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Document, &c.Address, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) GetCustomers(ctx context.Context, filter types.Filter) ([]entities.Customer, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := searchPattern(filter.Search)
			return b.Where(sq.Or{
				sq.ILike{"c.name": pat},
				sq.ILike{"c.email": pat},
				sq.ILike{"c.document": pat},
			})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := applySearch(psql.Select("COUNT(c.id)").From(customerTable + " AS c"))
	countBuilder = db.ApplyListParams(countBuilder, countFilter, customerMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Customer{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(customerColumns...).From(customerTable + " AS c"))
	baseBuilder = db.ApplyListParams(baseBuilder, filter, customerMap)
	if !db.HasSort(filter, customerMap) {
		baseBuilder = baseBuilder.OrderBy("c.name ASC")
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

	customers := make([]entities.Customer, 0, filter.Limit)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *customer)
	}
	return customers, total, rows.Err()
}

func (r *CustomerRepository) findOne(ctx context.Context, querier Querier, where sq.Sqlizer) (*entities.Customer, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(customerColumns...).From(customerTable + " AS c").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanCustomer(querier.QueryRow(ctx, query, args...))
}

func (r *CustomerRepository) FindCustomer(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"c.id": id})
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*entities.Customer, error) {
	return r.findOne(ctx, r.storage, sq.Expr("LOWER(c.email) = ?", strings.ToLower(email)))
}

func (r *CustomerRepository) CreateCustomer(ctx context.Context, tx pgx.Tx, customer entities.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone_number, document, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.PhoneNumber,
		customer.Document, customer.Address, customer.IsActive,
	)
	return mapWriteError(err)
}

func (r *CustomerRepository) UpdateCustomer(ctx context.Context, tx pgx.Tx, customer entities.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone_number = $3, document = $4, address = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`
	result, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		customer.Name, customer.Email, customer.PhoneNumber, customer.Document,
		customer.Address, customer.IsActive, customer.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

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

const productTable = "products"

var productMap = map[string]string{
	"id":             "p.id",
	"name":           "p.name",
	"code":           "p.code",
	"category":       "p.category",
	"price":          "p.price",
	"stock_quantity": "p.stock_quantity",
	"is_active":      "p.is_active",
	"created_at":     "p.created_at",
	"updated_at":     "p.updated_at",
}

var productColumns = []string{
	"p.id", "p.name", "p.code", "p.description", "p.category", "p.price", "p.stock_quantity", "p.is_active",
	"p.created_at", "p.updated_at",
}

type ProductRepositoryInterface interface {
	GetProducts(ctx context.Context, filter types.Filter) ([]entities.Product, uint64, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	FindByCode(ctx context.Context, code string) (*entities.Product, error)
	CreateProduct(ctx context.Context, tx pgx.Tx, product entities.Product) error
	UpdateProduct(ctx context.Context, tx pgx.Tx, product entities.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type ProductRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProductRepository(storage *pgxpool.Pool, logger *zap.Logger) ProductRepositoryInterface {
	return &ProductRepository{storage: storage, logger: logger}
}

func scanProduct(row pgx.Row) (*entities.Product, error) {
	var p entities.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &p.Description, &p.Category, &p.Price, &p.StockQuantity, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) GetProducts(ctx context.Context, filter types.Filter) ([]entities.Product, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := searchPattern(filter.Search)
			return b.Where(sq.Or{
				sq.ILike{"p.name": pat},
				sq.ILike{"p.code": pat},
				sq.ILike{"p.category": pat},
			})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := applySearch(psql.Select("COUNT(p.id)").From(productTable + " AS p"))
	countBuilder = db.ApplyListParams(countBuilder, countFilter, productMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Product{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(productColumns...).From(productTable + " AS p"))
	baseBuilder = db.ApplyListParams(baseBuilder, filter, productMap)
	if !db.HasSort(filter, productMap) {
		baseBuilder = baseBuilder.OrderBy("p.name ASC")
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

	products := make([]entities.Product, 0, filter.Limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *product)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) findOne(ctx context.Context, querier Querier, where sq.Sqlizer) (*entities.Product, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(productColumns...).From(productTable + " AS p").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanProduct(querier.QueryRow(ctx, query, args...))
}

func (r *ProductRepository) FindProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"p.id": id})
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*entities.Product, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"p.code": code})
}

func (r *ProductRepository) CreateProduct(ctx context.Context, tx pgx.Tx, product entities.Product) error {
	query := `
		INSERT INTO products (id, name, code, description, category, price, stock_quantity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		product.ID, product.Name, product.Code, product.Description, product.Category,
		product.Price, product.StockQuantity, product.IsActive,
	)
	return mapWriteError(err)
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, tx pgx.Tx, product entities.Product) error {
	query := `
		UPDATE products
		SET name = $1, code = $2, description = $3, category = $4, price = $5,
		    stock_quantity = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`
	result, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		product.Name, product.Code, product.Description, product.Category, product.Price,
		product.StockQuantity, product.IsActive, product.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

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

const branchTable = "branches"

// Допустимые поля фильтра и сортировки.
var branchMap = map[string]string{
	"id":         "b.id",
	"name":       "b.name",
	"code":       "b.code",
	"is_active":  "b.is_active",
	"created_at": "b.created_at",
	"updated_at": "b.updated_at",
}

var branchColumns = []string{
	"b.id", "b.name", "b.code", "b.address", "b.phone_number", "b.is_active",
	"b.created_at", "b.updated_at",
}

type BranchRepositoryInterface interface {
	GetBranches(ctx context.Context, filter types.Filter) ([]entities.Branch, uint64, error)
	FindBranch(ctx context.Context, id uuid.UUID) (*entities.Branch, error)
	FindByCode(ctx context.Context, code string) (*entities.Branch, error)
	CreateBranch(ctx context.Context, tx pgx.Tx, branch entities.Branch) error
	UpdateBranch(ctx context.Context, tx pgx.Tx, branch entities.Branch) error
	DeleteBranch(ctx context.Context, id uuid.UUID) error
}

type BranchRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBranchRepository(storage *pgxpool.Pool, logger *zap.Logger) BranchRepositoryInterface {
	return &BranchRepository{storage: storage, logger: logger}
}

func scanBranch(row pgx.Row) (*entities.Branch, error) {
	var b entities.Branch
	err := row.Scan(
		&b.ID, &b.Name, &b.Code, &b.Address, &b.PhoneNumber, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования branch: %w", err)
	}
	return &b, nil
}

func (r *BranchRepository) GetBranches(ctx context.Context, filter types.Filter) ([]entities.Branch, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := searchPattern(filter.Search)
			return b.Where(sq.Or{
				sq.ILike{"b.name": pat},
				sq.ILike{"b.code": pat},
				sq.ILike{"b.address": pat},
			})
		}
		return b
	}

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := applySearch(psql.Select("COUNT(b.id)").From(branchTable + " AS b"))
	countBuilder = db.ApplyListParams(countBuilder, countFilter, branchMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Branch{}, 0, nil
	}

	baseBuilder := applySearch(psql.Select(branchColumns...).From(branchTable + " AS b"))
	baseBuilder = db.ApplyListParams(baseBuilder, filter, branchMap)
	if !db.HasSort(filter, branchMap) {
		baseBuilder = baseBuilder.OrderBy("b.name ASC")
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

	branches := make([]entities.Branch, 0, filter.Limit)
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, 0, err
		}
		branches = append(branches, *branch)
	}
	return branches, total, rows.Err()
}

func (r *BranchRepository) findOne(ctx context.Context, querier Querier, where sq.Sqlizer) (*entities.Branch, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(branchColumns...).From(branchTable + " AS b").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanBranch(querier.QueryRow(ctx, query, args...))
}

func (r *BranchRepository) FindBranch(ctx context.Context, id uuid.UUID) (*entities.Branch, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"b.id": id})
}

func (r *BranchRepository) FindByCode(ctx context.Context, code string) (*entities.Branch, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"b.code": code})
}

func (r *BranchRepository) CreateBranch(ctx context.Context, tx pgx.Tx, branch entities.Branch) error {
	query := `
		INSERT INTO branches (id, name, code, address, phone_number, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		branch.ID, branch.Name, branch.Code, branch.Address, branch.PhoneNumber, branch.IsActive,
	)
	return mapWriteError(err)
}

func (r *BranchRepository) UpdateBranch(ctx context.Context, tx pgx.Tx, branch entities.Branch) error {
	query := `
		UPDATE branches
		SET name = $1, code = $2, address = $3, phone_number = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
	`
	result, err := pickQuerier(r.storage, tx).Exec(ctx, query,
		branch.Name, branch.Code, branch.Address, branch.PhoneNumber, branch.IsActive, branch.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BranchRepository) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

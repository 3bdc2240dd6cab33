package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sales-system/internal/dto"
	"sales-system/internal/entities"
	db "sales-system/internal/infrastructure/bd"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/types"
)

const (
	saleTable     = "sales"
	saleItemTable = "sale_items"
)

var saleMap = map[string]string{
	"id":           "s.id",
	"sale_number":  "s.sale_number",
	"sale_date":    "s.sale_date",
	"customer_id":  "s.customer_id",
	"branch_id":    "s.branch_id",
	"total_amount": "s.total_amount",
	"status":       "s.status",
	"created_at":   "s.created_at",
	"updated_at":   "s.updated_at",
}

var saleColumns = []string{
	"s.id", "s.sale_number", "s.sale_date", "s.customer_id", "s.customer_name",
	"s.branch_id", "s.branch_name", "s.total_amount", "s.status",
	"s.created_at", "s.updated_at",
}

var saleItemColumns = []string{
	"i.id", "i.sale_id", "i.product_id", "i.product_name", "i.quantity",
	"i.unit_price", "i.discount", "i.total_amount", "i.status",
	"i.created_at", "i.updated_at",
}

type SaleRepositoryInterface interface {
	GetSales(ctx context.Context, filter types.Filter) ([]entities.Sale, uint64, error)
	// FindSale внутри транзакции блокирует строку продажи до конца транзакции.
	FindSale(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Sale, error)
	CreateSale(ctx context.Context, tx pgx.Tx, sale *entities.Sale) error
	UpdateSale(ctx context.Context, tx pgx.Tx, sale *entities.Sale) error
	SaveStatuses(ctx context.Context, tx pgx.Tx, sale *entities.Sale) error
	DeleteSale(ctx context.Context, id uuid.UUID) error
	GetSalesReport(ctx context.Context, filter entities.SalesReportFilter) ([]entities.SalesReportRow, error)
}

type SaleRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSaleRepository(storage *pgxpool.Pool, logger *zap.Logger) SaleRepositoryInterface {
	return &SaleRepository{storage: storage, logger: logger}
}

func scanSale(row pgx.Row) (*entities.Sale, error) {
	var s entities.Sale
	var status string
	err := row.Scan(
		&s.ID, &s.SaleNumber, &s.SaleDate, &s.CustomerID, &s.CustomerName,
		&s.BranchID, &s.BranchName, &s.TotalAmount, &status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования sale: %w", err)
	}
	s.Status = entities.SaleStatus(status)
	return &s, nil
}

func scanSaleItem(row pgx.Row) (*entities.SaleItem, error) {
	var i entities.SaleItem
	var status string
	err := row.Scan(
		&i.ID, &i.SaleID, &i.ProductID, &i.ProductName, &i.Quantity,
		&i.UnitPrice, &i.Discount, &i.TotalAmount, &status,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования sale_item: %w", err)
	}
	i.Status = entities.SaleItemStatus(status)
	return &i, nil
}

// parseFilterDate разбирает дату периода из filter[...]; пустое значение означает отсутствие границы.
func parseFilterDate(filter types.Filter, key string) (*time.Time, *apperrors.FieldError) {
	raw, ok := filter.Filter[key]
	if !ok {
		return nil, nil
	}
	value := strings.TrimSpace(fmt.Sprint(raw))
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return nil, &apperrors.FieldError{
			Field:   "filter[" + key + "]",
			Message: "Неверный формат даты, ожидается " + dto.DateLayout,
		}
	}
	return &t, nil
}

// applySaleFilter добавляет поиск и фильтр по периоду, которых нет в saleMap.
// date_to включает весь указанный день.
func applySaleFilter(b sq.SelectBuilder, filter types.Filter) (sq.SelectBuilder, error) {
	if filter.Search != "" {
		pat := searchPattern(filter.Search)
		b = b.Where(sq.Or{
			sq.ILike{"s.sale_number": pat},
			sq.ILike{"s.customer_name": pat},
			sq.ILike{"s.branch_name": pat},
		})
	}

	var fields []apperrors.FieldError
	from, fieldErr := parseFilterDate(filter, "date_from")
	if fieldErr != nil {
		fields = append(fields, *fieldErr)
	}
	to, fieldErr := parseFilterDate(filter, "date_to")
	if fieldErr != nil {
		fields = append(fields, *fieldErr)
	}
	if len(fields) > 0 {
		return b, apperrors.NewValidationError(fields...)
	}

	if from != nil {
		b = b.Where(sq.GtOrEq{"s.sale_date": *from})
	}
	if to != nil {
		b = b.Where(sq.Lt{"s.sale_date": to.AddDate(0, 0, 1)})
	}
	return b, nil
}

func (r *SaleRepository) GetSales(ctx context.Context, filter types.Filter) ([]entities.Sale, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder, err := applySaleFilter(psql.Select("COUNT(s.id)").From(saleTable+" AS s"), filter)
	if err != nil {
		return nil, 0, err
	}
	countBuilder = db.ApplyListParams(countBuilder, countFilter, saleMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Sale{}, 0, nil
	}

	baseBuilder, err := applySaleFilter(psql.Select(saleColumns...).From(saleTable+" AS s"), filter)
	if err != nil {
		return nil, 0, err
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, saleMap)
	if !db.HasSort(filter, saleMap) {
		baseBuilder = baseBuilder.OrderBy("s.sale_date DESC", "s.sale_number DESC")
	}

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	sales := make([]entities.Sale, 0, filter.Limit)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, 0, err
		}
		sales = append(sales, *sale)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	items, err := r.loadItems(ctx, r.storage, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range sales {
		sales[i].Items = items[sales[i].ID]
	}
	return sales, total, nil
}

func (r *SaleRepository) loadItems(ctx context.Context, querier Querier, saleIDs []uuid.UUID) (map[uuid.UUID][]entities.SaleItem, error) {
	result := make(map[uuid.UUID][]entities.SaleItem, len(saleIDs))
	if len(saleIDs) == 0 {
		return result, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(saleItemColumns...).
		From(saleItemTable + " AS i").
		Where(sq.Eq{"i.sale_id": saleIDs}).
		OrderBy("i.sale_id", "i.line_no").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanSaleItem(rows)
		if err != nil {
			return nil, err
		}
		result[item.SaleID] = append(result[item.SaleID], *item)
	}
	return result, rows.Err()
}

// buildFindSaleQuery читает шапку продажи; lock добавляет FOR UPDATE для чтения внутри транзакции.
func buildFindSaleQuery(id uuid.UUID, lock bool) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(saleColumns...).From(saleTable + " AS s").Where(sq.Eq{"s.id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder.ToSql()
}

func (r *SaleRepository) FindSale(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Sale, error) {
	querier := pickQuerier(r.storage, tx)

	query, args, err := buildFindSaleQuery(id, tx != nil)
	if err != nil {
		return nil, err
	}

	sale, err := scanSale(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, querier, []uuid.UUID{sale.ID})
	if err != nil {
		return nil, err
	}
	sale.Items = items[sale.ID]
	return sale, nil
}

func (r *SaleRepository) insertItems(ctx context.Context, tx pgx.Tx, sale *entities.Sale) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Insert(saleItemTable).Columns(
		"id", "sale_id", "line_no", "product_id", "product_name", "quantity",
		"unit_price", "discount", "total_amount", "status", "created_at", "updated_at",
	)
	for n, item := range sale.Items {
		builder = builder.Values(
			item.ID, sale.ID, n+1, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice, item.Discount, item.TotalAmount, string(item.Status),
			sq.Expr("NOW()"), sq.Expr("NOW()"),
		)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, query, args...)
	return err
}

func (r *SaleRepository) CreateSale(ctx context.Context, tx pgx.Tx, sale *entities.Sale) error {
	query := `
		INSERT INTO sales (id, sale_number, sale_date, customer_id, customer_name, branch_id, branch_name,
		                   total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := tx.QueryRow(ctx, query,
		sale.ID, sale.SaleNumber, sale.SaleDate, sale.CustomerID, sale.CustomerName,
		sale.BranchID, sale.BranchName, sale.TotalAmount, string(sale.Status),
	).Scan(&sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return r.insertItems(ctx, tx, sale)
}

// UpdateSale переписывает шапку и полностью заменяет позиции.
func (r *SaleRepository) UpdateSale(ctx context.Context, tx pgx.Tx, sale *entities.Sale) error {
	query := `
		UPDATE sales
		SET sale_date = $1, customer_id = $2, customer_name = $3, branch_id = $4, branch_name = $5,
		    total_amount = $6, status = $7, updated_at = NOW()
		WHERE id = $8
	`
	result, err := tx.Exec(ctx, query,
		sale.SaleDate, sale.CustomerID, sale.CustomerName, sale.BranchID, sale.BranchName,
		sale.TotalAmount, string(sale.Status), sale.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, sale.ID); err != nil {
		return err
	}
	return r.insertItems(ctx, tx, sale)
}

// SaveStatuses сохраняет статусы продажи и позиций вместе с пересчитанным итогом.
func (r *SaleRepository) SaveStatuses(ctx context.Context, tx pgx.Tx, sale *entities.Sale) error {
	result, err := tx.Exec(ctx,
		`UPDATE sales SET status = $1, total_amount = $2, updated_at = NOW() WHERE id = $3`,
		string(sale.Status), sale.TotalAmount, sale.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	cancelled := make([]uuid.UUID, 0, len(sale.Items))
	for _, item := range sale.Items {
		if item.Status == entities.SaleItemStatusCancelled {
			cancelled = append(cancelled, item.ID)
		}
	}
	if len(cancelled) == 0 {
		return nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(saleItemTable).
		Set("status", string(entities.SaleItemStatusCancelled)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"sale_id": sale.ID, "id": cancelled}).
		Where(sq.NotEq{"status": string(entities.SaleItemStatusCancelled)}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, query, args...)
	return err
}

func (r *SaleRepository) DeleteSale(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// reportItemFilter отбирает позиции для агрегатов: у активной продажи только активные позиции,
// у отменённой все, иначе строка отчёта показывала бы 0 позиций и 0 скидки.
const reportItemFilter = "FILTER (WHERE i.status = 'Active' OR s.status = 'Cancelled')"

func buildSalesReportQuery(filter entities.SalesReportFilter) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(
		"s.sale_number", "s.sale_date", "s.branch_name", "s.customer_name",
		"COUNT(i.id) "+reportItemFilter,
		"COALESCE(SUM(i.discount) "+reportItemFilter+", 0)",
		"s.total_amount", "s.status",
	).
		From(saleTable + " AS s").
		LeftJoin(saleItemTable + " AS i ON i.sale_id = s.id")

	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"s.sale_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.Lt{"s.sale_date": *filter.DateTo})
	}
	if filter.BranchID != nil {
		builder = builder.Where(sq.Eq{"s.branch_id": *filter.BranchID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"s.status": string(*filter.Status)})
	}

	return builder.
		GroupBy("s.id").
		OrderBy("s.sale_date ASC", "s.sale_number ASC").
		ToSql()
}

func (r *SaleRepository) GetSalesReport(ctx context.Context, filter entities.SalesReportFilter) ([]entities.SalesReportRow, error) {
	query, args, err := buildSalesReportQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса отчёта: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса отчёта: %w", err)
	}
	defer rows.Close()

	report := make([]entities.SalesReportRow, 0)
	for rows.Next() {
		var row entities.SalesReportRow
		var status string
		if err := rows.Scan(
			&row.SaleNumber, &row.SaleDate, &row.BranchName, &row.CustomerName,
			&row.ItemsCount, &row.Discount, &row.TotalAmount, &status,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отчёта: %w", err)
		}
		row.Status = entities.SaleStatus(status)
		report = append(report, row)
	}
	return report, rows.Err()
}

package repositories

import (
	"errors"
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-system/internal/entities"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/types"
)

func TestBuildSalesReportQuery_NoFilter(t *testing.T) {
	query, args, err := buildSalesReportQuery(entities.SalesReportFilter{})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM sales AS s LEFT JOIN sale_items AS i ON i.sale_id = s.id")
	assert.Contains(t, query, "GROUP BY s.id ORDER BY s.sale_date ASC, s.sale_number ASC")
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestBuildSalesReportQuery_AllFilters(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	branchID := uuid.New()
	status := entities.SaleStatusCancelled

	query, args, err := buildSalesReportQuery(entities.SalesReportFilter{
		DateFrom: &from,
		DateTo:   &to,
		BranchID: &branchID,
		Status:   &status,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE s.sale_date >= $1 AND s.sale_date < $2 AND s.branch_id = $3 AND s.status = $4")
	assert.Equal(t, []interface{}{from, to, branchID.String(), "Cancelled"}, args)
}

func TestBuildSalesReportQuery_CancelledSalesKeepItemTotals(t *testing.T) {
	query, _, err := buildSalesReportQuery(entities.SalesReportFilter{})
	require.NoError(t, err)

	assert.Contains(t, query, "COUNT(i.id) FILTER (WHERE i.status = 'Active' OR s.status = 'Cancelled')")
	assert.Contains(t, query, "COALESCE(SUM(i.discount) FILTER (WHERE i.status = 'Active' OR s.status = 'Cancelled'), 0)")
}

func TestApplySaleFilter_SearchAndPeriod(t *testing.T) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("s.id").From("sales AS s")
	filter := types.Filter{
		Search: "42",
		Filter: map[string]interface{}{"date_from": "2026-01-01", "date_to": "2026-01-31"},
	}

	b, err := applySaleFilter(builder, filter)
	require.NoError(t, err)
	query, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT s.id FROM sales AS s WHERE (s.sale_number ILIKE $1 OR s.customer_name ILIKE $2 OR s.branch_name ILIKE $3) AND s.sale_date >= $4 AND s.sale_date < $5",
		query)
	assert.Equal(t, []interface{}{
		"%42%", "%42%", "%42%",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}, args)
}

func TestApplySaleFilter_SameDayPeriodCoversWholeDay(t *testing.T) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("s.id").From("sales AS s")
	filter := types.Filter{Filter: map[string]interface{}{"date_from": "2026-03-15", "date_to": "2026-03-15"}}

	b, err := applySaleFilter(builder, filter)
	require.NoError(t, err)
	_, args, err := b.ToSql()
	require.NoError(t, err)

	require.Len(t, args, 2)
	from, to := args[0].(time.Time), args[1].(time.Time)
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}

func TestApplySaleFilter_InvalidDate(t *testing.T) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("s.id").From("sales AS s")
	filter := types.Filter{Filter: map[string]interface{}{"date_from": "01.01.2026", "date_to": "2026-13-40"}}

	_, err := applySaleFilter(builder, filter)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr), "%v", err)
	require.Len(t, vErr.Fields, 2)
	assert.Equal(t, "filter[date_from]", vErr.Fields[0].Field)
	assert.Equal(t, "filter[date_to]", vErr.Fields[1].Field)
}

func TestApplySaleFilter_SearchWildcardsAreLiteral(t *testing.T) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("s.id").From("sales AS s")

	b, err := applySaleFilter(builder, types.Filter{Search: "50%_off"})
	require.NoError(t, err)
	_, args, err := b.ToSql()
	require.NoError(t, err)

	assert.Equal(t, `%50\%\_off%`, args[0])
}

func TestSearchPattern(t *testing.T) {
	assert.Equal(t, "%abc%", searchPattern("abc"))
	assert.Equal(t, `%100\%%`, searchPattern("100%"))
	assert.Equal(t, `%a\_b%`, searchPattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, searchPattern(`c:\dir`))
}

func TestBuildFindSaleQuery(t *testing.T) {
	id := uuid.New()

	query, args, err := buildFindSaleQuery(id, false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "FROM sales AS s WHERE s.id = $1"), query)
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{id.String()}, args)

	query, args, err = buildFindSaleQuery(id, true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "FROM sales AS s WHERE s.id = $1 FOR UPDATE"), query)
	assert.Equal(t, []interface{}{id.String()}, args)
}

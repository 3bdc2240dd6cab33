package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-system/pkg/types"
)

var testMap = map[string]string{
	"name":     "p.name",
	"category": "p.category",
	"price":    "p.price",
}

func baseSelect() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("p.id").From("products p")
}

func TestApplyListParams_FiltersSortAndPaging(t *testing.T) {
	filter := types.Filter{
		Filter:         map[string]interface{}{"category": "drinks,snacks", "unknown": "x"},
		Sort:           map[string]string{"price": "desc", "name": "asc", "hack; DROP": "asc"},
		Limit:          10,
		Offset:         20,
		WithPagination: true,
	}

	query, args, err := ApplyListParams(baseSelect(), filter, testMap).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT p.id FROM products p WHERE p.category IN ($1,$2) ORDER BY p.name ASC, p.price DESC LIMIT 10 OFFSET 20",
		query)
	assert.Equal(t, []interface{}{"drinks", "snacks"}, args)
}

func TestApplyListParams_WithoutPagination(t *testing.T) {
	filter := types.Filter{
		Filter: map[string]interface{}{"name": "Beer"},
		Limit:  10,
		Offset: 20,
	}

	query, args, err := ApplyListParams(baseSelect(), filter, testMap).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT p.id FROM products p WHERE p.name = $1", query)
	assert.Equal(t, []interface{}{"Beer"}, args)
}

func TestHasSort(t *testing.T) {
	assert.False(t, HasSort(types.Filter{}, testMap))
	assert.False(t, HasSort(types.Filter{Sort: map[string]string{"bogus": "asc"}}, testMap))
	assert.True(t, HasSort(types.Filter{Sort: map[string]string{"price": "asc"}}, testMap))
}

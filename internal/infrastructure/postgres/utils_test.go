package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

func TestFilterClause_SinFiltro(t *testing.T) {
	clause, args := filterClause(analytics.Filter{}, []any{2024}, true)
	assert.Empty(t, clause)
	assert.Equal(t, []any{2024}, args)
}

func TestFilterClause_ContinuaNumeracion(t *testing.T) {
	f := analytics.Filter{District: "Bornova", BranchID: 7, Category: "Books"}

	clause, args := filterClause(f, []any{2024}, true)
	assert.Equal(t, " AND b.district = $2 AND b.id = $3 AND s.category = $4", clause)
	assert.Equal(t, []any{2024, "Bornova", int64(7), "Books"}, args)
}

func TestFilterClause_GastosIgnoranCategoria(t *testing.T) {
	clause, args := filterClause(analytics.Filter{Category: "Books", BranchID: 3}, []any{2024}, false)
	assert.Equal(t, " AND b.id = $2", clause)
	assert.Len(t, args, 2)
}

func TestYearCond(t *testing.T) {
	assert.Equal(t, "($1::int = 0 OR EXTRACT(YEAR FROM s.date)::int = $1::int)", yearCond("s.date", 1))
}

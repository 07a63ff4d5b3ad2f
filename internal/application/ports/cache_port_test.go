package ports_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/branch-analytics/internal/application/ports"
	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

func TestCacheKey_EstableYSensibleAlFiltro(t *testing.T) {
	a := ports.CacheKey("kpis", 2024, analytics.Filter{District: "Buca"})
	b := ports.CacheKey("kpis", 2024, analytics.Filter{District: "Buca"})
	c := ports.CacheKey("kpis", 2024, analytics.Filter{District: "Konak"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "kpis:"))
	assert.Len(t, strings.TrimPrefix(a, "kpis:"), 40, "sha1 en hex")
}

package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// ──────────────────────────────────────────────────────────────────────────────
// ComputeKPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeKPIs_MargenYVariacionInteranual(t *testing.T) {
	res := analytics.ComputeKPIs(analytics.KPIInput{
		TotalRevenue:    1_200_000,
		TotalExpenses:   960_000,
		TotalQuantity:   30_000,
		PrevYearRevenue: 1_000_000,
	})

	assert.Equal(t, 240_000.0, res.NetProfit)
	assert.Equal(t, 20.0, res.Margin, "240k / 1.2M = 20%")
	require.NotNil(t, res.YoYChange)
	assert.Equal(t, 20.0, *res.YoYChange)
	assert.Equal(t, 30_000.0, res.TotalQuantity)
}

func TestComputeKPIs_MargenEjemploBasico(t *testing.T) {
	res := analytics.ComputeKPIs(analytics.KPIInput{TotalRevenue: 1_000_000, TotalExpenses: 800_000})
	assert.Equal(t, 20.0, res.Margin)
}

func TestComputeKPIs_SinIngresosMargenCero(t *testing.T) {
	res := analytics.ComputeKPIs(analytics.KPIInput{TotalRevenue: 0, TotalExpenses: 50_000})

	assert.Equal(t, 0.0, res.Margin, "sin ingresos el margen es 0, no NaN")
	assert.Equal(t, -50_000.0, res.NetProfit)
	assert.Nil(t, res.YoYChange, "sin ingresos del año anterior la variación es nil")
}

func TestComputeKPIs_MejorYPeorSucursal(t *testing.T) {
	res := analytics.ComputeKPIs(analytics.KPIInput{
		TotalRevenue:  2_000_000,
		TotalExpenses: 1_840_000,
		Branches: []analytics.BranchProfit{
			{ID: 1, Name: "Alsancak", Profit: 50_000},
			{ID: 2, Name: "Buca", Profit: -10_000},
			{ID: 3, Name: "Bornova", Profit: 120_000},
			{ID: 4, Name: "Konak", Profit: 0},
		},
	})

	require.NotNil(t, res.BestBranch)
	require.NotNil(t, res.WorstBranch)
	assert.Equal(t, int64(3), res.BestBranch.ID)
	assert.Equal(t, int64(2), res.WorstBranch.ID)
	assert.Equal(t, 2, res.ProfitableBranches)
	assert.Equal(t, 2, res.LossMakingBranches, "beneficio 0 cuenta como pérdida")
}

func TestComputeKPIs_SinSucursalesMejorPeorNil(t *testing.T) {
	res := analytics.ComputeKPIs(analytics.KPIInput{TotalRevenue: 10, TotalExpenses: 5})

	assert.Nil(t, res.BestBranch)
	assert.Nil(t, res.WorstBranch)
	assert.Zero(t, res.ProfitableBranches)
	assert.Zero(t, res.LossMakingBranches)
}

// ──────────────────────────────────────────────────────────────────────────────
// KPIInsight
// ──────────────────────────────────────────────────────────────────────────────

func TestKPIInsight_RentableConCrecimiento(t *testing.T) {
	yoy := 20.0
	got := analytics.KPIInsight(240_000, 2, 2, &yoy)
	assert.Equal(t,
		"Toplam 2 şube kârlı çalışmakta. Geçen yıla göre %20.00 büyüme sağlandı. 2 şube zarar etmekte ve değerlendirme gerektirebilir.",
		got)
}

func TestKPIInsight_PerdidaConCaida(t *testing.T) {
	yoy := -12.5
	got := analytics.KPIInsight(-1, 0, 0, &yoy)
	assert.Equal(t, "Dikkat: Genel zarar durumu söz konusu. Geçen yıla göre %12.50 düşüş yaşandı.", got)
}

func TestKPIInsight_SinVariacion(t *testing.T) {
	got := analytics.KPIInsight(100, 3, 0, nil)
	assert.Equal(t, "Toplam 3 şube kârlı çalışmakta.", got)
}

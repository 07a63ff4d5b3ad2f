package analytics_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/internal/application/analytics"
	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

func flatHistory(months int) []repository.MonthlyFinancialRow {
	rows := make([]repository.MonthlyFinancialRow, months)
	for i := range rows {
		rows[i] = repository.MonthlyFinancialRow{
			Month:    fmt.Sprintf("2024-%02d", i+1),
			Revenue:  dec(100_000),
			Expenses: dec(80_000),
		}
	}
	return rows
}

func forecastUseCase(horizon int) (*analytics.ForecastUseCase, *fakeAnalyticsRepo) {
	repo := newFakeAnalyticsRepo()
	repo.financials[1] = flatHistory(6)
	repo.financials[2] = flatHistory(2)
	branches := newFakeBranchRepo(branch(1, "Alsancak", "Konak"), branch(2, "Buca", "Buca"))
	return analytics.NewForecastUseCase(branches, repo, horizon, nil, fixedClock(2024)), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// ForecastBranch
// ──────────────────────────────────────────────────────────────────────────────

func TestForecastBranch_HorizonteConfigurado(t *testing.T) {
	uc, _ := forecastUseCase(3)

	res, err := uc.ForecastBranch(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.Equal(t, "Alsancak", res.Branch.Name)
	require.Len(t, res.Forecast.Forecast, 3)
	assert.Equal(t, "2024-07", res.Forecast.Forecast[0].Month)
	assert.Equal(t, 3, res.Summary.ForecastMonths)
	assert.Equal(t, engine.TrendStable, res.Summary.TrendDirection)
	assert.Len(t, res.Historical, 6)
}

func TestForecastBranch_HorizontePorDefectoYTope(t *testing.T) {
	uc, _ := forecastUseCase(0)

	res, err := uc.ForecastBranch(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, res.Forecast.Forecast, engine.DefaultForecastHorizon)

	res, err = uc.ForecastBranch(context.Background(), 1, 40)
	require.NoError(t, err)
	assert.Len(t, res.Forecast.Forecast, engine.MaxForecastHorizon)
}

func TestForecastBranch_Errores(t *testing.T) {
	uc, repo := forecastUseCase(6)

	_, err := uc.ForecastBranch(context.Background(), 0, 6)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ForecastBranch(context.Background(), 99, 6)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ForecastBranch(context.Background(), 2, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientData, "dos meses no alcanzan")

	repo.err = errDB
	_, err = uc.ForecastBranch(context.Background(), 1, 6)
	assert.ErrorIs(t, err, errDB)
}

// ──────────────────────────────────────────────────────────────────────────────
// CompareGrowth
// ──────────────────────────────────────────────────────────────────────────────

func TestCompareGrowth_TasaInteranualYPerspectiva(t *testing.T) {
	uc, repo := forecastUseCase(6)
	repo.branchTotals[2024] = []repository.BranchTotalsRow{
		{BranchID: 2, Name: "Buca", District: "Buca", Revenue: dec(400), Expenses: dec(500)},
		{BranchID: 1, Name: "Alsancak", District: "Konak", Revenue: dec(600), Expenses: dec(300)},
	}
	repo.branchTotals[2023] = []repository.BranchTotalsRow{
		{BranchID: 1, Name: "Alsancak", District: "Konak", Revenue: dec(500), Expenses: dec(300)},
	}

	res, err := uc.CompareGrowth(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 2024, res.Year)
	require.Len(t, res.Branches, 2)

	alsancak := res.Branches[0]
	assert.Equal(t, "Alsancak", alsancak.Name, "ordenado por ingreso del año")
	assert.Equal(t, 20.0, alsancak.GrowthRate)
	assert.Equal(t, 720.0, alsancak.ProjectedRevenue)
	assert.Equal(t, 411.0, alsancak.ProjectedProfit)
	assert.Equal(t, engine.OutlookPositive, alsancak.Outlook)

	buca := res.Branches[1]
	assert.Equal(t, 0.0, buca.GrowthRate, "sin ingresos del año anterior")
	assert.Equal(t, -115.0, buca.ProjectedProfit)
	assert.Equal(t, engine.OutlookNegative, buca.Outlook)
}

package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/internal/application/analytics"
	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

func scenarioUseCase() (*analytics.ScenarioUseCase, *fakeAnalyticsRepo) {
	repo := newFakeAnalyticsRepo()
	repo.sales[2024] = salesTotals{revenue: 1_200_000, quantity: 30_000}
	repo.expenseTypes = []repository.ExpenseTypeRow{
		{BranchID: 1, ExpenseType: "Rent", Amount: dec(240_000)},
		{BranchID: 1, ExpenseType: "Salary", Amount: dec(360_000)},
		{BranchID: 1, ExpenseType: "Utilities", Amount: dec(60_000)},
		{BranchID: 1, ExpenseType: "Marketing", Amount: dec(240_000)},
		{BranchID: 2, ExpenseType: "Rent", Amount: dec(999_000)},
	}
	branches := newFakeBranchRepo(branch(1, "Alsancak", "Konak"))
	return analytics.NewScenarioUseCase(branches, repo, nil, fixedClock(2024)), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulate
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulate_PresetDeAlquiler(t *testing.T) {
	uc, repo := scenarioUseCase()

	res, err := uc.Simulate(context.Background(), dto.ScenarioRequest{BranchID: 1, Preset: "rent_negotiation"})
	require.NoError(t, err)

	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, "Alsancak", res.Branch.Name)
	assert.Equal(t, -20.0, res.Params.RentChangePercent)
	assert.Equal(t, 12, res.Params.MonthsToSimulate)

	assert.Equal(t, 300_000.0, res.Current.Profit)
	assert.Equal(t, 240_000.0, res.Current.Breakdown.Other, "gastos no clasificados van a Other")
	assert.Equal(t, 192_000.0, res.Simulated.Breakdown.Rent)
	assert.Equal(t, 48_000.0, res.Comparison.ProfitChange)
	assert.Len(t, res.Projection, 12)
	assert.Equal(t, int64(1), repo.lastFilter.BranchID)
}

func TestSimulate_CambiosExplicitosSobreElPreset(t *testing.T) {
	uc, _ := scenarioUseCase()

	res, err := uc.Simulate(context.Background(), dto.ScenarioRequest{
		BranchID:       1,
		Preset:         "rent_negotiation",
		ScenarioDeltas: engine.ScenarioDeltas{RevenueChangePercent: 10, MonthsToSimulate: 24},
	})
	require.NoError(t, err)

	assert.Equal(t, -20.0, res.Params.RentChangePercent)
	assert.Equal(t, 10.0, res.Params.RevenueChangePercent)
	assert.Equal(t, 24, res.Params.MonthsToSimulate)
	assert.Len(t, res.Projection, 24)
	assert.Equal(t, 168_000.0, res.Comparison.ProfitChange, "48k alquiler + 120k ingresos")
}

func TestSimulate_SinCambiosReproduceElEstadoActual(t *testing.T) {
	uc, _ := scenarioUseCase()

	res, err := uc.Simulate(context.Background(), dto.ScenarioRequest{BranchID: 1, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, res.Current, res.Simulated)
	assert.Equal(t, 0.0, res.Comparison.ProfitChange)
	assert.Empty(t, res.Insights)
}

func TestSimulate_Errores(t *testing.T) {
	uc, repo := scenarioUseCase()
	ctx := context.Background()

	_, err := uc.Simulate(ctx, dto.ScenarioRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Simulate(ctx, dto.ScenarioRequest{BranchID: 1, Preset: "lottery"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Simulate(ctx, dto.ScenarioRequest{BranchID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.err = errDB
	_, err = uc.Simulate(ctx, dto.ScenarioRequest{BranchID: 1})
	assert.ErrorIs(t, err, errDB)
}

func TestPresets_Catalogo(t *testing.T) {
	uc, _ := scenarioUseCase()

	res, err := uc.Presets()
	require.NoError(t, err)
	require.Len(t, res.Presets, 6)
	assert.Equal(t, "rent_negotiation", res.Presets[0].ID)
}

package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/internal/application/analytics"
	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
)

func comparisonUseCase() (*analytics.ComparisonUseCase, *fakeAnalyticsRepo) {
	repo := newFakeAnalyticsRepo()
	repo.categories[1] = []repository.CategoryRow{
		{Category: "Books", Revenue: dec(500), Quantity: dec(25)},
		{Category: "Gifts", Revenue: dec(300), Quantity: dec(10)},
	}
	repo.categories[2] = []repository.CategoryRow{
		{Category: "Books", Revenue: dec(300), Quantity: dec(15)},
	}
	repo.expenseTypes = []repository.ExpenseTypeRow{
		{BranchID: 1, ExpenseType: "Rent", Amount: dec(200)},
		{BranchID: 1, ExpenseType: "Marketing", Amount: dec(300)},
		{BranchID: 2, ExpenseType: "Rent", Amount: dec(200)},
		{BranchID: 2, ExpenseType: "Salary", Amount: dec(100)},
	}
	repo.branchRevenue[1] = []repository.MonthRevenueRow{
		{Month: "2024-01", Revenue: dec(400)},
		{Month: "2024-02", Revenue: dec(400)},
	}
	branches := newFakeBranchRepo(branch(1, "Alsancak", "Konak"), branch(2, "Buca", "Buca"))
	return analytics.NewComparisonUseCase(branches, repo, 2, nil, fixedClock(2024)), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Compare
// ──────────────────────────────────────────────────────────────────────────────

func TestCompare_PerfilesYExplicaciones(t *testing.T) {
	uc, _ := comparisonUseCase()

	res, err := uc.Compare(context.Background(), []int64{1, 2}, 0)
	require.NoError(t, err)

	assert.Equal(t, 2024, res.Year)
	require.Len(t, res.Branches, 2)

	alsancak := res.Branches[0]
	assert.Equal(t, int64(1), alsancak.ID, "respeta el orden pedido")
	assert.Equal(t, 800.0, alsancak.TotalRevenue)
	assert.Equal(t, 500.0, alsancak.TotalExpenses)
	assert.Equal(t, 37.5, alsancak.Margin)
	assert.Equal(t, 40.0, alsancak.FixedCostRatio)
	assert.Len(t, alsancak.MonthlyTrend, 2)

	buca := res.Branches[1]
	assert.Equal(t, 0.0, buca.Profit)
	assert.Equal(t, 100.0, buca.FixedCostRatio)
	assert.Empty(t, buca.MonthlyTrend)

	require.Len(t, res.Explanations, 4)
	assert.Equal(t, "revenue", res.Explanations[0].Type)
	assert.Equal(t, "costs", res.Explanations[1].Type)
	assert.Equal(t, "medium", res.Explanations[1].Impact)
	assert.Equal(t, "Books Kategorisi", res.Explanations[2].Title)
	assert.Equal(t, "Gifts Kategorisi", res.Explanations[3].Title)
	assert.Contains(t, res.Insight, "Ortalama marj oranı %18.8")
}

func TestCompare_CantidadInvalida(t *testing.T) {
	uc, repo := comparisonUseCase()

	_, err := uc.Compare(context.Background(), []int64{1}, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Compare(context.Background(), []int64{1, 2, 3, 4, 5, 6}, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Zero(t, repo.callCount("GetCategoryTotals"))
}

func TestCompare_SucursalInexistente(t *testing.T) {
	uc, _ := comparisonUseCase()

	_, err := uc.Compare(context.Background(), []int64{1, 42}, 2024)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompare_ErrorDeRepositorio(t *testing.T) {
	uc, repo := comparisonUseCase()
	repo.err = errDB

	_, err := uc.Compare(context.Background(), []int64{1, 2}, 2024)
	assert.ErrorIs(t, err, errDB)
}

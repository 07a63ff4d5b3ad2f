package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
	"github.com/jhoicas/branch-analytics/internal/domain/entity"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
)

var errDB = errors.New("conexión rechazada")

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 15, 10, 0, 0, 0, time.UTC) }
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeAnalyticsRepo
// ──────────────────────────────────────────────────────────────────────────────

type salesTotals struct {
	revenue  float64
	quantity float64
}

type fakeAnalyticsRepo struct {
	mu    sync.Mutex
	calls map[string]int

	sales           map[int]salesTotals // por año
	expenseTotals   map[int]float64     // por año
	branchTotals    map[int][]repository.BranchTotalsRow
	monthlyRevenue  []repository.MonthlyAmountRow
	monthlyExpenses []repository.MonthlyAmountRow
	categories      map[int64][]repository.CategoryRow
	expenseTypes    []repository.ExpenseTypeRow
	financials      map[int64][]repository.MonthlyFinancialRow
	financialErrs   map[int64]error
	branchRevenue   map[int64][]repository.MonthRevenueRow
	districtStats   []repository.DistrictStatsRow

	lastFilter analytics.Filter
	err        error
}

var _ repository.AnalyticsRepository = (*fakeAnalyticsRepo)(nil)

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{
		calls:         map[string]int{},
		sales:         map[int]salesTotals{},
		expenseTotals: map[int]float64{},
		branchTotals:  map[int][]repository.BranchTotalsRow{},
		categories:    map[int64][]repository.CategoryRow{},
		financials:    map[int64][]repository.MonthlyFinancialRow{},
		financialErrs: map[int64]error{},
		branchRevenue: map[int64][]repository.MonthRevenueRow{},
	}
}

func (r *fakeAnalyticsRepo) record(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[name]++
	return r.err
}

func (r *fakeAnalyticsRepo) callCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *fakeAnalyticsRepo) GetSalesTotals(_ context.Context, year int, f analytics.Filter) (decimal.Decimal, decimal.Decimal, error) {
	if err := r.record("GetSalesTotals"); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	r.mu.Lock()
	r.lastFilter = f
	r.mu.Unlock()
	s := r.sales[year]
	return dec(s.revenue), dec(s.quantity), nil
}

func (r *fakeAnalyticsRepo) GetExpenseTotal(_ context.Context, year int, _ analytics.Filter) (decimal.Decimal, error) {
	if err := r.record("GetExpenseTotal"); err != nil {
		return decimal.Zero, err
	}
	return dec(r.expenseTotals[year]), nil
}

func (r *fakeAnalyticsRepo) GetBranchTotals(_ context.Context, year int, district string) ([]repository.BranchTotalsRow, error) {
	if err := r.record("GetBranchTotals"); err != nil {
		return nil, err
	}
	var out []repository.BranchTotalsRow
	for _, row := range r.branchTotals[year] {
		if district == "" || row.District == district {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyRevenue(context.Context, int, analytics.Filter) ([]repository.MonthlyAmountRow, error) {
	if err := r.record("GetMonthlyRevenue"); err != nil {
		return nil, err
	}
	return r.monthlyRevenue, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyExpenses(context.Context, int, analytics.Filter) ([]repository.MonthlyAmountRow, error) {
	if err := r.record("GetMonthlyExpenses"); err != nil {
		return nil, err
	}
	return r.monthlyExpenses, nil
}

func (r *fakeAnalyticsRepo) GetCategoryTotals(_ context.Context, _ int, branchID int64) ([]repository.CategoryRow, error) {
	if err := r.record("GetCategoryTotals"); err != nil {
		return nil, err
	}
	return r.categories[branchID], nil
}

func (r *fakeAnalyticsRepo) GetExpensesByType(_ context.Context, _ int, branchID int64) ([]repository.ExpenseTypeRow, error) {
	if err := r.record("GetExpensesByType"); err != nil {
		return nil, err
	}
	var out []repository.ExpenseTypeRow
	for _, row := range r.expenseTypes {
		if branchID == 0 || row.BranchID == branchID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyFinancials(_ context.Context, branchID int64, limit int) ([]repository.MonthlyFinancialRow, error) {
	if err := r.record("GetMonthlyFinancials"); err != nil {
		return nil, err
	}
	if err := r.financialErrs[branchID]; err != nil {
		return nil, err
	}
	rows := r.financials[branchID]
	if len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	return rows, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyBranchRevenue(_ context.Context, _ int, branchID int64) ([]repository.MonthRevenueRow, error) {
	if err := r.record("GetMonthlyBranchRevenue"); err != nil {
		return nil, err
	}
	return r.branchRevenue[branchID], nil
}

func (r *fakeAnalyticsRepo) GetDistrictStats(context.Context, int) ([]repository.DistrictStatsRow, error) {
	if err := r.record("GetDistrictStats"); err != nil {
		return nil, err
	}
	return r.districtStats, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fakeBranchRepo / fakeDistrictRepo
// ──────────────────────────────────────────────────────────────────────────────

type fakeBranchRepo struct {
	branches map[int64]*entity.Branch
	err      error
}

var _ repository.BranchRepository = (*fakeBranchRepo)(nil)

func newFakeBranchRepo(branches ...*entity.Branch) *fakeBranchRepo {
	r := &fakeBranchRepo{branches: map[int64]*entity.Branch{}}
	for _, b := range branches {
		r.branches[b.ID] = b
	}
	return r
}

func (r *fakeBranchRepo) ListActive(context.Context) ([]*entity.Branch, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Branch
	for id := int64(1); id <= int64(len(r.branches)); id++ {
		if b, ok := r.branches[id]; ok && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBranchRepo) ListDistricts(context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	seen := map[string]bool{}
	var out []string
	for id := int64(1); id <= int64(len(r.branches)); id++ {
		if b, ok := r.branches[id]; ok && !seen[b.District] {
			seen[b.District] = true
			out = append(out, b.District)
		}
	}
	return out, nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id int64) (*entity.Branch, error) {
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.branches[id]
	if !ok {
		return nil, fmt.Errorf("sucursal %d: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

type fakeDistrictRepo struct {
	districts []*entity.District
	err       error
}

func (r *fakeDistrictRepo) List(context.Context) ([]*entity.District, error) {
	return r.districts, r.err
}

func branch(id int64, name, district string) *entity.Branch {
	return &entity.Branch{ID: id, Name: name, District: district, Status: entity.BranchActive}
}

// ──────────────────────────────────────────────────────────────────────────────
// memoryCache
// ──────────────────────────────────────────────────────────────────────────────

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) InvalidatePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *memoryCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

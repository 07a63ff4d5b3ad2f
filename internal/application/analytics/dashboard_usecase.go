// Package analytics contiene los casos de uso que alimentan los motores de
// analítica con los agregados del repositorio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/application/ports"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
	"github.com/jhoicas/branch-analytics/pkg/logger"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// Prefijos de clave de caché del dashboard.
const (
	CacheScopeKPIs           = "kpis"
	CacheScopeMonthlyTrend   = "monthly-trend"
	CacheScopeRevenueExpense = "revenue-expense"
	CacheScopeMargins        = "margins"
	CacheScopeCategories     = "categories"
)

// DashboardUseCase KPIs, tendencia mensual y desgloses del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Las respuestas
// se cachean por año y filtro.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         ports.ResponseCache
	log           *logger.Logger
	now           Clock
}

// NewDashboardUseCase construye el caso de uso. cache y log pueden ser nil.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	cache ports.ResponseCache,
	log *logger.Logger,
	now Clock,
) *DashboardUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, log: log.Component("dashboard"), now: now}
}

// GetKPIs indicadores del año con el filtro dado.
//
// Cuatro consultas en paralelo:
//  1. GetSalesTotals(año)        → ingresos y unidades
//  2. GetExpenseTotal(año)       → gastos
//  3. GetBranchTotals(año)       → mejor/peor sucursal y conteos
//  4. GetSalesTotals(año − 1)    → variación interanual
func (uc *DashboardUseCase) GetKPIs(ctx context.Context, year int, f engine.Filter) (*dto.KPIResponse, error) {
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("kpis: %w", err)
	}

	key := ports.CacheKey(CacheScopeKPIs, year, f)
	return cached(ctx, uc.cache, uc.log, key, func() (*dto.KPIResponse, error) {
		return uc.computeKPIs(ctx, year, f)
	})
}

func (uc *DashboardUseCase) computeKPIs(ctx context.Context, year int, f engine.Filter) (*dto.KPIResponse, error) {
	type salesResult struct {
		revenue  decimal.Decimal
		quantity decimal.Decimal
		err      error
	}
	type expenseResult struct {
		total decimal.Decimal
		err   error
	}
	type branchesResult struct {
		rows []repository.BranchTotalsRow
		err  error
	}

	salesCh := make(chan salesResult, 1)
	prevCh := make(chan salesResult, 1)
	expenseCh := make(chan expenseResult, 1)
	branchesCh := make(chan branchesResult, 1)

	go func() {
		rev, qty, err := uc.analyticsRepo.GetSalesTotals(ctx, year, f)
		salesCh <- salesResult{rev, qty, err}
	}()
	go func() {
		rev, qty, err := uc.analyticsRepo.GetSalesTotals(ctx, year-1, f)
		prevCh <- salesResult{rev, qty, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.GetExpenseTotal(ctx, year, f)
		expenseCh <- expenseResult{total, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetBranchTotals(ctx, year, f.District)
		branchesCh <- branchesResult{rows, err}
	}()

	sales := <-salesCh
	prev := <-prevCh
	expenses := <-expenseCh
	branches := <-branchesCh

	if sales.err != nil {
		return nil, fmt.Errorf("kpis: ventas: %w", sales.err)
	}
	if prev.err != nil {
		return nil, fmt.Errorf("kpis: ventas año anterior: %w", prev.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("kpis: gastos: %w", expenses.err)
	}
	if branches.err != nil {
		return nil, fmt.Errorf("kpis: sucursales: %w", branches.err)
	}

	profits := make([]engine.BranchProfit, 0, len(branches.rows))
	for _, b := range branches.rows {
		if f.HasBranch() && b.BranchID != f.BranchID {
			continue
		}
		profits = append(profits, engine.BranchProfit{
			ID:     b.BranchID,
			Name:   b.Name,
			Profit: toFloat(b.Revenue.Sub(b.Expenses)),
		})
	}

	result := engine.ComputeKPIs(engine.KPIInput{
		TotalRevenue:    toFloat(sales.revenue),
		TotalExpenses:   toFloat(expenses.total),
		TotalQuantity:   toFloat(sales.quantity),
		PrevYearRevenue: toFloat(prev.revenue),
		Branches:        profits,
	})
	return &dto.KPIResponse{Year: year, Filter: f, KPIResult: result}, nil
}

// GetMonthlyTrend serie mensual de ingresos, gastos y beneficio con media móvil de 3 meses.
func (uc *DashboardUseCase) GetMonthlyTrend(ctx context.Context, year int, f engine.Filter) (*dto.MonthlyTrendResponse, error) {
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("tendencia mensual: %w", err)
	}

	key := ports.CacheKey(CacheScopeMonthlyTrend, year, f)
	return cached(ctx, uc.cache, uc.log, key, func() (*dto.MonthlyTrendResponse, error) {
		revenue, expenses, err := uc.monthlySeries(ctx, year, f)
		if err != nil {
			return nil, fmt.Errorf("tendencia mensual: %w", err)
		}
		return &dto.MonthlyTrendResponse{
			Year:   year,
			Points: engine.ComputeMonthlyTrend(year, revenue, expenses),
		}, nil
	})
}

// GetRevenueVsExpense ingresos frente a gastos y margen por mes.
func (uc *DashboardUseCase) GetRevenueVsExpense(ctx context.Context, year int, f engine.Filter) (*dto.RevenueExpenseResponse, error) {
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("ingresos vs gastos: %w", err)
	}

	key := ports.CacheKey(CacheScopeRevenueExpense, year, f)
	return cached(ctx, uc.cache, uc.log, key, func() (*dto.RevenueExpenseResponse, error) {
		revenue, expenses, err := uc.monthlySeries(ctx, year, f)
		if err != nil {
			return nil, fmt.Errorf("ingresos vs gastos: %w", err)
		}
		return &dto.RevenueExpenseResponse{
			Year:   year,
			Points: engine.ComputeRevenueVsExpense(year, revenue, expenses),
		}, nil
	})
}

// monthlySeries consulta en paralelo ingresos y gastos mensuales.
func (uc *DashboardUseCase) monthlySeries(ctx context.Context, year int, f engine.Filter) (revenue, expenses []engine.MonthlyAmount, err error) {
	type seriesResult struct {
		rows []repository.MonthlyAmountRow
		err  error
	}
	revCh := make(chan seriesResult, 1)
	expCh := make(chan seriesResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetMonthlyRevenue(ctx, year, f)
		revCh <- seriesResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMonthlyExpenses(ctx, year, f)
		expCh <- seriesResult{rows, err}
	}()

	rev := <-revCh
	exp := <-expCh
	if rev.err != nil {
		return nil, nil, fmt.Errorf("ingresos mensuales: %w", rev.err)
	}
	if exp.err != nil {
		return nil, nil, fmt.Errorf("gastos mensuales: %w", exp.err)
	}
	return toMonthlyAmounts(rev.rows), toMonthlyAmounts(exp.rows), nil
}

// GetBranchMargins margen por sucursal activa, opcionalmente de un distrito.
func (uc *DashboardUseCase) GetBranchMargins(ctx context.Context, year int, district string) (*dto.BranchMarginsResponse, error) {
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("márgenes: %w", err)
	}

	key := ports.CacheKey(CacheScopeMargins, year, district)
	return cached(ctx, uc.cache, uc.log, key, func() (*dto.BranchMarginsResponse, error) {
		rows, err := uc.analyticsRepo.GetBranchTotals(ctx, year, district)
		if err != nil {
			return nil, fmt.Errorf("márgenes: %w", err)
		}
		totals := make([]engine.BranchTotals, len(rows))
		for i, r := range rows {
			totals[i] = engine.BranchTotals{
				ID:       r.BranchID,
				Name:     r.Name,
				District: r.District,
				Revenue:  toFloat(r.Revenue),
				Expenses: toFloat(r.Expenses),
			}
		}
		return &dto.BranchMarginsResponse{Year: year, Branches: engine.ComputeBranchMargins(totals)}, nil
	})
}

// GetCategoryBreakdown participación de cada categoría; branchID = 0 para toda la cadena.
func (uc *DashboardUseCase) GetCategoryBreakdown(ctx context.Context, year int, branchID int64) (*dto.CategoryBreakdownResponse, error) {
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("categorías: %w", err)
	}

	key := ports.CacheKey(CacheScopeCategories, year, branchID)
	return cached(ctx, uc.cache, uc.log, key, func() (*dto.CategoryBreakdownResponse, error) {
		rows, err := uc.analyticsRepo.GetCategoryTotals(ctx, year, branchID)
		if err != nil {
			return nil, fmt.Errorf("categorías: %w", err)
		}
		totals := make([]engine.CategoryTotals, len(rows))
		for i, r := range rows {
			totals[i] = engine.CategoryTotals{
				Category:    r.Category,
				Revenue:     toFloat(r.Revenue),
				Quantity:    toFloat(r.Quantity),
				BranchCount: r.BranchCount,
			}
		}
		return &dto.CategoryBreakdownResponse{
			Year:       year,
			BranchID:   branchID,
			Categories: engine.ComputeCategoryBreakdown(totals),
		}, nil
	})
}

// noopCache caché vacía cuando no se inyecta ninguna.
type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, any) error         { return nil }
func (noopCache) InvalidatePrefix(context.Context, string) error { return nil }

package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
	"github.com/jhoicas/branch-analytics/pkg/logger"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// ComparisonUseCase comparación lado a lado de 2 a 5 sucursales.
type ComparisonUseCase struct {
	branchRepo    repository.BranchRepository
	analyticsRepo repository.AnalyticsRepository
	workers       int
	log           *logger.Logger
	now           Clock
}

func NewComparisonUseCase(
	branchRepo repository.BranchRepository,
	analyticsRepo repository.AnalyticsRepository,
	workers int,
	log *logger.Logger,
	now Clock,
) *ComparisonUseCase {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &ComparisonUseCase{
		branchRepo:    branchRepo,
		analyticsRepo: analyticsRepo,
		workers:       workers,
		log:           log.Component("comparison"),
		now:           now,
	}
}

// Compare arma el perfil anual de cada sucursal en paralelo y explica las
// diferencias. Cualquier sucursal inexistente hace fallar la comparación.
func (uc *ComparisonUseCase) Compare(ctx context.Context, ids []int64, year int) (*dto.ComparisonResponse, error) {
	if len(ids) < engine.MinComparedBranches || len(ids) > engine.MaxComparedBranches {
		return nil, fmt.Errorf("comparación: %d sucursales (%d–%d): %w",
			len(ids), engine.MinComparedBranches, engine.MaxComparedBranches, domain.ErrInvalidInput)
	}
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("comparación: %w", err)
	}

	profiles := make([]engine.BranchProfile, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, id := range ids {
		g.Go(func() error {
			p, err := uc.profile(gctx, id, year)
			if err != nil {
				return err
			}
			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("comparación: %w", err)
	}

	comparison, err := engine.CompareBranches(profiles)
	if err != nil {
		return nil, err
	}
	return &dto.ComparisonResponse{Year: year, BranchComparison: comparison}, nil
}

func (uc *ComparisonUseCase) profile(ctx context.Context, id int64, year int) (engine.BranchProfile, error) {
	branch, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return engine.BranchProfile{}, err
	}

	categories, err := uc.analyticsRepo.GetCategoryTotals(ctx, year, id)
	if err != nil {
		return engine.BranchProfile{}, fmt.Errorf("sucursal %d: categorías: %w", id, err)
	}
	expenses, err := uc.analyticsRepo.GetExpensesByType(ctx, year, id)
	if err != nil {
		return engine.BranchProfile{}, fmt.Errorf("sucursal %d: gastos: %w", id, err)
	}
	monthly, err := uc.analyticsRepo.GetMonthlyBranchRevenue(ctx, year, id)
	if err != nil {
		return engine.BranchProfile{}, fmt.Errorf("sucursal %d: ingreso mensual: %w", id, err)
	}

	sales := make(map[string]engine.CategorySales, len(categories))
	for _, c := range categories {
		sales[c.Category] = engine.CategorySales{Revenue: toFloat(c.Revenue), Quantity: toFloat(c.Quantity)}
	}
	byType := expensesByBranch(expenses)[id]
	if byType == nil {
		byType = map[string]float64{}
	}
	trend := make([]engine.MonthRevenue, len(monthly))
	for i, m := range monthly {
		trend[i] = engine.MonthRevenue{Month: m.Month, Revenue: toFloat(m.Revenue)}
	}

	return engine.BranchProfile{
		ID:              branch.ID,
		Name:            branch.Name,
		District:        branch.District,
		Latitude:        branch.Latitude,
		Longitude:       branch.Longitude,
		SalesByCategory: sales,
		ExpensesByType:  byType,
		MonthlyRevenue:  trend,
	}, nil
}

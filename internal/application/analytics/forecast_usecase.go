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

// ForecastUseCase proyección de ventas por sucursal y perspectiva de crecimiento.
type ForecastUseCase struct {
	branchRepo     repository.BranchRepository
	analyticsRepo  repository.AnalyticsRepository
	defaultHorizon int
	log            *logger.Logger
	now            Clock
}

// NewForecastUseCase construye el caso de uso; defaultHorizon se usa cuando la petición no indica meses.
func NewForecastUseCase(
	branchRepo repository.BranchRepository,
	analyticsRepo repository.AnalyticsRepository,
	defaultHorizon int,
	log *logger.Logger,
	now Clock,
) *ForecastUseCase {
	if defaultHorizon == 0 {
		defaultHorizon = engine.DefaultForecastHorizon
	}
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &ForecastUseCase{
		branchRepo:     branchRepo,
		analyticsRepo:  analyticsRepo,
		defaultHorizon: defaultHorizon,
		log:            log.Component("forecast"),
		now:            now,
	}
}

// ForecastBranch proyecta los próximos `months` meses de la sucursal (0 = horizonte por defecto).
// Con menos de 3 meses de historia devuelve domain.ErrInsufficientData.
func (uc *ForecastUseCase) ForecastBranch(ctx context.Context, branchID int64, months int) (*dto.ForecastResponse, error) {
	if branchID <= 0 {
		return nil, fmt.Errorf("pronóstico: sucursal %d: %w", branchID, domain.ErrInvalidInput)
	}
	if months == 0 {
		months = uc.defaultHorizon
	}

	branch, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("pronóstico: %w", err)
	}

	history, err := uc.analyticsRepo.GetMonthlyFinancials(ctx, branchID, engine.MaxForecastHistory)
	if err != nil {
		return nil, fmt.Errorf("pronóstico: historia: %w", err)
	}

	forecast, err := engine.ComputeForecast(branchID, toMonthlyFinancials(history), months)
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Int64("branch_id", branchID).
		Int("history_months", len(history)).
		Str("trend", forecast.Summary.TrendDirection).
		Msg("pronóstico calculado")
	return &dto.ForecastResponse{Branch: dto.BranchFromEntity(branch), Forecast: forecast}, nil
}

// CompareGrowth perspectiva de crecimiento de todas las sucursales activas, de
// mayor a menor ingreso del año.
func (uc *ForecastUseCase) CompareGrowth(ctx context.Context, year int) (*dto.GrowthComparisonResponse, error) {
	year, err := resolveYear(year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("crecimiento: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	var current, previous []repository.BranchTotalsRow
	g.Go(func() error {
		rows, err := uc.analyticsRepo.GetBranchTotals(gctx, year, "")
		current = rows
		return err
	})
	g.Go(func() error {
		rows, err := uc.analyticsRepo.GetBranchTotals(gctx, year-1, "")
		previous = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("crecimiento: %w", err)
	}

	lastYear := make(map[int64]float64, len(previous))
	for _, p := range previous {
		lastYear[p.BranchID] = toFloat(p.Revenue)
	}

	sortByRevenueDesc(current)
	inputs := make([]engine.GrowthInput, len(current))
	for i, c := range current {
		inputs[i] = engine.GrowthInput{
			ID:              c.BranchID,
			Name:            c.Name,
			District:        c.District,
			CurrentRevenue:  toFloat(c.Revenue),
			CurrentExpenses: toFloat(c.Expenses),
			LastYearRevenue: lastYear[c.BranchID],
		}
	}

	return &dto.GrowthComparisonResponse{Year: year, Branches: engine.ComputeGrowthOutlook(inputs)}, nil
}

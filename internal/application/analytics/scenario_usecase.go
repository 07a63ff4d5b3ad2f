package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
	"github.com/jhoicas/branch-analytics/pkg/logger"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// ScenarioUseCase simulación "qué pasaría si" sobre los datos anuales de una sucursal.
type ScenarioUseCase struct {
	branchRepo    repository.BranchRepository
	analyticsRepo repository.AnalyticsRepository
	log           *logger.Logger
	now           Clock
}

func NewScenarioUseCase(
	branchRepo repository.BranchRepository,
	analyticsRepo repository.AnalyticsRepository,
	log *logger.Logger,
	now Clock,
) *ScenarioUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &ScenarioUseCase{
		branchRepo:    branchRepo,
		analyticsRepo: analyticsRepo,
		log:           log.Component("scenario"),
		now:           now,
	}
}

// Presets catálogo de escenarios predefinidos.
func (uc *ScenarioUseCase) Presets() (*dto.ScenarioPresetsResponse, error) {
	presets, err := engine.Presets()
	if err != nil {
		return nil, err
	}
	return &dto.ScenarioPresetsResponse{Presets: presets}, nil
}

// Simulate aplica los cambios pedidos (o el preset con los cambios explícitos
// superpuestos) a los ingresos y gastos del año de la sucursal.
func (uc *ScenarioUseCase) Simulate(ctx context.Context, req dto.ScenarioRequest) (*dto.ScenarioResponse, error) {
	if req.BranchID <= 0 {
		return nil, fmt.Errorf("escenario: sucursal requerida: %w", domain.ErrInvalidInput)
	}

	params := req.ScenarioDeltas
	presetID := strings.TrimSpace(req.Preset)
	if presetID != "" {
		preset, ok, err := engine.PresetByID(presetID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("escenario: preset %q: %w", presetID, domain.ErrInvalidInput)
		}
		params = preset.Params.Merge(req.ScenarioDeltas)
	}

	year, err := resolveYear(req.Year, uc.now)
	if err != nil {
		return nil, fmt.Errorf("escenario: %w", err)
	}

	branch, err := uc.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("escenario: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	var (
		revenue  decimal.Decimal
		expenses []repository.ExpenseTypeRow
	)
	g.Go(func() error {
		r, _, err := uc.analyticsRepo.GetSalesTotals(gctx, year, engine.Filter{BranchID: req.BranchID})
		revenue = r
		return err
	})
	g.Go(func() error {
		rows, err := uc.analyticsRepo.GetExpensesByType(gctx, year, req.BranchID)
		expenses = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("escenario: agregados: %w", err)
	}

	input := engine.ScenarioInput{
		Revenue:   toFloat(revenue),
		Breakdown: engine.BreakdownFromTypes(expensesByBranch(expenses)[req.BranchID]),
	}
	result := engine.ComputeScenario(input, params)
	params.MonthsToSimulate = engine.SimulationMonths(params.MonthsToSimulate)

	uc.log.Debug().
		Int64("branch_id", req.BranchID).
		Str("preset", presetID).
		Float64("profit_change", result.Comparison.ProfitChange).
		Msg("escenario simulado")

	return &dto.ScenarioResponse{
		Branch:         dto.BranchFromEntity(branch),
		Year:           year,
		Preset:         presetID,
		Params:         params,
		ScenarioResult: result,
	}, nil
}

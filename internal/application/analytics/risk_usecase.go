package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
	"github.com/jhoicas/branch-analytics/pkg/logger"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// riskHistoryMonths meses de historia usados para racha de pérdidas y tendencia.
const riskHistoryMonths = 12

// RiskUseCase análisis de riesgo de cierre de las sucursales activas.
type RiskUseCase struct {
	analyticsRepo   repository.AnalyticsRepository
	defaultStrategy string
	workers         int
	log             *logger.Logger
}

// NewRiskUseCase construye el caso de uso. workers limita las consultas concurrentes por sucursal.
func NewRiskUseCase(
	analyticsRepo repository.AnalyticsRepository,
	defaultStrategy string,
	workers int,
	log *logger.Logger,
) *RiskUseCase {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RiskUseCase{
		analyticsRepo:   analyticsRepo,
		defaultStrategy: defaultStrategy,
		workers:         workers,
		log:             log.Component("risk"),
	}
}

// Analyze puntúa todas las sucursales activas. strategy vacío usa la
// configurada; year = 0 analiza todo el histórico. Una sucursal cuya historia
// mensual no se puede leer queda en Skipped y el lote continúa.
func (uc *RiskUseCase) Analyze(ctx context.Context, strategy string, year int) (*engine.RiskAnalysis, error) {
	scorer, err := uc.scorer(strategy)
	if err != nil {
		return nil, err
	}
	if err := validateHistoryYear(year); err != nil {
		return nil, fmt.Errorf("riesgo: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	var (
		totals   []repository.BranchTotalsRow
		expenses []repository.ExpenseTypeRow
	)
	g.Go(func() error {
		rows, err := uc.analyticsRepo.GetBranchTotals(gctx, year, "")
		totals = rows
		return err
	})
	g.Go(func() error {
		rows, err := uc.analyticsRepo.GetExpensesByType(gctx, year, 0)
		expenses = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("riesgo: agregados: %w", err)
	}

	byBranch := expensesByBranch(expenses)
	inputs := make([]engine.BranchRiskInput, len(totals))
	fetchErrs := make([]error, len(totals))

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, row := range totals {
		g.Go(func() error {
			history, err := uc.analyticsRepo.GetMonthlyFinancials(gctx, row.BranchID, riskHistoryMonths)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				fetchErrs[i] = err
				return nil
			}
			inputs[i] = engine.BranchRiskInput{
				ID:        row.BranchID,
				Name:      row.Name,
				District:  row.District,
				Revenue:   toFloat(row.Revenue),
				Expenses:  toFloat(row.Expenses),
				Quantity:  toFloat(row.Quantity),
				Breakdown: engine.BreakdownFromTypes(byBranch[row.BranchID]),
				Monthly:   toMonthlyFinancials(history),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("riesgo: historia mensual: %w", err)
	}

	ready := make([]engine.BranchRiskInput, 0, len(inputs))
	var failed []engine.EntityFailure
	for i, in := range inputs {
		if fetchErrs[i] != nil {
			id := strconv.FormatInt(totals[i].BranchID, 10)
			failed = append(failed, engine.EntityFailure{ID: id, Reason: fetchErrs[i].Error(), Err: fetchErrs[i]})
			continue
		}
		ready = append(ready, in)
	}

	analysis := engine.ComputeRiskAnalysis(ready, engine.WithScorer(scorer))
	analysis.Skipped = append(analysis.Skipped, failed...)
	logSkipped(uc.log, "risk", analysis.Skipped)

	uc.log.Debug().
		Int("branches", len(analysis.Branches)).
		Int("closure_candidates", len(analysis.ClosureCandidates)).
		Str("strategy", analysis.Strategy).
		Msg("análisis de riesgo calculado")
	return &analysis, nil
}

func (uc *RiskUseCase) scorer(strategy string) (engine.RiskScorer, error) {
	name := strings.ToLower(strings.TrimSpace(strategy))
	if name == "" {
		name = uc.defaultStrategy
	}
	switch name {
	case "", engine.BaselineScorer{}.Name():
		return engine.BaselineScorer{}, nil
	case engine.WeightedScorer{}.Name():
		return engine.WeightedScorer{}, nil
	}
	return nil, fmt.Errorf("estrategia de riesgo %q: %w", strategy, domain.ErrInvalidInput)
}

package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/branch-analytics/internal/application/ports"
	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/repository"
	"github.com/jhoicas/branch-analytics/pkg/logger"

	engine "github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

const maxYear = 9999

// Clock fuente de la fecha actual; inyectable en tests.
type Clock func() time.Time

// resolveYear 0 → año en curso; fuera de [1, 9999] es domain.ErrInvalidInput.
func resolveYear(year int, now Clock) (int, error) {
	if year == 0 {
		return now().Year(), nil
	}
	if year < 0 || year > maxYear {
		return 0, fmt.Errorf("año %d: %w", year, domain.ErrInvalidInput)
	}
	return year, nil
}

// validateHistoryYear como resolveYear pero 0 significa todo el histórico.
func validateHistoryYear(year int) error {
	if year < 0 || year > maxYear {
		return fmt.Errorf("año %d: %w", year, domain.ErrInvalidInput)
	}
	return nil
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toMonthlyAmounts(rows []repository.MonthlyAmountRow) []engine.MonthlyAmount {
	out := make([]engine.MonthlyAmount, len(rows))
	for i, r := range rows {
		out[i] = engine.MonthlyAmount{Month: r.Month, Amount: toFloat(r.Amount)}
	}
	return out
}

func toMonthlyFinancials(rows []repository.MonthlyFinancialRow) []engine.MonthlyFinancial {
	out := make([]engine.MonthlyFinancial, len(rows))
	for i, r := range rows {
		out[i] = engine.MonthlyFinancial{Month: r.Month, Revenue: toFloat(r.Revenue), Expenses: toFloat(r.Expenses)}
	}
	return out
}

// expensesByBranch agrupa las filas tipo → importe por sucursal.
func expensesByBranch(rows []repository.ExpenseTypeRow) map[int64]map[string]float64 {
	out := make(map[int64]map[string]float64)
	for _, r := range rows {
		m, ok := out[r.BranchID]
		if !ok {
			m = make(map[string]float64)
			out[r.BranchID] = m
		}
		m[r.ExpenseType] += toFloat(r.Amount)
	}
	return out
}

// sortByRevenueDesc ordena filas de sucursal por ingreso descendente, id ascendente en empate.
func sortByRevenueDesc(rows []repository.BranchTotalsRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].BranchID < rows[j].BranchID
	})
}

// cached devuelve el valor cacheado en key o lo calcula y lo guarda. Los
// errores de la caché se registran y nunca fallan la petición.
func cached[T any](ctx context.Context, c ports.ResponseCache, log *logger.Logger, key string, compute func() (T, error)) (T, error) {
	var hit T
	found, err := c.Get(ctx, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("lectura de caché")
	} else if found {
		log.Debug().Str("key", key).Msg("caché: hit")
		return hit, nil
	}

	value, err := compute()
	if err != nil {
		return value, err
	}
	if err := c.Set(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("escritura de caché")
	}
	return value, nil
}

// logSkipped registra cada entidad omitida de un lote.
func logSkipped(log *logger.Logger, scope string, skipped []engine.EntityFailure) {
	for _, f := range skipped {
		log.Warn().Str("scope", scope).Str("entity_id", f.ID).Err(f.Err).Msg("entidad omitida del análisis")
	}
}

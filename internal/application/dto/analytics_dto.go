package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/branch-analytics/internal/domain"
	"github.com/jhoicas/branch-analytics/internal/domain/analytics"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsQuery parámetros comunes de los endpoints del dashboard.
// year = 0 usa el año en curso.
type AnalyticsQuery struct {
	Year     int    `query:"year"`
	District string `query:"district"`
	BranchID int64  `query:"branch_id"`
	Category string `query:"category"`
}

// Filter filtro de agregados correspondiente a la consulta.
func (q AnalyticsQuery) Filter() analytics.Filter {
	return analytics.Filter{
		District: strings.TrimSpace(q.District),
		BranchID: q.BranchID,
		Category: strings.TrimSpace(q.Category),
	}
}

// CompareQuery parámetros de GET /api/analytics/compare.
type CompareQuery struct {
	BranchIDs string `query:"branch_ids"` // "1,2,3"
	Year      int    `query:"year"`
}

// IDs interpreta branch_ids; ids repetidos o no numéricos son domain.ErrInvalidInput.
func (q CompareQuery) IDs() ([]int64, error) {
	if strings.TrimSpace(q.BranchIDs) == "" {
		return nil, fmt.Errorf("branch_ids es obligatorio: %w", domain.ErrInvalidInput)
	}
	parts := strings.Split(q.BranchIDs, ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]bool, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("branch_ids: %q no es un id válido: %w", p, domain.ErrInvalidInput)
		}
		if seen[id] {
			return nil, fmt.Errorf("branch_ids: id %d repetido: %w", id, domain.ErrInvalidInput)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// RiskQuery parámetros de GET /api/analytics/risk. year = 0 analiza todo el histórico.
type RiskQuery struct {
	Strategy string `query:"strategy"` // baseline | weighted
	Year     int    `query:"year"`
}

// YearQuery parámetro único de año.
type YearQuery struct {
	Year int `query:"year"`
}

// ── Respuestas ────────────────────────────────────────────────────────────────

// KPIResponse indicadores del año con el filtro aplicado.
type KPIResponse struct {
	Year   int              `json:"year"`
	Filter analytics.Filter `json:"filter"`
	analytics.KPIResult
}

// MonthlyTrendResponse serie mensual con media móvil.
type MonthlyTrendResponse struct {
	Year   int                    `json:"year"`
	Points []analytics.TrendPoint `json:"points"`
}

// RevenueExpenseResponse ingresos vs gastos por mes.
type RevenueExpenseResponse struct {
	Year   int                             `json:"year"`
	Points []analytics.RevenueExpensePoint `json:"points"`
}

// BranchMarginsResponse margen por sucursal.
type BranchMarginsResponse struct {
	Year     int                      `json:"year"`
	Branches []analytics.BranchMargin `json:"branches"`
}

// CategoryBreakdownResponse participación por categoría.
type CategoryBreakdownResponse struct {
	Year       int                       `json:"year"`
	BranchID   int64                     `json:"branch_id,omitempty"`
	Categories []analytics.CategoryShare `json:"categories"`
}

// ComparisonResponse comparación de 2 a 5 sucursales.
type ComparisonResponse struct {
	Year int `json:"year"`
	analytics.BranchComparison
}

// OpportunityResponse ranking de distritos.
type OpportunityResponse struct {
	Year   int    `json:"year"`
	Region string `json:"region"`
	analytics.OpportunityAnalysis
}

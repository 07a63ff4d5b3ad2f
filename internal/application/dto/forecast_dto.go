package dto

import "github.com/jhoicas/branch-analytics/internal/domain/analytics"

// ForecastQuery parámetros de GET /api/forecast/branch/:id.
// months = 0 usa el horizonte configurado.
type ForecastQuery struct {
	Months int `query:"months"`
}

// ForecastResponse proyección de una sucursal.
type ForecastResponse struct {
	Branch BranchDTO `json:"branch"`
	*analytics.Forecast
}

// GrowthComparisonResponse perspectiva de crecimiento de todas las sucursales activas.
type GrowthComparisonResponse struct {
	Year     int                       `json:"year"`
	Branches []analytics.GrowthOutlook `json:"branches"`
}

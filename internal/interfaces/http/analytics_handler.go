package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
)

// AnalyticsHandler riesgo, oportunidad y comparación de sucursales.
type AnalyticsHandler struct {
	risk        RiskService
	opportunity OpportunityService
	comparison  ComparisonService
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(risk RiskService, opportunity OpportunityService, comparison ComparisonService) *AnalyticsHandler {
	return &AnalyticsHandler{risk: risk, opportunity: opportunity, comparison: comparison}
}

// GetRisk godoc
// @Summary      Riesgo de cierre de las sucursales activas
// @Description  Puntaje 0–100 por sucursal, candidatas a cierre (> 70) y
//               sucursales omitidas por falta de datos.
// @Tags         analytics
// @Produce      json
// @Param        strategy  query  string  false  "baseline | weighted (default: configurada)"
// @Param        year      query  int     false  "Año (default: todo el histórico)"
// @Success      200  {object}  analytics.RiskAnalysis
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/risk [get]
func (h *AnalyticsHandler) GetRisk(c *fiber.Ctx) error {
	var q dto.RiskQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.risk.Analyze(c.Context(), q.Strategy, q.Year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetOpportunity godoc
// @Summary      Potencial de expansión por distrito
// @Tags         analytics
// @Produce      json
// @Param        year  query  int  false  "Año del beneficio medio (default: año en curso)"
// @Success      200  {object}  dto.OpportunityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/opportunity [get]
func (h *AnalyticsHandler) GetOpportunity(c *fiber.Ctx) error {
	var q dto.YearQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.opportunity.Analyze(c.Context(), q.Year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Compare godoc
// @Summary      Comparación de 2 a 5 sucursales
// @Tags         analytics
// @Produce      json
// @Param        branch_ids  query  string  true   "Ids separados por coma (1,2,3)"
// @Param        year        query  int     false  "Año"
// @Success      200  {object}  dto.ComparisonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/compare [get]
func (h *AnalyticsHandler) Compare(c *fiber.Ctx) error {
	var q dto.CompareQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	ids, err := q.IDs()
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.comparison.Compare(c.Context(), ids, q.Year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

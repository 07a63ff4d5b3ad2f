package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
)

// DashboardHandler KPIs, series mensuales y desgloses.
type DashboardHandler struct {
	svc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetKPIs godoc
// @Summary      Indicadores principales del año
// @Description  Ingresos, gastos, beneficio neto, margen, variación interanual,
//               mejor/peor sucursal y resumen. Filtros opcionales.
// @Tags         analytics
// @Produce      json
// @Param        year       query  int     false  "Año (default: año en curso)"
// @Param        district   query  string  false  "Distrito"
// @Param        branch_id  query  int     false  "Sucursal"
// @Param        category   query  string  false  "Categoría de producto"
// @Success      200  {object}  dto.KPIResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/kpis [get]
func (h *DashboardHandler) GetKPIs(c *fiber.Ctx) error {
	var q dto.AnalyticsQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.GetKPIs(c.Context(), q.Year, q.Filter())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetMonthlyTrend godoc
// @Summary      Tendencia mensual con media móvil de 3 meses
// @Tags         analytics
// @Produce      json
// @Param        year       query  int     false  "Año"
// @Param        district   query  string  false  "Distrito"
// @Param        branch_id  query  int     false  "Sucursal"
// @Success      200  {object}  dto.MonthlyTrendResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/monthly-trend [get]
func (h *DashboardHandler) GetMonthlyTrend(c *fiber.Ctx) error {
	var q dto.AnalyticsQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.GetMonthlyTrend(c.Context(), q.Year, q.Filter())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetRevenueVsExpense godoc
// @Summary      Ingresos frente a gastos por mes
// @Tags         analytics
// @Produce      json
// @Param        year       query  int     false  "Año"
// @Param        district   query  string  false  "Distrito"
// @Param        branch_id  query  int     false  "Sucursal"
// @Success      200  {object}  dto.RevenueExpenseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/revenue-expense [get]
func (h *DashboardHandler) GetRevenueVsExpense(c *fiber.Ctx) error {
	var q dto.AnalyticsQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.GetRevenueVsExpense(c.Context(), q.Year, q.Filter())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetMargins godoc
// @Summary      Margen por sucursal, de mayor a menor ingreso
// @Tags         analytics
// @Produce      json
// @Param        year      query  int     false  "Año"
// @Param        district  query  string  false  "Distrito"
// @Success      200  {object}  dto.BranchMarginsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/margins [get]
func (h *DashboardHandler) GetMargins(c *fiber.Ctx) error {
	var q dto.AnalyticsQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.GetBranchMargins(c.Context(), q.Year, q.Filter().District)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetCategories godoc
// @Summary      Participación de cada categoría en las ventas
// @Tags         analytics
// @Produce      json
// @Param        year       query  int  false  "Año"
// @Param        branch_id  query  int  false  "Sucursal (default: toda la cadena)"
// @Success      200  {object}  dto.CategoryBreakdownResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/categories [get]
func (h *DashboardHandler) GetCategories(c *fiber.Ctx) error {
	var q dto.AnalyticsQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.GetCategoryBreakdown(c.Context(), q.Year, q.BranchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

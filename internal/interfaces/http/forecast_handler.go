package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
)

// ForecastHandler pronóstico por sucursal y perspectiva de crecimiento.
type ForecastHandler struct {
	svc ForecastService
}

func NewForecastHandler(svc ForecastService) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// GetBranchForecast godoc
// @Summary      Pronóstico de ventas de una sucursal
// @Description  Regresión lineal con índice estacional y banda de confianza.
//               422 si la sucursal tiene menos de 3 meses de historia.
// @Tags         forecast
// @Produce      json
// @Param        id      path   int  true   "Sucursal"
// @Param        months  query  int  false  "Meses a proyectar (1–12, default 6)"
// @Success      200  {object}  dto.ForecastResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/forecast/branch/{id} [get]
func (h *ForecastHandler) GetBranchForecast(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var q dto.ForecastQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.ForecastBranch(c.Context(), id, q.Months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// CompareGrowth godoc
// @Summary      Perspectiva de crecimiento de todas las sucursales
// @Tags         forecast
// @Produce      json
// @Param        year  query  int  false  "Año base"
// @Success      200  {object}  dto.GrowthComparisonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/forecast/compare [get]
func (h *ForecastHandler) CompareGrowth(c *fiber.Ctx) error {
	var q dto.YearQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.CompareGrowth(c.Context(), q.Year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

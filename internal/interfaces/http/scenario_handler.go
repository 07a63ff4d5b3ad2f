package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain"
)

// ScenarioHandler simulaciones "qué pasaría si".
type ScenarioHandler struct {
	svc ScenarioService
}

func NewScenarioHandler(svc ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{svc: svc}
}

// GetPresets godoc
// @Summary      Escenarios predefinidos
// @Tags         scenarios
// @Produce      json
// @Success      200  {object}  dto.ScenarioPresetsResponse
// @Router       /api/scenarios/presets [get]
func (h *ScenarioHandler) GetPresets(c *fiber.Ctx) error {
	res, err := h.svc.Presets()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Simulate godoc
// @Summary      Simula cambios de alquiler, salarios, servicios, ingresos y plantilla
// @Tags         scenarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScenarioRequest  true  "Sucursal, preset opcional y cambios"
// @Success      200  {object}  dto.ScenarioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scenarios/simulate [post]
func (h *ScenarioHandler) Simulate(c *fiber.Ctx) error {
	var req dto.ScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fmt.Errorf("cuerpo inválido: %v: %w", err, domain.ErrInvalidInput))
	}
	res, err := h.svc.Simulate(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

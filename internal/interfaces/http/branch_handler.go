package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
)

// BranchHandler datos de referencia de sucursales.
type BranchHandler struct {
	svc BranchService
}

func NewBranchHandler(svc BranchService) *BranchHandler {
	return &BranchHandler{svc: svc}
}

// List godoc
// @Summary      Sucursales activas
// @Tags         branches
// @Produce      json
// @Success      200  {array}  dto.BranchDTO
// @Router       /api/branches [get]
func (h *BranchHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Districts godoc
// @Summary      Distritos con sucursales
// @Tags         branches
// @Produce      json
// @Success      200  {object}  dto.DistrictsResponse
// @Router       /api/branches/districts [get]
func (h *BranchHandler) Districts(c *fiber.Ctx) error {
	res, err := h.svc.ListDistricts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// GetByID godoc
// @Summary      Sucursal con totales del año
// @Tags         branches
// @Produce      json
// @Param        id    path   int  true   "Sucursal"
// @Param        year  query  int  false  "Año (default: año en curso)"
// @Success      200  {object}  dto.BranchDetailDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var q dto.YearQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c, err)
	}
	res, err := h.svc.GetDetail(c.Context(), id, q.Year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

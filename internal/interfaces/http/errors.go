package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/branch-analytics/internal/application/dto"
	"github.com/jhoicas/branch-analytics/internal/domain"
)

// LocalError guarda el error original para que el logger de peticiones lo registre.
const LocalError = "handler_error"

// respondError traduce errores de dominio a status HTTP. Los 500 no exponen el
// detalle al cliente.
func respondError(c *fiber.Ctx, err error) error {
	c.Locals(LocalError, err)

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientData):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_DATA", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}

func invalidParams(c *fiber.Ctx, err error) error {
	return respondError(c, fmt.Errorf("parámetros de consulta inválidos: %v: %w", err, domain.ErrInvalidInput))
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q no es un id válido: %w", name, c.Params(name), domain.ErrInvalidInput)
	}
	return id, nil
}

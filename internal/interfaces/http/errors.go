package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soulf/catalogo-api/internal/application/dto"
	"github.com/soulf/catalogo-api/internal/domain"
)

// domainError traduce los errores de dominio a la respuesta HTTP.
// NotFound -> 404, duplicado -> 409, conflicto de estado -> 412, entrada
// inválida -> 400; todo lo demás es un 500.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "conflicto con un recurso existente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusPreconditionFailed).JSON(dto.ErrorResponse{Code: "PRECONDITION", Message: "el estado actual no permite la operación"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

// respondError traduce un error de dominio a status HTTP + ErrorResponse.
// Los 5xx se registran con el detalle; al cliente solo llega un mensaje genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := statusOf(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Int("status", status).Msg("error atendiendo petición")
		msg = "error interno"
		if status == fiber.StatusServiceUnavailable {
			msg = "fuente de datos no disponible"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrPreconditionViolation):
		return fiber.StatusUnprocessableEntity, "PRECONDITION_VIOLATION"
	case errors.Is(err, domain.ErrDataSource):
		return fiber.StatusServiceUnavailable, "DATA_SOURCE_UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

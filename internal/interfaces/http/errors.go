package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/domain"
)

// respondError mapea errores de dominio a respuestas HTTP. Un PartialFailure
// responde 409 con el detalle de líneas aplicadas: el caller debe saber qué
// quedó confirmado antes del fallo.
func respondError(c *fiber.Ctx, err error) error {
	var pf *domain.PartialFailure
	if errors.As(err, &pf) {
		return c.Status(fiber.StatusConflict).JSON(dto.PartialFailureResponse{
			Code:            "PARTIAL_FAILURE",
			Message:         "la operación aplicó algunas líneas y falló en otra",
			LineasAplicadas: pf.Applied,
			LineaFallida:    pf.Failed,
			Causa:           pf.Err.Error(),
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrReasonRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "REASON_REQUIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrManagerRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MANAGER_REQUIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrCodigoAlreadyUsed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CODIGO_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrCategoriaAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CATEGORIA_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrItemReferenced):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_REFERENCED", Message: err.Error()})
	case errors.Is(err, domain.ErrItemLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_LOCKED", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInconsistent):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INCONSISTENT", Message: err.Error()})
	case errors.Is(err, domain.ErrSessionFinalized):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_FINALIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrRequestClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REQUEST_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
)

// MovimientoHandler consultas de solo lectura sobre el libro de movimientos.
type MovimientoHandler struct {
	uc *movimientos.LibroUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *movimientos.LibroUseCase) *MovimientoHandler {
	return &MovimientoHandler{uc: uc}
}

// parseFecha interpreta un query param RFC 3339; nil si viene vacío.
func parseFecha(c *fiber.Ctx, nombre string) (*time.Time, error) {
	raw := c.Query(nombre)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Listar devuelve el libro, filtrable por ?tipo=, ?from=, ?to= (RFC 3339).
func (h *MovimientoHandler) Listar(c *fiber.Ctx) error {
	from, err := parseFecha(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC 3339"})
	}
	to, err := parseFecha(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC 3339"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	lista, err := h.uc.Listar(c.Context(), c.Query("tipo"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(lista))
	for _, m := range lista {
		out = append(out, dto.ToMovimientoResponse(m))
	}
	return c.JSON(out)
}

// ListarPorItem devuelve el kardex de un ítem.
func (h *MovimientoHandler) ListarPorItem(c *fiber.Ctx) error {
	from, err := parseFecha(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC 3339"})
	}
	to, err := parseFecha(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC 3339"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	lista, err := h.uc.ListarPorItem(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(lista))
	for _, m := range lista {
		out = append(out, dto.ToMovimientoResponse(m))
	}
	return c.JSON(out)
}

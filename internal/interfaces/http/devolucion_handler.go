package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/devoluciones"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
)

// DevolucionHandler maneja el registro y consulta de devoluciones.
type DevolucionHandler struct {
	uc *devoluciones.DevolucionUseCase
}

// NewDevolucionHandler construye el handler.
func NewDevolucionHandler(uc *devoluciones.DevolucionUseCase) *DevolucionHandler {
	return &DevolucionHandler{uc: uc}
}

// Registrar registra una devolución de materiales.
func (h *DevolucionHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarDevolucionRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	devolucion, err := h.uc.Registrar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDevolucionResponse(devolucion, nil))
}

// Listar devuelve las devoluciones más recientes.
func (h *DevolucionHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	lista, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DevolucionResponse, 0, len(lista))
	for _, d := range lista {
		out = append(out, dto.ToDevolucionResponse(d, nil))
	}
	return c.JSON(out)
}

// Detalle devuelve una devolución con sus líneas.
func (h *DevolucionHandler) Detalle(c *fiber.Ctx) error {
	devolucion, lineas, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDevolucionResponse(devolucion, lineas))
}

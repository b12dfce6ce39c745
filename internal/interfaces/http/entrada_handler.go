package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/entradas"
)

// EntradaHandler maneja el registro y consulta de entradas.
type EntradaHandler struct {
	uc *entradas.EntradaUseCase
}

// NewEntradaHandler construye el handler.
func NewEntradaHandler(uc *entradas.EntradaUseCase) *EntradaHandler {
	return &EntradaHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar entrada de mercancía
// @Tags         entradas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntradaRequest  true  "factura, observacion, items"
// @Success      201   {object}  dto.EntradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.PartialFailureResponse
// @Router       /api/entradas [post]
func (h *EntradaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarEntradaRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	entrada, err := h.uc.Registrar(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToEntradaResponse(entrada, nil))
}

// Listar devuelve las entradas más recientes.
func (h *EntradaHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	lista, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.EntradaResponse, 0, len(lista))
	for _, e := range lista {
		out = append(out, dto.ToEntradaResponse(e, nil))
	}
	return c.JSON(out)
}

// Detalle devuelve una entrada con sus líneas.
func (h *EntradaHandler) Detalle(c *fiber.Ctx) error {
	entrada, lineas, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToEntradaResponse(entrada, lineas))
}

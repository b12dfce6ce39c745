package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/fisico"
)

// InventarioHandler maneja las sesiones de inventario físico.
type InventarioHandler struct {
	uc *fisico.InventarioUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *fisico.InventarioUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// Iniciar abre una sesión de conteo (general o parcial).
func (h *InventarioHandler) Iniciar(c *fiber.Ctx) error {
	var in dto.IniciarInventarioRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	inv, err := h.uc.Iniciar(c.Context(), GetUserID(c), in.Tipo)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InventarioResponse{
		ID:          inv.ID,
		Tipo:        inv.Tipo,
		Estado:      inv.Estado,
		IDGestor:    inv.IDGestor,
		FechaInicio: inv.FechaInicio,
	})
}

// GuardarConteo crea o sobrescribe la línea de conteo de un ítem.
func (h *InventarioHandler) GuardarConteo(c *fiber.Ctx) error {
	var in dto.GuardarConteoRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	det, err := h.uc.GuardarConteo(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToConteoResponse(det))
}

// Finalizar godoc
// @Summary      Finalizar sesión de conteo físico
// @Description  Emite un ajuste por cada línea contada cuyo conteo difiere del
//               stock vigente y cierra la sesión de forma irreversible.
// @Tags         inventarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id de la sesión"
// @Success      200  {object}  dto.FinalizarInventarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/finalizar [post]
func (h *InventarioHandler) Finalizar(c *fiber.Ctx) error {
	out, err := h.uc.Finalizar(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Listar devuelve las sesiones con su cantidad de diferencias.
func (h *InventarioHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	lista, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lista)
}

// Detalle devuelve una sesión y sus líneas de conteo.
func (h *InventarioHandler) Detalle(c *fiber.Ctx) error {
	inv, detalles, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	conteos := make([]dto.ConteoResponse, 0, len(detalles))
	for _, d := range detalles {
		conteos = append(conteos, dto.ToConteoResponse(d))
	}
	return c.JSON(fiber.Map{
		"id":           inv.ID,
		"tipo":         inv.Tipo,
		"estado":       inv.Estado,
		"id_gestor":    inv.IDGestor,
		"fecha_inicio": inv.FechaInicio,
		"fecha_fin":    inv.FechaFin,
		"conteos":      conteos,
	})
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/items"
)

// ItemHandler maneja el catálogo de ítems y categorías.
type ItemHandler struct {
	uc *items.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *items.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar ítem del catálogo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarItemRequest  true  "codigo, nombre, id_categoria, unidad, stock_minimo, inventario_inicial"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarItemRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	item, err := h.uc.Registrar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// Actualizar edita los campos descriptivos; un cambio de stock_real pasa por
// el mutador como ajuste manual y exige motivo.
func (h *ItemHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarItemRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	item, err := h.uc.Actualizar(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// AjusteManual registra un ajuste directo de stock.
func (h *ItemHandler) AjusteManual(c *fiber.Ctx) error {
	var in dto.AjusteManualRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	mov, err := h.uc.AjusteManual(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id_movimiento": mov.ID,
		"cantidad":      mov.Cantidad,
	})
}

// Listar devuelve el catálogo; ?q= filtra por nombre o código sin tildes.
func (h *ItemHandler) Listar(c *fiber.Ctx) error {
	lista, err := h.uc.Listar(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(lista))
	for _, it := range lista {
		out = append(out, dto.ToItemResponse(it))
	}
	return c.JSON(out)
}

// StockBajo devuelve los ítems en o por debajo del mínimo.
func (h *ItemHandler) StockBajo(c *fiber.Ctx) error {
	lista, err := h.uc.StockBajo(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(lista))
	for _, it := range lista {
		out = append(out, dto.ToItemResponse(it))
	}
	return c.JSON(out)
}

// Detalle devuelve un ítem por id.
func (h *ItemHandler) Detalle(c *fiber.Ctx) error {
	item, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Eliminar borra un ítem sin referencias.
func (h *ItemHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Desbloquear levanta el veto por inconsistencia (solo admin).
func (h *ItemHandler) Desbloquear(c *fiber.Ctx) error {
	if err := h.uc.Desbloquear(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ítem desbloqueado"})
}

// CrearCategoria da de alta una categoría.
func (h *ItemHandler) CrearCategoria(c *fiber.Ctx) error {
	var in dto.CrearCategoriaRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	categoria, err := h.uc.CrearCategoria(c.Context(), in.Nombre)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCategoriaResponse(categoria))
}

// ListarCategorias devuelve las categorías.
func (h *ItemHandler) ListarCategorias(c *fiber.Ctx) error {
	categorias, err := h.uc.ListarCategorias(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, cat := range categorias {
		out = append(out, dto.ToCategoriaResponse(cat))
	}
	return c.JSON(out)
}

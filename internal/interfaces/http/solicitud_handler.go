package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/solicitudes"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

// SolicitudHandler maneja el flujo de solicitudes de materiales.
type SolicitudHandler struct {
	uc *solicitudes.SolicitudUseCase
}

// NewSolicitudHandler construye el handler.
func NewSolicitudHandler(uc *solicitudes.SolicitudUseCase) *SolicitudHandler {
	return &SolicitudHandler{uc: uc}
}

// Crear registra una solicitud pendiente a nombre del usuario autenticado.
func (h *SolicitudHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearSolicitudRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	sol, err := h.uc.Crear(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSolicitudResponse(sol, nil))
}

// Aprobar godoc
// @Summary      Aprobar solicitud
// @Description  Transición terminal. Exige id_gestor cuando la solicitud tiene
//               líneas de catálogo; notifica al solicitante y al gestor.
// @Tags         solicitudes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la solicitud"
// @Param        body  body  dto.AprobarSolicitudRequest  true  "id_gestor opcional"
// @Success      200   {object}  dto.SolicitudResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/aprobar [post]
func (h *SolicitudHandler) Aprobar(c *fiber.Ctx) error {
	var in dto.AprobarSolicitudRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	sol, err := h.uc.Aprobar(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSolicitudResponse(sol, nil))
}

// Rechazar marca la solicitud como rechazada con motivo.
func (h *SolicitudHandler) Rechazar(c *fiber.Ctx) error {
	var in dto.RechazarSolicitudRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	sol, err := h.uc.Rechazar(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSolicitudResponse(sol, nil))
}

// Listar devuelve solicitudes. Un solicitante solo ve las suyas; admin y
// gestor ven todas y pueden filtrar por ?solicitante=, ?estado=, ?q=.
func (h *SolicitudHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filtro := repository.FiltroSolicitudes{
		IDSolicitante: c.Query("solicitante"),
		Estado:        c.Query("estado"),
		Texto:         c.Query("q"),
	}
	if GetRol(c) == entity.RolSolicitante {
		filtro.IDSolicitante = GetUserID(c)
	}

	lista, err := h.uc.Listar(c.Context(), filtro, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SolicitudResponse, 0, len(lista))
	for _, s := range lista {
		out = append(out, dto.ToSolicitudResponse(s, nil))
	}
	return c.JSON(out)
}

// Detalle devuelve la solicitud con sus líneas. Un solicitante solo puede ver
// las propias.
func (h *SolicitudHandler) Detalle(c *fiber.Ctx) error {
	sol, lineas, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if GetRol(c) == entity.RolSolicitante && sol.IDSolicitante != GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puedes ver tus propias solicitudes"})
	}
	return c.JSON(dto.ToSolicitudResponse(sol, lineas))
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/alertas"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// AlertaHandler consulta y administración de alertas.
type AlertaHandler struct {
	uc *alertas.AlertaUseCase
}

// NewAlertaHandler construye el handler.
func NewAlertaHandler(uc *alertas.AlertaUseCase) *AlertaHandler {
	return &AlertaHandler{uc: uc}
}

// Ultimas devuelve las últimas alertas activas del usuario autenticado
// (?limit=, por defecto 5).
func (h *AlertaHandler) Ultimas(c *fiber.Ctx) error {
	lista, err := h.uc.Ultimas(c.Context(), GetUserID(c), c.QueryInt("limit", 5))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapAlertas(lista))
}

// Historial devuelve todas las alertas del usuario autenticado.
func (h *AlertaHandler) Historial(c *fiber.Ctx) error {
	lista, err := h.uc.PorUsuario(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapAlertas(lista))
}

// Todas devuelve todas las alertas (solo admin).
func (h *AlertaHandler) Todas(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	lista, err := h.uc.Todas(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mapAlertas(lista))
}

// MarcarInactiva desactiva una alerta del propio usuario.
func (h *AlertaHandler) MarcarInactiva(c *fiber.Ctx) error {
	alerta, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if alerta == nil {
		return respondError(c, domain.ErrNotFound)
	}
	if alerta.IDUsuario != GetUserID(c) && GetRol(c) != entity.RolAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puedes desactivar tus propias alertas"})
	}
	if err := h.uc.MarcarInactiva(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta desactivada"})
}

func mapAlertas(lista []*entity.Alerta) []dto.AlertaResponse {
	out := make([]dto.AlertaResponse, 0, len(lista))
	for _, a := range lista {
		out = append(out, dto.ToAlertaResponse(a))
	}
	return out
}

package dto

import (
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// AlertaResponse alerta en respuestas.
type AlertaResponse struct {
	ID        string    `json:"id"`
	Tipo      string    `json:"tipo"`
	Mensaje   string    `json:"mensaje"`
	IDUsuario string    `json:"id_usuario"`
	Estado    string    `json:"estado"`
	Nivel     string    `json:"nivel"`
	Fecha     time.Time `json:"fecha"`
}

// ToAlertaResponse mapea la entidad a la respuesta.
func ToAlertaResponse(a *entity.Alerta) AlertaResponse {
	return AlertaResponse{
		ID:        a.ID,
		Tipo:      a.Tipo,
		Mensaje:   a.Mensaje,
		IDUsuario: a.IDUsuario,
		Estado:    a.Estado,
		Nivel:     a.Nivel,
		Fecha:     a.Fecha,
	}
}

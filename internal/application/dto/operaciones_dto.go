package dto

import (
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// LineaEntradaRequest línea de una entrada.
type LineaEntradaRequest struct {
	IDItem   string `json:"id_item" validate:"required,uuid4"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
}

// RegistrarEntradaRequest body para POST /api/entradas.
type RegistrarEntradaRequest struct {
	Factura     string                `json:"factura"`
	Observacion string                `json:"observacion"`
	Items       []LineaEntradaRequest `json:"items" validate:"required,min=1,dive"`
}

// LineaSalidaRequest línea de una salida. El despacho puede ser parcial:
// cantidad_despachada <= cantidad_requerida.
type LineaSalidaRequest struct {
	IDItem             string `json:"id_item" validate:"required,uuid4"`
	CantidadRequerida  int    `json:"cantidad_requerida" validate:"required,gt=0"`
	CantidadDespachada int    `json:"cantidad_despachada" validate:"required,gt=0,ltefield=CantidadRequerida"`
}

// RegistrarSalidaRequest body para POST /api/salidas.
// Firma se envía como multipart aparte; aquí viaja solo la metadata.
type RegistrarSalidaRequest struct {
	IDSolicitante string               `json:"id_solicitante" validate:"required,uuid4"`
	Actividad     string               `json:"actividad" validate:"required"`
	IDSolicitud   string               `json:"id_solicitud" validate:"omitempty,uuid4"`
	Items         []LineaSalidaRequest `json:"items" validate:"required,min=1,dive"`
}

// LineaDevolucionRequest línea de una devolución.
type LineaDevolucionRequest struct {
	IDItem   string `json:"id_item" validate:"required,uuid4"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
}

// RegistrarDevolucionRequest body para POST /api/devoluciones.
type RegistrarDevolucionRequest struct {
	IDSolicitante string                   `json:"id_solicitante" validate:"required,uuid4"`
	Observacion   string                   `json:"observacion"`
	Items         []LineaDevolucionRequest `json:"items" validate:"required,min=1,dive"`
}

// AjusteManualRequest body para POST /api/items/:id/ajustes.
// Motivo es obligatorio cuando cantidad != 0.
type AjusteManualRequest struct {
	Cantidad int    `json:"cantidad"`
	Motivo   string `json:"motivo"`
}

// EntradaResponse cabecera de entrada en respuestas.
type EntradaResponse struct {
	ID          string                 `json:"id"`
	IDGestor    string                 `json:"id_gestor"`
	Factura     string                 `json:"factura,omitempty"`
	Observacion string                 `json:"observacion,omitempty"`
	Fecha       time.Time              `json:"fecha"`
	Items       []LineaEntradaResponse `json:"items,omitempty"`
}

// LineaEntradaResponse línea de entrada en respuestas.
type LineaEntradaResponse struct {
	IDItem   string `json:"id_item"`
	Cantidad int    `json:"cantidad"`
}

// ToEntradaResponse mapea cabecera y líneas (líneas puede ser nil en listados).
func ToEntradaResponse(e *entity.Entrada, lineas []*entity.EntradaItem) EntradaResponse {
	out := EntradaResponse{
		ID:          e.ID,
		IDGestor:    e.IDGestor,
		Factura:     e.Factura,
		Observacion: e.Observacion,
		Fecha:       e.Fecha,
	}
	for _, l := range lineas {
		out.Items = append(out.Items, LineaEntradaResponse{IDItem: l.IDItem, Cantidad: l.Cantidad})
	}
	return out
}

// SalidaResponse cabecera de salida en respuestas.
type SalidaResponse struct {
	ID            string                `json:"id"`
	IDSolicitante string                `json:"id_solicitante"`
	IDGestor      string                `json:"id_gestor"`
	Actividad     string                `json:"actividad"`
	Firma         string                `json:"firma,omitempty"`
	IDSolicitud   string                `json:"id_solicitud,omitempty"`
	Fecha         time.Time             `json:"fecha"`
	Items         []LineaSalidaResponse `json:"items,omitempty"`
}

// LineaSalidaResponse línea de salida en respuestas.
type LineaSalidaResponse struct {
	IDItem             string `json:"id_item"`
	CantidadRequerida  int    `json:"cantidad_requerida"`
	CantidadDespachada int    `json:"cantidad_despachada"`
}

// ToSalidaResponse mapea cabecera y líneas (líneas puede ser nil en listados).
func ToSalidaResponse(s *entity.Salida, lineas []*entity.SalidaItem) SalidaResponse {
	out := SalidaResponse{
		ID:            s.ID,
		IDSolicitante: s.IDSolicitante,
		IDGestor:      s.IDGestor,
		Actividad:     s.Actividad,
		Firma:         s.Firma,
		IDSolicitud:   s.IDSolicitud,
		Fecha:         s.Fecha,
	}
	for _, l := range lineas {
		out.Items = append(out.Items, LineaSalidaResponse{
			IDItem:             l.IDItem,
			CantidadRequerida:  l.CantidadRequerida,
			CantidadDespachada: l.CantidadDespachada,
		})
	}
	return out
}

// DevolucionResponse cabecera de devolución en respuestas.
type DevolucionResponse struct {
	ID            string                    `json:"id"`
	IDSolicitante string                    `json:"id_solicitante"`
	IDGestor      string                    `json:"id_gestor"`
	Observacion   string                    `json:"observacion,omitempty"`
	Fecha         time.Time                 `json:"fecha"`
	Items         []LineaDevolucionResponse `json:"items,omitempty"`
}

// LineaDevolucionResponse línea de devolución en respuestas.
type LineaDevolucionResponse struct {
	IDItem   string `json:"id_item"`
	Cantidad int    `json:"cantidad"`
}

// ToDevolucionResponse mapea cabecera y líneas (líneas puede ser nil en listados).
func ToDevolucionResponse(d *entity.Devolucion, lineas []*entity.DevolucionItem) DevolucionResponse {
	out := DevolucionResponse{
		ID:            d.ID,
		IDSolicitante: d.IDSolicitante,
		IDGestor:      d.IDGestor,
		Observacion:   d.Observacion,
		Fecha:         d.Fecha,
	}
	for _, l := range lineas {
		out.Items = append(out.Items, LineaDevolucionResponse{IDItem: l.IDItem, Cantidad: l.Cantidad})
	}
	return out
}

// MovimientoResponse línea del libro en respuestas.
type MovimientoResponse struct {
	ID          string    `json:"id"`
	Tipo        string    `json:"tipo"`
	IDItem      string    `json:"id_item"`
	Cantidad    int       `json:"cantidad"`
	OrigenTipo  string    `json:"origen_tipo"`
	OrigenID    string    `json:"origen_id"`
	Descripcion string    `json:"descripcion,omitempty"`
	Fecha       time.Time `json:"fecha"`
}

// ToMovimientoResponse mapea una línea del libro.
func ToMovimientoResponse(m *entity.Movimiento) MovimientoResponse {
	return MovimientoResponse{
		ID:          m.ID,
		Tipo:        m.Tipo,
		IDItem:      m.IDItem,
		Cantidad:    m.Cantidad,
		OrigenTipo:  string(m.Origen.Tipo),
		OrigenID:    m.Origen.ID,
		Descripcion: m.Descripcion,
		Fecha:       m.Fecha,
	}
}

package dto

import (
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// LineaSolicitudRequest línea de catálogo de una solicitud.
type LineaSolicitudRequest struct {
	IDItem   string `json:"id_item" validate:"required,uuid4"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
}

// CrearSolicitudRequest body para POST /api/solicitudes.
// Puede traer líneas de catálogo, descripción de material nuevo, o ambas;
// al menos una de las dos.
type CrearSolicitudRequest struct {
	Actividad           string                  `json:"actividad" validate:"required"`
	FechaActividad      *time.Time              `json:"fecha_actividad"`
	DescripcionMaterial string                  `json:"descripcion_material"`
	Items               []LineaSolicitudRequest `json:"items" validate:"omitempty,dive"`
}

// AprobarSolicitudRequest body para POST /api/solicitudes/:id/aprobar.
// IDGestor es obligatorio cuando la solicitud tiene líneas de catálogo.
type AprobarSolicitudRequest struct {
	IDGestor string `json:"id_gestor" validate:"omitempty,uuid4"`
}

// RechazarSolicitudRequest body para POST /api/solicitudes/:id/rechazar.
type RechazarSolicitudRequest struct {
	Motivo string `json:"motivo"`
}

// SolicitudResponse solicitud en respuestas.
type SolicitudResponse struct {
	ID                  string                   `json:"id"`
	IDSolicitante       string                   `json:"id_solicitante"`
	IDAdministrador     string                   `json:"id_administrador,omitempty"`
	IDGestor            string                   `json:"id_gestor,omitempty"`
	Actividad           string                   `json:"actividad"`
	DescripcionMaterial string                   `json:"descripcion_material,omitempty"`
	FechaActividad      *time.Time               `json:"fecha_actividad,omitempty"`
	FechaSolicitud      time.Time                `json:"fecha_solicitud"`
	Estado              string                   `json:"estado"`
	MotivoRechazo       string                   `json:"motivo_rechazo,omitempty"`
	Items               []LineaSolicitudResponse `json:"items,omitempty"`
}

// LineaSolicitudResponse línea de catálogo de una solicitud en respuestas.
type LineaSolicitudResponse struct {
	IDItem   string `json:"id_item"`
	Cantidad int    `json:"cantidad"`
}

// ToSolicitudResponse mapea cabecera y líneas (líneas puede ser nil en listados).
func ToSolicitudResponse(s *entity.Solicitud, lineas []*entity.SolicitudItem) SolicitudResponse {
	out := SolicitudResponse{
		ID:                  s.ID,
		IDSolicitante:       s.IDSolicitante,
		IDAdministrador:     s.IDAdministrador,
		IDGestor:            s.IDGestor,
		Actividad:           s.Actividad,
		DescripcionMaterial: s.DescripcionMaterial,
		FechaActividad:      s.FechaActividad,
		FechaSolicitud:      s.FechaSolicitud,
		Estado:              s.Estado,
		MotivoRechazo:       s.MotivoRechazo,
	}
	for _, l := range lineas {
		out.Items = append(out.Items, LineaSolicitudResponse{IDItem: l.IDItem, Cantidad: l.Cantidad})
	}
	return out
}

package entity

import "time"

// Estados de una solicitud de materiales. pendiente → {aprobada, rechazada},
// ambas terminales: no hay reapertura ni modificación posterior.
const (
	SolicitudPendiente = "pendiente"
	SolicitudAprobada  = "aprobada"
	SolicitudRechazada = "rechazada"
)

// Solicitud petición de materiales de un solicitante.
// DescripcionMaterial permite pedir material que aún no existe en el catálogo.
// IDGestor se asigna solo al aprobar cuando hay líneas de catálogo; la
// aprobación es una notificación, no ejecuta la salida (aprobada != despachada
// y el motor no rastrea cumplimiento).
type Solicitud struct {
	ID                  string
	IDSolicitante       string
	IDAdministrador     string // admin que procesó; vacío mientras está pendiente
	IDGestor            string // gestor asignado al aprobar (si hay ítems de catálogo)
	Actividad           string
	DescripcionMaterial string
	FechaActividad      *time.Time
	FechaSolicitud      time.Time
	Estado              string // pendiente, aprobada, rechazada
	MotivoRechazo       string
}

// Procesada indica si la solicitud alcanzó un estado terminal.
func (s *Solicitud) Procesada() bool {
	return s.Estado != SolicitudPendiente
}

// SolicitudItem línea de una solicitud que referencia un ítem del catálogo.
type SolicitudItem struct {
	ID          string
	IDSolicitud string
	IDItem      string
	Cantidad    int
}

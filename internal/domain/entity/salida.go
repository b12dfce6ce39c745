package entity

import "time"

// Salida cabecera de un despacho de materiales a un solicitante.
// Firma es la URL de la firma digitalizada en object storage (opcional).
// IDSolicitud referencia informativa a la solicitud aprobada que motivó el
// despacho; el motor no valida cumplimiento contra ella.
type Salida struct {
	ID            string
	IDSolicitante string
	IDGestor      string
	Actividad     string
	Firma         string
	IDSolicitud   string // vacío si la salida no nació de una solicitud
	Fecha         time.Time
}

// SalidaItem línea de una salida. El despacho puede ser parcial:
// CantidadDespachada <= CantidadRequerida; ambas se conservan para auditoría.
type SalidaItem struct {
	ID                 string
	IDSalida           string
	IDItem             string
	CantidadRequerida  int
	CantidadDespachada int
}

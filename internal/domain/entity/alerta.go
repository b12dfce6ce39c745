package entity

import "time"

// Tipos de alerta que emite el motor.
const (
	AlertaStockBajo          = "stock_bajo"
	AlertaSolicitudAprobada  = "solicitud_aprobada"
	AlertaSolicitudRechazada = "solicitud_rechazada"
	AlertaSalidaPendiente    = "salida_pendiente" // al gestor: solicitud aprobada por despachar
)

// Estados y niveles de alerta.
const (
	AlertaActiva   = "activa"
	AlertaInactiva = "inactiva"

	NivelBaja  = "baja"
	NivelMedia = "media"
	NivelAlta  = "alta"
)

// Alerta notificación dirigida a un usuario. El motor solo la emite; la
// entrega y el estado leído/no leído son responsabilidad del consumidor.
type Alerta struct {
	ID        string
	Tipo      string
	Mensaje   string
	IDUsuario string
	Estado    string // activa, inactiva
	Nivel     string // baja, media, alta
	Fecha     time.Time
}

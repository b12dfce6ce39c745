package entity

import "time"

// Devolucion cabecera de una devolución de materiales entregados previamente.
type Devolucion struct {
	ID            string
	IDSolicitante string
	IDGestor      string
	Observacion   string
	Fecha         time.Time
}

// DevolucionItem línea de una devolución. Cantidad siempre > 0.
type DevolucionItem struct {
	ID           string
	IDDevolucion string
	IDItem       string
	Cantidad     int
}

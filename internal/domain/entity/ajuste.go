package entity

import "time"

// Orígenes de un ajuste manual.
const (
	AjusteManual     = "ajuste manual"     // edición directa del stock por un gestor
	AjusteInventario = "ajuste inventario" // discrepancia resuelta al finalizar un conteo físico
)

// Ajuste cambio de stock no clasificado como entrada/salida/devolución.
// Motivo es obligatorio siempre que Cantidad != 0.
type Ajuste struct {
	ID       string
	IDItem   string
	IDGestor string
	Tipo     string // ajuste manual, ajuste inventario
	Cantidad int    // delta con signo
	Motivo   string
	Fecha    time.Time
}

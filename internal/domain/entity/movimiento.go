package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovimientoEntrada    = "entrada"
	MovimientoSalida     = "salida"
	MovimientoDevolucion = "devolucion"
	MovimientoAjuste     = "ajuste"
)

// OrigenTipo identifica la tabla de la que proviene un movimiento.
// Variante explícita en lugar de una FK sin tipo: todo consumidor del libro
// debe manejar los cuatro casos.
type OrigenTipo string

const (
	OrigenEntradaItem    OrigenTipo = "entradaItem"
	OrigenSalidaItem     OrigenTipo = "salidaItem"
	OrigenDevolucionItem OrigenTipo = "devolucionItem"
	OrigenAjuste         OrigenTipo = "ajuste"
)

// Valido verifica que la variante sea una de las cuatro conocidas.
func (o OrigenTipo) Valido() bool {
	switch o {
	case OrigenEntradaItem, OrigenSalidaItem, OrigenDevolucionItem, OrigenAjuste:
		return true
	}
	return false
}

// Origen referencia polimórfica al registro que causó un movimiento.
type Origen struct {
	Tipo OrigenTipo
	ID   string // id de la fila en la tabla indicada por Tipo
}

// Movimiento es una línea inmutable del libro de inventario. Se crea
// exactamente una por invocación del mutador de stock; nunca se actualiza ni
// se elimina; las correcciones son nuevos movimientos.
type Movimiento struct {
	ID          string
	Tipo        string // entrada, salida, devolucion, ajuste
	IDItem      string
	Cantidad    int // delta con signo: positivo entrada/devolución, negativo salida, cualquiera ajuste
	Origen      Origen
	Descripcion string
	Fecha       time.Time
}

package entity

import "time"

// Item representa un ítem de papelería del catálogo.
// StockReal es la única cantidad mutable y solo la modifican los mutadores de
// stock (entrada, salida, devolución, ajuste); invariante: StockReal >= 0 y
// StockReal == InventarioInicial + suma de movimientos del ítem.
type Item struct {
	ID                string
	Codigo            string // código único visible (ej. PAP-0042)
	Nombre            string
	IDCategoria       string
	Tipo              string // consumible, devolutivo
	Unidad            string // unidad de medida (unidad, resma, caja...)
	Ubicacion         string
	StockMinimo       int
	InventarioInicial int // cantidad semilla al registrar el ítem
	StockReal         int
	Imagen            string // URL en object storage, vacío si no tiene
	Bloqueado         bool   // true si se detectó inconsistencia contra el libro; veta mutaciones
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StockBajo indica si el ítem está en o por debajo de su stock mínimo.
// Derivado siempre del estado actual; nunca se persiste.
func (i *Item) StockBajo() bool {
	return i.StockReal <= i.StockMinimo
}

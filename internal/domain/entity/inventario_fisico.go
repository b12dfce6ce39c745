package entity

import "time"

// Tipos y estados de un inventario físico.
const (
	InventarioGeneral = "general" // pre-carga una línea por cada ítem del catálogo
	InventarioParcial = "parcial" // inicia vacío, el gestor agrega ítems

	InventarioEnProgreso = "en_progreso"
	InventarioFinalizado = "finalizado"
)

// InventarioFisico sesión de conteo físico contra el catálogo.
// Transición en_progreso → finalizado, irreversible. Los ajustes por
// discrepancia se emiten únicamente al finalizar, contra el stock releído en
// ese momento, de modo que entradas y salidas concurrentes durante un conteo
// largo se reconcilian en lugar de clasificarse como error de conteo.
type InventarioFisico struct {
	ID          string
	Tipo        string // general, parcial
	Estado      string // en_progreso, finalizado
	IDGestor    string
	FechaInicio time.Time
	FechaFin    *time.Time // nil mientras está en progreso
}

// Finalizado indica si la sesión ya no admite conteos ni re-finalización.
func (inv *InventarioFisico) Finalizado() bool {
	return inv.Estado == InventarioFinalizado
}

// InventarioFisicoDetalle línea de conteo de una sesión.
// StockSistema se captura en el momento de guardar el conteo; sirve para que
// el operador vea la foto que tenía al contar, pero la reconciliación final
// NO usa este valor sino el stock vigente al finalizar.
type InventarioFisicoDetalle struct {
	ID           string
	IDInventario string
	IDItem       string
	StockSistema int
	StockContado int
	Contado      bool // false en líneas pre-cargadas de un inventario general aún sin contar
	Fecha        time.Time
}

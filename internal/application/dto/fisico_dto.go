package dto

import (
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// IniciarInventarioRequest body para POST /api/inventarios.
type IniciarInventarioRequest struct {
	Tipo string `json:"tipo" validate:"required,oneof=general parcial"`
}

// GuardarConteoRequest body para PUT /api/inventarios/:id/conteos.
type GuardarConteoRequest struct {
	IDItem       string `json:"id_item" validate:"required,uuid4"`
	StockContado int    `json:"stock_contado" validate:"min=0"`
}

// InventarioResponse sesión de inventario físico en respuestas de listado.
type InventarioResponse struct {
	ID              string     `json:"id"`
	Tipo            string     `json:"tipo"`
	Estado          string     `json:"estado"`
	IDGestor        string     `json:"id_gestor"`
	FechaInicio     time.Time  `json:"fecha_inicio"`
	FechaFin        *time.Time `json:"fecha_fin,omitempty"`
	CantDiferencias int        `json:"cant_diferencias"`
}

// ConteoResponse línea de conteo en el detalle de una sesión.
type ConteoResponse struct {
	IDItem       string `json:"id_item"`
	StockSistema int    `json:"stock_sistema"`
	StockContado int    `json:"stock_contado"`
	Contado      bool   `json:"contado"`
	Diferencia   int    `json:"diferencia"` // contado - sistema capturado (informativo)
}

// ToConteoResponse mapea una línea de conteo.
func ToConteoResponse(d *entity.InventarioFisicoDetalle) ConteoResponse {
	return ConteoResponse{
		IDItem:       d.IDItem,
		StockSistema: d.StockSistema,
		StockContado: d.StockContado,
		Contado:      d.Contado,
		Diferencia:   d.StockContado - d.StockSistema,
	}
}

// FinalizarInventarioResponse resultado de finalizar: los ajustes emitidos.
type FinalizarInventarioResponse struct {
	IDInventario    string   `json:"id_inventario"`
	AjustesEmitidos int      `json:"ajustes_emitidos"`
	ItemsAjustados  []string `json:"items_ajustados"`
}

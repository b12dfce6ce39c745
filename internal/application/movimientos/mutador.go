package movimientos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// Input entrada para aplicar un movimiento de stock.
// Cantidad es el delta con signo: positivo para entrada/devolución, negativo
// para salida, cualquier signo para ajuste. Motivo es obligatorio en ajustes
// con delta distinto de cero.
type Input struct {
	IDItem      string
	Tipo        string // entrada, salida, devolucion, ajuste
	Cantidad    int
	Origen      entity.Origen
	Descripcion string
	Motivo      string
}

// Aplicar es la única autoridad que escribe stockReal. Ejecutar SIEMPRE dentro
// de una transacción abierta (TxRunner): bloquea la fila del ítem
// (SELECT FOR UPDATE), verifica la consistencia contra el libro, valida el
// delta contra el tipo, actualiza el stock y agrega exactamente un movimiento.
// La lectura y la escritura del stock ocurren con el lock sostenido, por lo
// que dos salidas concurrentes sobre el mismo ítem se serializan.
func Aplicar(r TxRepos, in Input, now time.Time) (*entity.Movimiento, error) {
	if err := validar(in); err != nil {
		return nil, err
	}

	item, err := r.Items.GetForUpdate(in.IDItem)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Bloqueado {
		return nil, domain.ErrItemLocked
	}

	// Guardia de invariante: stockReal debe igualar inventarioInicial + suma
	// del libro. Si no, el ítem queda bloqueado y la mutación se rechaza;
	// nunca se auto-corrige en silencio.
	suma, err := r.Movimientos.SumByItem(in.IDItem)
	if err != nil {
		return nil, err
	}
	if item.InventarioInicial+suma != item.StockReal {
		if lockErr := r.Items.SetBloqueado(in.IDItem, true); lockErr != nil {
			return nil, lockErr
		}
		return nil, fmt.Errorf("ítem %s (esperado %d, almacenado %d): %w",
			item.Codigo, item.InventarioInicial+suma, item.StockReal, domain.ErrStockInconsistent)
	}

	nuevoStock := item.StockReal + in.Cantidad
	if nuevoStock < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if err := r.Items.UpdateStock(in.IDItem, nuevoStock); err != nil {
		return nil, err
	}

	mov := &entity.Movimiento{
		ID:          uuid.New().String(),
		Tipo:        in.Tipo,
		IDItem:      in.IDItem,
		Cantidad:    in.Cantidad,
		Origen:      in.Origen,
		Descripcion: in.Descripcion,
		Fecha:       now,
	}
	if err := r.Movimientos.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// validar rechaza antes de tocar la BD: signo del delta según tipo, variante
// de origen coherente y motivo presente en ajustes con delta != 0.
func validar(in Input) error {
	if in.IDItem == "" || !in.Origen.Tipo.Valido() || in.Origen.ID == "" {
		return domain.ErrInvalidInput
	}
	switch in.Tipo {
	case entity.MovimientoEntrada:
		if in.Cantidad <= 0 || in.Origen.Tipo != entity.OrigenEntradaItem {
			return domain.ErrInvalidInput
		}
	case entity.MovimientoSalida:
		if in.Cantidad >= 0 || in.Origen.Tipo != entity.OrigenSalidaItem {
			return domain.ErrInvalidInput
		}
	case entity.MovimientoDevolucion:
		if in.Cantidad <= 0 || in.Origen.Tipo != entity.OrigenDevolucionItem {
			return domain.ErrInvalidInput
		}
	case entity.MovimientoAjuste:
		if in.Origen.Tipo != entity.OrigenAjuste {
			return domain.ErrInvalidInput
		}
		if in.Cantidad != 0 && in.Motivo == "" {
			return domain.ErrReasonRequired
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

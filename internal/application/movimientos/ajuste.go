package movimientos

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// AplicarAjuste crea la fila de ajuste y su movimiento dentro de la
// transacción en curso. Lo usan la edición directa de stock del catálogo y el
// reconciliador de inventario físico; el motivo es obligatorio con delta != 0.
func AplicarAjuste(r TxRepos, idItem, idGestor string, delta int, motivo, tipoAjuste, descripcion string, now time.Time) (*entity.Movimiento, error) {
	if delta != 0 && strings.TrimSpace(motivo) == "" {
		return nil, domain.ErrReasonRequired
	}
	ajuste := &entity.Ajuste{
		ID:       uuid.New().String(),
		IDItem:   idItem,
		IDGestor: idGestor,
		Tipo:     tipoAjuste,
		Cantidad: delta,
		Motivo:   motivo,
		Fecha:    now,
	}
	if err := r.Ajustes.Create(ajuste); err != nil {
		return nil, err
	}
	return Aplicar(r, Input{
		IDItem:      idItem,
		Tipo:        entity.MovimientoAjuste,
		Cantidad:    delta,
		Origen:      entity.Origen{Tipo: entity.OrigenAjuste, ID: ajuste.ID},
		Descripcion: descripcion,
		Motivo:      motivo,
	}, now)
}

package repository

import (
	"context"
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// MovimientoRepository define el puerto de persistencia del libro de
// movimientos. Solo inserta y consulta: el libro es append-only.
type MovimientoRepository interface {
	Create(mov *entity.Movimiento) error
	// SumByItem suma los deltas del ítem; usado dentro de la transacción del
	// mutador para verificar la consistencia contra stockReal.
	SumByItem(idItem string) (int, error)
	ListByItem(ctx context.Context, idItem string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error)
	List(ctx context.Context, tipo string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error)
}

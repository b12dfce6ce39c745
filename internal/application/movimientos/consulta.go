package movimientos

import (
	"context"
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

// LibroUseCase consultas de solo lectura sobre el libro de movimientos
// (trazabilidad). Usa el repositorio atado al pool, sin transacción.
type LibroUseCase struct {
	movRepo repository.MovimientoRepository
}

// NewLibroUseCase construye el caso de uso de consulta del libro.
func NewLibroUseCase(movRepo repository.MovimientoRepository) *LibroUseCase {
	return &LibroUseCase{movRepo: movRepo}
}

// ListarPorItem lista los movimientos de un ítem en un rango de fechas.
func (uc *LibroUseCase) ListarPorItem(ctx context.Context, idItem string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return uc.movRepo.ListByItem(ctx, idItem, from, to, limit, offset)
}

// Listar lista todos los movimientos, opcionalmente filtrados por tipo.
func (uc *LibroUseCase) Listar(ctx context.Context, tipo string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return uc.movRepo.List(ctx, tipo, from, to, limit, offset)
}

package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// InventarioFisicoRepository define el puerto de persistencia para sesiones de
// conteo físico y sus líneas.
type InventarioFisicoRepository interface {
	Create(inv *entity.InventarioFisico) error
	GetByID(id string) (*entity.InventarioFisico, error)
	// GetForUpdate bloquea la fila de la sesión; usado al finalizar para que
	// dos finalizaciones concurrentes no emitan ajustes dobles.
	GetForUpdate(id string) (*entity.InventarioFisico, error)
	// Finalizar estampa fechaFin y pasa el estado a finalizado.
	Finalizar(id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.InventarioFisico, error)
	// UpsertDetalle crea o sobrescribe la línea de conteo de un ítem
	// (una línea por ítem y sesión).
	UpsertDetalle(det *entity.InventarioFisicoDetalle) error
	ListDetalles(ctx context.Context, idInventario string) ([]*entity.InventarioFisicoDetalle, error)
	// CountDiferencias cuenta las líneas con stockContado != stockSistema
	// (vista de listado, informativa).
	CountDiferencias(ctx context.Context, idInventario string) (int, error)
}

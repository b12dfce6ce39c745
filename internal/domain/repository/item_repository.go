package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetForUpdate y UpdateStock se usan dentro de transacciones: el stock solo lo
// escriben los mutadores con la fila bloqueada.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCodigo(codigo string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Item, error)
	// UpdateStock escribe stockReal; llamar solo con la fila bloqueada.
	UpdateStock(id string, stockReal int) error
	SetBloqueado(id string, bloqueado bool) error
	// Update actualiza los campos descriptivos; el stock va por UpdateStock.
	Update(item *entity.Item) error
	List(ctx context.Context) ([]*entity.Item, error)
	// ListStockBajo deriva los ítems con stockReal <= stockMinimo (consulta pura).
	ListStockBajo(ctx context.Context) ([]*entity.Item, error)
	// HasReferences indica si el ítem aparece en el libro de movimientos,
	// en líneas de entrada/salida/devolución o en solicitudes.
	HasReferences(id string) (bool, error)
	Delete(id string) error
}

package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// DevolucionRepository define el puerto de persistencia para devoluciones.
type DevolucionRepository interface {
	Create(devolucion *entity.Devolucion) error
	CreateItem(linea *entity.DevolucionItem) error
	GetByID(id string) (*entity.Devolucion, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Devolucion, error)
	ListItems(ctx context.Context, idDevolucion string) ([]*entity.DevolucionItem, error)
}

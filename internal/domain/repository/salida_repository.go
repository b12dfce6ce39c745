package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// SalidaRepository define el puerto de persistencia para salidas.
type SalidaRepository interface {
	Create(salida *entity.Salida) error
	CreateItem(linea *entity.SalidaItem) error
	GetByID(id string) (*entity.Salida, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Salida, error)
	ListItems(ctx context.Context, idSalida string) ([]*entity.SalidaItem, error)
}

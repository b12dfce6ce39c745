package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// AjusteRepository define el puerto de persistencia para ajustes manuales.
type AjusteRepository interface {
	Create(ajuste *entity.Ajuste) error
	ListByItem(ctx context.Context, idItem string, limit, offset int) ([]*entity.Ajuste, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Ajuste, error)
}

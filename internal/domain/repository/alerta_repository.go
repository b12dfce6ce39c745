package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// AlertaRepository define el puerto de persistencia para alertas.
type AlertaRepository interface {
	Create(alerta *entity.Alerta) error
	GetByID(id string) (*entity.Alerta, error)
	ListByUsuario(ctx context.Context, idUsuario string, soloActivas bool, limit int) ([]*entity.Alerta, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Alerta, error)
	MarkInactiva(id string) error
}

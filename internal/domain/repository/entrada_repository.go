package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// EntradaRepository define el puerto de persistencia para entradas.
type EntradaRepository interface {
	Create(entrada *entity.Entrada) error
	CreateItem(linea *entity.EntradaItem) error
	GetByID(id string) (*entity.Entrada, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Entrada, error)
	ListItems(ctx context.Context, idEntrada string) ([]*entity.EntradaItem, error)
}

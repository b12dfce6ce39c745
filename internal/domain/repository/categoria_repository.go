package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// CategoriaRepository define el puerto de persistencia para Categoria.
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByID(id string) (*entity.Categoria, error)
	List(ctx context.Context) ([]*entity.Categoria, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación de CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador de categorías.
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create inserta una categoría.
func (r *CategoriaRepo) Create(categoria *entity.Categoria) error {
	query := `INSERT INTO categorias (id, nombre, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, categoria.ID, categoria.Nombre, categoria.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoriaAlreadyExists
		}
		return fmt.Errorf("create categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría. Devuelve (nil, nil) si no existe.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	query := `SELECT id, nombre, created_at FROM categorias WHERE id = $1`
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Nombre, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// List devuelve las categorías ordenadas por nombre.
func (r *CategoriaRepo) List(ctx context.Context) ([]*entity.Categoria, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, created_at FROM categorias ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()

	categorias := make([]*entity.Categoria, 0)
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		categorias = append(categorias, &c)
	}
	return categorias, rows.Err()
}

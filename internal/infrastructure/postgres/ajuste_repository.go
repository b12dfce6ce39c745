package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

var _ repository.AjusteRepository = (*AjusteRepo)(nil)

// AjusteRepo implementación de AjusteRepository sobre PostgreSQL.
type AjusteRepo struct {
	q Querier
}

// NewAjusteRepository construye el adaptador de ajustes.
func NewAjusteRepository(q Querier) *AjusteRepo {
	return &AjusteRepo{q: q}
}

// Create inserta un ajuste.
func (r *AjusteRepo) Create(ajuste *entity.Ajuste) error {
	query := `
		INSERT INTO ajustes (id, id_item, id_gestor, tipo, cantidad, motivo, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ajuste.ID, ajuste.IDItem, ajuste.IDGestor, ajuste.Tipo,
		ajuste.Cantidad, ajuste.Motivo, ajuste.Fecha)
	if err != nil {
		return fmt.Errorf("create ajuste: %w", err)
	}
	return nil
}

// ListByItem devuelve los ajustes de un ítem, más recientes primero.
func (r *AjusteRepo) ListByItem(ctx context.Context, idItem string, limit, offset int) ([]*entity.Ajuste, error) {
	query := `
		SELECT id, id_item, id_gestor, tipo, cantidad, motivo, fecha
		FROM ajustes WHERE id_item = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, idItem, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ajustes por item: %w", err)
	}
	defer rows.Close()
	return collectAjustes(rows)
}

// List devuelve todos los ajustes, más recientes primero.
func (r *AjusteRepo) List(ctx context.Context, limit, offset int) ([]*entity.Ajuste, error) {
	query := `
		SELECT id, id_item, id_gestor, tipo, cantidad, motivo, fecha
		FROM ajustes ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ajustes: %w", err)
	}
	defer rows.Close()
	return collectAjustes(rows)
}

func collectAjustes(rows pgx.Rows) ([]*entity.Ajuste, error) {
	ajustes := make([]*entity.Ajuste, 0)
	for rows.Next() {
		var a entity.Ajuste
		if err := rows.Scan(&a.ID, &a.IDItem, &a.IDGestor, &a.Tipo,
			&a.Cantidad, &a.Motivo, &a.Fecha); err != nil {
			return nil, fmt.Errorf("scan ajuste: %w", err)
		}
		ajustes = append(ajustes, &a)
	}
	return ajustes, rows.Err()
}

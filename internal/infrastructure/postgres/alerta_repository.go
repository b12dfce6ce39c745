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

var _ repository.AlertaRepository = (*AlertaRepo)(nil)

// AlertaRepo implementación de AlertaRepository sobre PostgreSQL.
type AlertaRepo struct {
	q Querier
}

// NewAlertaRepository construye el adaptador de alertas.
func NewAlertaRepository(q Querier) *AlertaRepo {
	return &AlertaRepo{q: q}
}

const alertaColumns = `id, tipo, mensaje, id_usuario, estado, nivel, fecha`

// Create inserta una alerta.
func (r *AlertaRepo) Create(alerta *entity.Alerta) error {
	query := `
		INSERT INTO alertas (id, tipo, mensaje, id_usuario, estado, nivel, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		alerta.ID, alerta.Tipo, alerta.Mensaje, alerta.IDUsuario,
		alerta.Estado, alerta.Nivel, alerta.Fecha)
	if err != nil {
		return fmt.Errorf("create alerta: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta. Devuelve (nil, nil) si no existe.
func (r *AlertaRepo) GetByID(id string) (*entity.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas WHERE id = $1`
	var a entity.Alerta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Tipo, &a.Mensaje, &a.IDUsuario, &a.Estado, &a.Nivel, &a.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alerta: %w", err)
	}
	return &a, nil
}

// ListByUsuario devuelve las alertas de un usuario, más recientes primero.
func (r *AlertaRepo) ListByUsuario(ctx context.Context, idUsuario string, soloActivas bool, limit int) ([]*entity.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas
		WHERE id_usuario = $1 AND ($2 = false OR estado = $3)
		ORDER BY fecha DESC LIMIT $4`
	rows, err := r.q.Query(ctx, query, idUsuario, soloActivas, entity.AlertaActiva, limit)
	if err != nil {
		return nil, fmt.Errorf("list alertas por usuario: %w", err)
	}
	defer rows.Close()
	return collectAlertas(rows)
}

// ListAll devuelve todas las alertas (vista admin), más recientes primero.
func (r *AlertaRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alertas: %w", err)
	}
	defer rows.Close()
	return collectAlertas(rows)
}

// MarkInactiva desactiva una alerta.
func (r *AlertaRepo) MarkInactiva(id string) error {
	query := `UPDATE alertas SET estado = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, entity.AlertaInactiva)
	if err != nil {
		return fmt.Errorf("mark alerta inactiva: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectAlertas(rows pgx.Rows) ([]*entity.Alerta, error) {
	alertas := make([]*entity.Alerta, 0)
	for rows.Next() {
		var a entity.Alerta
		if err := rows.Scan(&a.ID, &a.Tipo, &a.Mensaje, &a.IDUsuario,
			&a.Estado, &a.Nivel, &a.Fecha); err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		alertas = append(alertas, &a)
	}
	return alertas, rows.Err()
}

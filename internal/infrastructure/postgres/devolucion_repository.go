package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

var _ repository.DevolucionRepository = (*DevolucionRepo)(nil)

// DevolucionRepo implementación de DevolucionRepository sobre PostgreSQL.
type DevolucionRepo struct {
	q Querier
}

// NewDevolucionRepository construye el adaptador de devoluciones.
func NewDevolucionRepository(q Querier) *DevolucionRepo {
	return &DevolucionRepo{q: q}
}

// Create inserta la cabecera de una devolución.
func (r *DevolucionRepo) Create(devolucion *entity.Devolucion) error {
	query := `
		INSERT INTO devoluciones (id, id_solicitante, id_gestor, observacion, fecha)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		devolucion.ID, devolucion.IDSolicitante, devolucion.IDGestor,
		devolucion.Observacion, devolucion.Fecha)
	if err != nil {
		return fmt.Errorf("create devolucion: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de devolución.
func (r *DevolucionRepo) CreateItem(linea *entity.DevolucionItem) error {
	query := `
		INSERT INTO devolucion_items (id, id_devolucion, id_item, cantidad)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		linea.ID, linea.IDDevolucion, linea.IDItem, linea.Cantidad)
	if err != nil {
		return fmt.Errorf("create devolucion item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera. Devuelve (nil, nil) si no existe.
func (r *DevolucionRepo) GetByID(id string) (*entity.Devolucion, error) {
	query := `SELECT id, id_solicitante, id_gestor, observacion, fecha FROM devoluciones WHERE id = $1`
	var d entity.Devolucion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.IDSolicitante, &d.IDGestor, &d.Observacion, &d.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get devolucion: %w", err)
	}
	return &d, nil
}

// List devuelve las devoluciones más recientes primero.
func (r *DevolucionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Devolucion, error) {
	query := `
		SELECT id, id_solicitante, id_gestor, observacion, fecha
		FROM devoluciones ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list devoluciones: %w", err)
	}
	defer rows.Close()

	devoluciones := make([]*entity.Devolucion, 0)
	for rows.Next() {
		var d entity.Devolucion
		if err := rows.Scan(&d.ID, &d.IDSolicitante, &d.IDGestor, &d.Observacion, &d.Fecha); err != nil {
			return nil, fmt.Errorf("scan devolucion: %w", err)
		}
		devoluciones = append(devoluciones, &d)
	}
	return devoluciones, rows.Err()
}

// ListItems devuelve las líneas de una devolución.
func (r *DevolucionRepo) ListItems(ctx context.Context, idDevolucion string) ([]*entity.DevolucionItem, error) {
	query := `SELECT id, id_devolucion, id_item, cantidad FROM devolucion_items WHERE id_devolucion = $1`
	rows, err := r.q.Query(ctx, query, idDevolucion)
	if err != nil {
		return nil, fmt.Errorf("list devolucion items: %w", err)
	}
	defer rows.Close()

	lineas := make([]*entity.DevolucionItem, 0)
	for rows.Next() {
		var l entity.DevolucionItem
		if err := rows.Scan(&l.ID, &l.IDDevolucion, &l.IDItem, &l.Cantidad); err != nil {
			return nil, fmt.Errorf("scan devolucion item: %w", err)
		}
		lineas = append(lineas, &l)
	}
	return lineas, rows.Err()
}

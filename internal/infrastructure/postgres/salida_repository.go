package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

var _ repository.SalidaRepository = (*SalidaRepo)(nil)

// SalidaRepo implementación de SalidaRepository sobre PostgreSQL.
type SalidaRepo struct {
	q Querier
}

// NewSalidaRepository construye el adaptador de salidas.
func NewSalidaRepository(q Querier) *SalidaRepo {
	return &SalidaRepo{q: q}
}

// Create inserta la cabecera de una salida. id_solicitud se guarda como NULL
// cuando viene vacío para no romper la FK.
func (r *SalidaRepo) Create(salida *entity.Salida) error {
	query := `
		INSERT INTO salidas (id, id_solicitante, id_gestor, actividad, firma, id_solicitud, fecha)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`
	_, err := r.q.Exec(context.Background(), query,
		salida.ID, salida.IDSolicitante, salida.IDGestor, salida.Actividad,
		salida.Firma, salida.IDSolicitud, salida.Fecha)
	if err != nil {
		return fmt.Errorf("create salida: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de salida con requerido y despachado.
func (r *SalidaRepo) CreateItem(linea *entity.SalidaItem) error {
	query := `
		INSERT INTO salida_items (id, id_salida, id_item, cantidad_requerida, cantidad_despachada)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		linea.ID, linea.IDSalida, linea.IDItem, linea.CantidadRequerida, linea.CantidadDespachada)
	if err != nil {
		return fmt.Errorf("create salida item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera. Devuelve (nil, nil) si no existe.
func (r *SalidaRepo) GetByID(id string) (*entity.Salida, error) {
	query := `
		SELECT id, id_solicitante, id_gestor, actividad, firma, COALESCE(id_solicitud, ''), fecha
		FROM salidas WHERE id = $1`
	var s entity.Salida
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.IDSolicitante, &s.IDGestor, &s.Actividad, &s.Firma, &s.IDSolicitud, &s.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salida: %w", err)
	}
	return &s, nil
}

// List devuelve las salidas más recientes primero.
func (r *SalidaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Salida, error) {
	query := `
		SELECT id, id_solicitante, id_gestor, actividad, firma, COALESCE(id_solicitud, ''), fecha
		FROM salidas ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list salidas: %w", err)
	}
	defer rows.Close()

	salidas := make([]*entity.Salida, 0)
	for rows.Next() {
		var s entity.Salida
		if err := rows.Scan(&s.ID, &s.IDSolicitante, &s.IDGestor, &s.Actividad,
			&s.Firma, &s.IDSolicitud, &s.Fecha); err != nil {
			return nil, fmt.Errorf("scan salida: %w", err)
		}
		salidas = append(salidas, &s)
	}
	return salidas, rows.Err()
}

// ListItems devuelve las líneas de una salida.
func (r *SalidaRepo) ListItems(ctx context.Context, idSalida string) ([]*entity.SalidaItem, error) {
	query := `
		SELECT id, id_salida, id_item, cantidad_requerida, cantidad_despachada
		FROM salida_items WHERE id_salida = $1`
	rows, err := r.q.Query(ctx, query, idSalida)
	if err != nil {
		return nil, fmt.Errorf("list salida items: %w", err)
	}
	defer rows.Close()

	lineas := make([]*entity.SalidaItem, 0)
	for rows.Next() {
		var l entity.SalidaItem
		if err := rows.Scan(&l.ID, &l.IDSalida, &l.IDItem,
			&l.CantidadRequerida, &l.CantidadDespachada); err != nil {
			return nil, fmt.Errorf("scan salida item: %w", err)
		}
		lineas = append(lineas, &l)
	}
	return lineas, rows.Err()
}

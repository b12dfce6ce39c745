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

var _ repository.SolicitudRepository = (*SolicitudRepo)(nil)

// SolicitudRepo implementación de SolicitudRepository sobre PostgreSQL.
type SolicitudRepo struct {
	q Querier
}

// NewSolicitudRepository construye el adaptador de solicitudes.
func NewSolicitudRepository(q Querier) *SolicitudRepo {
	return &SolicitudRepo{q: q}
}

const solicitudColumns = `id, id_solicitante, COALESCE(id_administrador, ''), COALESCE(id_gestor, ''),
		actividad, descripcion_material, fecha_actividad, fecha_solicitud, estado, motivo_rechazo`

func scanSolicitud(row pgx.Row) (*entity.Solicitud, error) {
	var s entity.Solicitud
	err := row.Scan(&s.ID, &s.IDSolicitante, &s.IDAdministrador, &s.IDGestor,
		&s.Actividad, &s.DescripcionMaterial, &s.FechaActividad, &s.FechaSolicitud,
		&s.Estado, &s.MotivoRechazo)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta una solicitud en estado pendiente.
func (r *SolicitudRepo) Create(sol *entity.Solicitud) error {
	query := `
		INSERT INTO solicitudes (id, id_solicitante, actividad, descripcion_material,
			fecha_actividad, fecha_solicitud, estado, motivo_rechazo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sol.ID, sol.IDSolicitante, sol.Actividad, sol.DescripcionMaterial,
		sol.FechaActividad, sol.FechaSolicitud, sol.Estado, sol.MotivoRechazo)
	if err != nil {
		return fmt.Errorf("create solicitud: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de catálogo de la solicitud.
func (r *SolicitudRepo) CreateItem(linea *entity.SolicitudItem) error {
	query := `
		INSERT INTO solicitud_items (id, id_solicitud, id_item, cantidad)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		linea.ID, linea.IDSolicitud, linea.IDItem, linea.Cantidad)
	if err != nil {
		return fmt.Errorf("create solicitud item: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud. Devuelve (nil, nil) si no existe.
func (r *SolicitudRepo) GetByID(id string) (*entity.Solicitud, error) {
	query := `SELECT ` + solicitudColumns + ` FROM solicitudes WHERE id = $1`
	sol, err := scanSolicitud(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud: %w", err)
	}
	return sol, nil
}

// GetForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE).
func (r *SolicitudRepo) GetForUpdate(id string) (*entity.Solicitud, error) {
	query := `SELECT ` + solicitudColumns + ` FROM solicitudes WHERE id = $1 FOR UPDATE`
	sol, err := scanSolicitud(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud for update: %w", err)
	}
	return sol, nil
}

// Procesar escribe el estado terminal con admin, gestor y motivo. El predicado
// sobre estado hace la transición pendiente → terminal única a nivel de fila.
func (r *SolicitudRepo) Procesar(sol *entity.Solicitud) error {
	query := `
		UPDATE solicitudes SET estado = $2, id_administrador = NULLIF($3, ''),
			id_gestor = NULLIF($4, ''), motivo_rechazo = $5
		WHERE id = $1 AND estado = $6`
	tag, err := r.q.Exec(context.Background(), query,
		sol.ID, sol.Estado, sol.IDAdministrador, sol.IDGestor,
		sol.MotivoRechazo, entity.SolicitudPendiente)
	if err != nil {
		return fmt.Errorf("procesar solicitud: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestClosed
	}
	return nil
}

// List devuelve solicitudes según filtro, más recientes primero.
func (r *SolicitudRepo) List(ctx context.Context, filtro repository.FiltroSolicitudes, limit, offset int) ([]*entity.Solicitud, error) {
	query := `SELECT ` + solicitudColumns + ` FROM solicitudes
		WHERE ($1 = '' OR id_solicitante = $1::uuid)
			AND ($2 = '' OR estado = $2)
			AND ($3 = '' OR actividad ILIKE '%' || $3 || '%' OR descripcion_material ILIKE '%' || $3 || '%')
		ORDER BY fecha_solicitud DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, filtro.IDSolicitante, filtro.Estado, filtro.Texto, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes: %w", err)
	}
	defer rows.Close()

	solicitudes := make([]*entity.Solicitud, 0)
	for rows.Next() {
		sol, err := scanSolicitud(rows)
		if err != nil {
			return nil, fmt.Errorf("scan solicitud: %w", err)
		}
		solicitudes = append(solicitudes, sol)
	}
	return solicitudes, rows.Err()
}

// ListItems devuelve las líneas de catálogo de una solicitud.
func (r *SolicitudRepo) ListItems(ctx context.Context, idSolicitud string) ([]*entity.SolicitudItem, error) {
	query := `SELECT id, id_solicitud, id_item, cantidad FROM solicitud_items WHERE id_solicitud = $1`
	rows, err := r.q.Query(ctx, query, idSolicitud)
	if err != nil {
		return nil, fmt.Errorf("list solicitud items: %w", err)
	}
	defer rows.Close()

	lineas := make([]*entity.SolicitudItem, 0)
	for rows.Next() {
		var l entity.SolicitudItem
		if err := rows.Scan(&l.ID, &l.IDSolicitud, &l.IDItem, &l.Cantidad); err != nil {
			return nil, fmt.Errorf("scan solicitud item: %w", err)
		}
		lineas = append(lineas, &l)
	}
	return lineas, rows.Err()
}

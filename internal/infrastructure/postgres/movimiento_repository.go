package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del libro de movimientos sobre PostgreSQL.
// Solo INSERT y SELECT: el libro es append-only y no expone update ni delete.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create inserta una línea del libro.
func (r *MovimientoRepo) Create(mov *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, tipo, id_item, cantidad, origen_tipo, origen_id, descripcion, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.Tipo, mov.IDItem, mov.Cantidad,
		string(mov.Origen.Tipo), mov.Origen.ID, mov.Descripcion, mov.Fecha,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// SumByItem suma los deltas del ítem. COALESCE para ítems sin movimientos.
func (r *MovimientoRepo) SumByItem(idItem string) (int, error) {
	query := `SELECT COALESCE(SUM(cantidad), 0) FROM movimientos WHERE id_item = $1`
	var suma int
	if err := r.q.QueryRow(context.Background(), query, idItem).Scan(&suma); err != nil {
		return 0, fmt.Errorf("sum movimientos: %w", err)
	}
	return suma, nil
}

// ListByItem devuelve los movimientos de un ítem, más recientes primero.
func (r *MovimientoRepo) ListByItem(ctx context.Context, idItem string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, tipo, id_item, cantidad, origen_tipo, origen_id, descripcion, fecha
		FROM movimientos
		WHERE id_item = $1
			AND ($2::timestamptz IS NULL OR fecha >= $2)
			AND ($3::timestamptz IS NULL OR fecha <= $3)
		ORDER BY fecha DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, idItem, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por item: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

// List devuelve el libro completo, filtrable por tipo y rango de fechas.
func (r *MovimientoRepo) List(ctx context.Context, tipo string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, tipo, id_item, cantidad, origen_tipo, origen_id, descripcion, fecha
		FROM movimientos
		WHERE ($1 = '' OR tipo = $1)
			AND ($2::timestamptz IS NULL OR fecha >= $2)
			AND ($3::timestamptz IS NULL OR fecha <= $3)
		ORDER BY fecha DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, tipo, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

func collectMovimientos(rows pgx.Rows) ([]*entity.Movimiento, error) {
	movs := make([]*entity.Movimiento, 0)
	for rows.Next() {
		var m entity.Movimiento
		var origenTipo string
		if err := rows.Scan(&m.ID, &m.Tipo, &m.IDItem, &m.Cantidad,
			&origenTipo, &m.Origen.ID, &m.Descripcion, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.Origen.Tipo = entity.OrigenTipo(origenTipo)
		movs = append(movs, &m)
	}
	return movs, rows.Err()
}

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

var _ repository.InventarioFisicoRepository = (*InventarioFisicoRepo)(nil)

// InventarioFisicoRepo implementación de InventarioFisicoRepository sobre PostgreSQL.
type InventarioFisicoRepo struct {
	q Querier
}

// NewInventarioFisicoRepository construye el adaptador de inventarios físicos.
func NewInventarioFisicoRepository(q Querier) *InventarioFisicoRepo {
	return &InventarioFisicoRepo{q: q}
}

const inventarioColumns = `id, tipo, estado, id_gestor, fecha_inicio, fecha_fin`

func scanInventario(row pgx.Row) (*entity.InventarioFisico, error) {
	var inv entity.InventarioFisico
	err := row.Scan(&inv.ID, &inv.Tipo, &inv.Estado, &inv.IDGestor, &inv.FechaInicio, &inv.FechaFin)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create inserta la sesión de conteo.
func (r *InventarioFisicoRepo) Create(inv *entity.InventarioFisico) error {
	query := `
		INSERT INTO inventarios_fisicos (id, tipo, estado, id_gestor, fecha_inicio, fecha_fin)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Tipo, inv.Estado, inv.IDGestor, inv.FechaInicio, inv.FechaFin)
	if err != nil {
		return fmt.Errorf("create inventario fisico: %w", err)
	}
	return nil
}

// GetByID obtiene la sesión. Devuelve (nil, nil) si no existe.
func (r *InventarioFisicoRepo) GetByID(id string) (*entity.InventarioFisico, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventarios_fisicos WHERE id = $1`
	inv, err := scanInventario(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario fisico: %w", err)
	}
	return inv, nil
}

// GetForUpdate obtiene la sesión y bloquea la fila (SELECT FOR UPDATE).
func (r *InventarioFisicoRepo) GetForUpdate(id string) (*entity.InventarioFisico, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventarios_fisicos WHERE id = $1 FOR UPDATE`
	inv, err := scanInventario(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario fisico for update: %w", err)
	}
	return inv, nil
}

// Finalizar estampa fechaFin y pasa el estado a finalizado.
func (r *InventarioFisicoRepo) Finalizar(id string) error {
	query := `
		UPDATE inventarios_fisicos SET estado = $2, fecha_fin = now()
		WHERE id = $1 AND estado <> $2`
	tag, err := r.q.Exec(context.Background(), query, id, entity.InventarioFinalizado)
	if err != nil {
		return fmt.Errorf("finalizar inventario fisico: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionFinalized
	}
	return nil
}

// List devuelve las sesiones más recientes primero.
func (r *InventarioFisicoRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventarioFisico, error) {
	query := `SELECT ` + inventarioColumns + ` FROM inventarios_fisicos
		ORDER BY fecha_inicio DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventarios fisicos: %w", err)
	}
	defer rows.Close()

	sesiones := make([]*entity.InventarioFisico, 0)
	for rows.Next() {
		inv, err := scanInventario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventario fisico: %w", err)
		}
		sesiones = append(sesiones, inv)
	}
	return sesiones, rows.Err()
}

// UpsertDetalle crea o sobrescribe la línea de conteo (una por ítem y sesión).
func (r *InventarioFisicoRepo) UpsertDetalle(det *entity.InventarioFisicoDetalle) error {
	query := `
		INSERT INTO inventario_fisico_detalles
			(id, id_inventario, id_item, stock_sistema, stock_contado, contado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id_inventario, id_item)
		DO UPDATE SET stock_sistema = EXCLUDED.stock_sistema,
			stock_contado = EXCLUDED.stock_contado,
			contado = EXCLUDED.contado,
			fecha = EXCLUDED.fecha`
	_, err := r.q.Exec(context.Background(), query,
		det.ID, det.IDInventario, det.IDItem, det.StockSistema,
		det.StockContado, det.Contado, det.Fecha)
	if err != nil {
		return fmt.Errorf("upsert detalle inventario: %w", err)
	}
	return nil
}

// ListDetalles devuelve las líneas de una sesión.
func (r *InventarioFisicoRepo) ListDetalles(ctx context.Context, idInventario string) ([]*entity.InventarioFisicoDetalle, error) {
	query := `
		SELECT id, id_inventario, id_item, stock_sistema, stock_contado, contado, fecha
		FROM inventario_fisico_detalles WHERE id_inventario = $1 ORDER BY fecha`
	rows, err := r.q.Query(ctx, query, idInventario)
	if err != nil {
		return nil, fmt.Errorf("list detalles inventario: %w", err)
	}
	defer rows.Close()

	detalles := make([]*entity.InventarioFisicoDetalle, 0)
	for rows.Next() {
		var d entity.InventarioFisicoDetalle
		if err := rows.Scan(&d.ID, &d.IDInventario, &d.IDItem, &d.StockSistema,
			&d.StockContado, &d.Contado, &d.Fecha); err != nil {
			return nil, fmt.Errorf("scan detalle inventario: %w", err)
		}
		detalles = append(detalles, &d)
	}
	return detalles, rows.Err()
}

// CountDiferencias cuenta las líneas contadas con stockContado != stockSistema.
func (r *InventarioFisicoRepo) CountDiferencias(ctx context.Context, idInventario string) (int, error) {
	query := `
		SELECT COUNT(*) FROM inventario_fisico_detalles
		WHERE id_inventario = $1 AND contado AND stock_contado <> stock_sistema`
	var total int
	if err := r.q.QueryRow(ctx, query, idInventario).Scan(&total); err != nil {
		return 0, fmt.Errorf("count diferencias inventario: %w", err)
	}
	return total, nil
}

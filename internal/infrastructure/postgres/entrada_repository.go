package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

var _ repository.EntradaRepository = (*EntradaRepo)(nil)

// EntradaRepo implementación de EntradaRepository sobre PostgreSQL.
type EntradaRepo struct {
	q Querier
}

// NewEntradaRepository construye el adaptador de entradas.
func NewEntradaRepository(q Querier) *EntradaRepo {
	return &EntradaRepo{q: q}
}

// Create inserta la cabecera de una entrada.
func (r *EntradaRepo) Create(entrada *entity.Entrada) error {
	query := `
		INSERT INTO entradas (id, id_gestor, factura, observacion, fecha)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		entrada.ID, entrada.IDGestor, entrada.Factura, entrada.Observacion, entrada.Fecha)
	if err != nil {
		return fmt.Errorf("create entrada: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de entrada.
func (r *EntradaRepo) CreateItem(linea *entity.EntradaItem) error {
	query := `
		INSERT INTO entrada_items (id, id_entrada, id_item, cantidad)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		linea.ID, linea.IDEntrada, linea.IDItem, linea.Cantidad)
	if err != nil {
		return fmt.Errorf("create entrada item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera. Devuelve (nil, nil) si no existe.
func (r *EntradaRepo) GetByID(id string) (*entity.Entrada, error) {
	query := `SELECT id, id_gestor, factura, observacion, fecha FROM entradas WHERE id = $1`
	var e entity.Entrada
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.IDGestor, &e.Factura, &e.Observacion, &e.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrada: %w", err)
	}
	return &e, nil
}

// List devuelve las entradas más recientes primero.
func (r *EntradaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Entrada, error) {
	query := `
		SELECT id, id_gestor, factura, observacion, fecha
		FROM entradas ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entradas: %w", err)
	}
	defer rows.Close()

	entradas := make([]*entity.Entrada, 0)
	for rows.Next() {
		var e entity.Entrada
		if err := rows.Scan(&e.ID, &e.IDGestor, &e.Factura, &e.Observacion, &e.Fecha); err != nil {
			return nil, fmt.Errorf("scan entrada: %w", err)
		}
		entradas = append(entradas, &e)
	}
	return entradas, rows.Err()
}

// ListItems devuelve las líneas de una entrada.
func (r *EntradaRepo) ListItems(ctx context.Context, idEntrada string) ([]*entity.EntradaItem, error) {
	query := `SELECT id, id_entrada, id_item, cantidad FROM entrada_items WHERE id_entrada = $1`
	rows, err := r.q.Query(ctx, query, idEntrada)
	if err != nil {
		return nil, fmt.Errorf("list entrada items: %w", err)
	}
	defer rows.Close()

	lineas := make([]*entity.EntradaItem, 0)
	for rows.Next() {
		var l entity.EntradaItem
		if err := rows.Scan(&l.ID, &l.IDEntrada, &l.IDItem, &l.Cantidad); err != nil {
			return nil, fmt.Errorf("scan entrada item: %w", err)
		}
		lineas = append(lineas, &l)
	}
	return lineas, rows.Err()
}

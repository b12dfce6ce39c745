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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, codigo, nombre, id_categoria, tipo, unidad, ubicacion,
		stock_minimo, inventario_inicial, stock_real, imagen, bloqueado, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.ID, &i.Codigo, &i.Nombre, &i.IDCategoria, &i.Tipo, &i.Unidad, &i.Ubicacion,
		&i.StockMinimo, &i.InventarioInicial, &i.StockReal, &i.Imagen, &i.Bloqueado,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserta un ítem nuevo del catálogo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, codigo, nombre, id_categoria, tipo, unidad, ubicacion,
			stock_minimo, inventario_inicial, stock_real, imagen, bloqueado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Codigo, item.Nombre, item.IDCategoria, item.Tipo, item.Unidad,
		item.Ubicacion, item.StockMinimo, item.InventarioInicial, item.StockReal,
		item.Imagen, item.Bloqueado, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodigoAlreadyUsed
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por id. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByCodigo obtiene un ítem por su código visible. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByCodigo(codigo string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE codigo = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by codigo: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

// UpdateStock escribe stockReal. Llamar solo con la fila bloqueada.
func (r *ItemRepo) UpdateStock(id string, stockReal int) error {
	query := `UPDATE items SET stock_real = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stockReal)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetBloqueado marca o desmarca el veto por inconsistencia.
func (r *ItemRepo) SetBloqueado(id string, bloqueado bool) error {
	query := `UPDATE items SET bloqueado = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, bloqueado)
	if err != nil {
		return fmt.Errorf("set bloqueado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza los campos descriptivos; el stock va por UpdateStock.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET nombre = $2, id_categoria = $3, tipo = $4, unidad = $5,
			ubicacion = $6, stock_minimo = $7, imagen = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Nombre, item.IDCategoria, item.Tipo, item.Unidad,
		item.Ubicacion, item.StockMinimo, item.Imagen, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListStockBajo deriva los ítems en o por debajo del mínimo.
func (r *ItemRepo) ListStockBajo(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE stock_real <= stock_minimo ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items stock bajo: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	items := make([]*entity.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// HasReferences indica si el ítem aparece en el libro, en líneas de
// operaciones o en solicitudes.
func (r *ItemRepo) HasReferences(id string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM movimientos WHERE id_item = $1)
			OR EXISTS (SELECT 1 FROM entrada_items WHERE id_item = $1)
			OR EXISTS (SELECT 1 FROM salida_items WHERE id_item = $1)
			OR EXISTS (SELECT 1 FROM devolucion_items WHERE id_item = $1)
			OR EXISTS (SELECT 1 FROM solicitud_items WHERE id_item = $1)
			OR EXISTS (SELECT 1 FROM ajustes WHERE id_item = $1)`
	var existe bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&existe); err != nil {
		return false, fmt.Errorf("item has references: %w", err)
	}
	return existe, nil
}

// Delete elimina el ítem. La FK protege contra borrar ítems referenciados,
// por si alguien salta el chequeo de HasReferences.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemReferenced
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
)

// Ensure TxRunner implements movimientos.TxRunner.
var _ movimientos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. La contención transitoria (serialization failure,
// deadlock) sale como domain.ErrConflict para que el caller pueda reintentar.
func (r *TxRunner) Run(ctx context.Context, fn func(repos movimientos.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := movimientos.TxRepos{
		Items:        NewItemRepository(tx),
		Movimientos:  NewMovimientoRepository(tx),
		Ajustes:      NewAjusteRepository(tx),
		Entradas:     NewEntradaRepository(tx),
		Salidas:      NewSalidaRepository(tx),
		Devoluciones: NewDevolucionRepository(tx),
		Inventarios:  NewInventarioFisicoRepository(tx),
		Solicitudes:  NewSolicitudRepository(tx),
	}

	if err := fn(repos); err != nil {
		return wrapRetryableConflict(err)
	}
	if err := tx.Commit(ctx); err != nil {
		if isRetryableConflict(err) {
			return wrapRetryableConflict(err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

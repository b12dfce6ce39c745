package movimientos

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
// Los mutadores de stock exigen que la actualización de stockReal y el
// insert en el libro de movimientos viajen juntos.
type TxRepos struct {
	Items        repository.ItemRepository
	Movimientos  repository.MovimientoRepository
	Ajustes      repository.AjusteRepository
	Entradas     repository.EntradaRepository
	Salidas      repository.SalidaRepository
	Devoluciones repository.DevolucionRepository
	Inventarios  repository.InventarioFisicoRepository
	Solicitudes  repository.SolicitudRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// Commit si fn retorna nil, Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

package entradas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmcanizales/papeleria-api/internal/application/alertas"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

// EntradaUseCase registra ingresos de mercancía. Cada línea es su propia
// transacción atómica (línea + stock + movimiento); la cabecera es best-effort
// y un fallo a mitad de camino se reporta como PartialFailure.
type EntradaUseCase struct {
	txRunner    movimientos.TxRunner
	entradaRepo repository.EntradaRepository
	usuarioRepo repository.UsuarioRepository
	feed        alertas.CambioFeed // puede ser nil
	log         *logger.Logger
}

// NewEntradaUseCase construye el caso de uso.
func NewEntradaUseCase(
	txRunner movimientos.TxRunner,
	entradaRepo repository.EntradaRepository,
	usuarioRepo repository.UsuarioRepository,
	feed alertas.CambioFeed,
	log *logger.Logger,
) *EntradaUseCase {
	return &EntradaUseCase{
		txRunner:    txRunner,
		entradaRepo: entradaRepo,
		usuarioRepo: usuarioRepo,
		feed:        feed,
		log:         log,
	}
}

// Registrar crea la cabecera y aplica las líneas secuencialmente. Si la línea
// k falla con líneas previas ya confirmadas devuelve *domain.PartialFailure:
// las líneas aplicadas no se revierten ni se re-aplican.
func (uc *EntradaUseCase) Registrar(ctx context.Context, idGestor string, in dto.RegistrarEntradaRequest) (*entity.Entrada, error) {
	gestor, err := uc.usuarioRepo.GetByID(idGestor)
	if err != nil {
		return nil, err
	}
	if gestor == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	entrada := &entity.Entrada{
		ID:          uuid.New().String(),
		IDGestor:    idGestor,
		Factura:     in.Factura,
		Observacion: in.Observacion,
		Fecha:       now,
	}
	if err := uc.entradaRepo.Create(entrada); err != nil {
		return nil, err
	}

	applied := make([]int, 0, len(in.Items))
	for idx, linea := range in.Items {
		lineaIdx, cantidad, idItem := idx, linea.Cantidad, linea.IDItem
		err := uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
			item := &entity.EntradaItem{
				ID:        uuid.New().String(),
				IDEntrada: entrada.ID,
				IDItem:    idItem,
				Cantidad:  cantidad,
			}
			if err := r.Entradas.CreateItem(item); err != nil {
				return err
			}
			_, err := movimientos.Aplicar(r, movimientos.Input{
				IDItem:   idItem,
				Tipo:     entity.MovimientoEntrada,
				Cantidad: cantidad,
				Origen:   entity.Origen{Tipo: entity.OrigenEntradaItem, ID: item.ID},
				Descripcion: fmt.Sprintf("El gestor %s registró una entrada de %d unidad(es).",
					gestor.NombreCompleto(), cantidad),
			}, now)
			return err
		})
		if err != nil {
			if len(applied) > 0 {
				return entrada, &domain.PartialFailure{Applied: applied, Failed: lineaIdx, Err: err}
			}
			return nil, err
		}
		applied = append(applied, lineaIdx)
		uc.publicar(ctx, idItem)
	}
	return entrada, nil
}

func (uc *EntradaUseCase) publicar(ctx context.Context, idItem string) {
	if uc.feed != nil {
		if err := uc.feed.Publicar(ctx, "items:"+idItem, "stock"); err != nil {
			uc.log.Warn().Err(err).Str("item", idItem).Msg("publicar cambio en feed")
		}
	}
}

// Listar devuelve las entradas más recientes.
func (uc *EntradaUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Entrada, error) {
	return uc.entradaRepo.List(ctx, limit, offset)
}

// Detalle devuelve la cabecera y sus líneas.
func (uc *EntradaUseCase) Detalle(ctx context.Context, id string) (*entity.Entrada, []*entity.EntradaItem, error) {
	entrada, err := uc.entradaRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if entrada == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.entradaRepo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return entrada, items, nil
}

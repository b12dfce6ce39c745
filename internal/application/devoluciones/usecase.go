package devoluciones

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

// DevolucionUseCase registra devoluciones de materiales entregados. Movimiento
// entrante que revierte una salida previa; mismas semánticas por línea que
// entradas (transacción por línea, PartialFailure).
type DevolucionUseCase struct {
	txRunner       movimientos.TxRunner
	devolucionRepo repository.DevolucionRepository
	usuarioRepo    repository.UsuarioRepository
	feed           alertas.CambioFeed // puede ser nil
	log            *logger.Logger
}

// NewDevolucionUseCase construye el caso de uso.
func NewDevolucionUseCase(
	txRunner movimientos.TxRunner,
	devolucionRepo repository.DevolucionRepository,
	usuarioRepo repository.UsuarioRepository,
	feed alertas.CambioFeed,
	log *logger.Logger,
) *DevolucionUseCase {
	return &DevolucionUseCase{
		txRunner:       txRunner,
		devolucionRepo: devolucionRepo,
		usuarioRepo:    usuarioRepo,
		feed:           feed,
		log:            log,
	}
}

// Registrar crea la cabecera y aplica las líneas secuencialmente.
func (uc *DevolucionUseCase) Registrar(ctx context.Context, idGestor string, in dto.RegistrarDevolucionRequest) (*entity.Devolucion, error) {
	gestor, err := uc.usuarioRepo.GetByID(idGestor)
	if err != nil {
		return nil, err
	}
	if gestor == nil {
		return nil, domain.ErrUserNotFound
	}
	solicitante, err := uc.usuarioRepo.GetByID(in.IDSolicitante)
	if err != nil {
		return nil, err
	}
	if solicitante == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	devolucion := &entity.Devolucion{
		ID:            uuid.New().String(),
		IDSolicitante: in.IDSolicitante,
		IDGestor:      idGestor,
		Observacion:   in.Observacion,
		Fecha:         now,
	}
	if err := uc.devolucionRepo.Create(devolucion); err != nil {
		return nil, err
	}

	applied := make([]int, 0, len(in.Items))
	for idx, linea := range in.Items {
		lineaIdx, cantidad, idItem := idx, linea.Cantidad, linea.IDItem
		err := uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
			item := &entity.DevolucionItem{
				ID:           uuid.New().String(),
				IDDevolucion: devolucion.ID,
				IDItem:       idItem,
				Cantidad:     cantidad,
			}
			if err := r.Devoluciones.CreateItem(item); err != nil {
				return err
			}
			_, err := movimientos.Aplicar(r, movimientos.Input{
				IDItem:   idItem,
				Tipo:     entity.MovimientoDevolucion,
				Cantidad: cantidad,
				Origen:   entity.Origen{Tipo: entity.OrigenDevolucionItem, ID: item.ID},
				Descripcion: fmt.Sprintf("%s devolvió %d unidad(es).",
					solicitante.NombreCompleto(), cantidad),
			}, now)
			return err
		})
		if err != nil {
			if len(applied) > 0 {
				return devolucion, &domain.PartialFailure{Applied: applied, Failed: lineaIdx, Err: err}
			}
			return nil, err
		}
		applied = append(applied, lineaIdx)
		if uc.feed != nil {
			if err := uc.feed.Publicar(ctx, "items:"+idItem, "stock"); err != nil {
				uc.log.Warn().Err(err).Str("item", idItem).Msg("publicar cambio en feed")
			}
		}
	}
	return devolucion, nil
}

// Listar devuelve las devoluciones más recientes.
func (uc *DevolucionUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Devolucion, error) {
	return uc.devolucionRepo.List(ctx, limit, offset)
}

// Detalle devuelve la cabecera y sus líneas.
func (uc *DevolucionUseCase) Detalle(ctx context.Context, id string) (*entity.Devolucion, []*entity.DevolucionItem, error) {
	devolucion, err := uc.devolucionRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if devolucion == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.devolucionRepo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return devolucion, items, nil
}

package fisico

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

// MotivoDiscrepancia motivo estándar de los ajustes emitidos al finalizar.
const MotivoDiscrepancia = "Diferencia detectada en conteo físico"

// InventarioUseCase orquesta sesiones de conteo físico. El conteo es lento por
// naturaleza: el motor tolera entradas y salidas concurrentes durante la
// sesión y reconcilia contra el stock vigente al finalizar, no contra la foto
// capturada al contar: un movimiento legítimo a mitad de conteo no debe
// clasificarse como error de conteo.
type InventarioUseCase struct {
	txRunner    movimientos.TxRunner
	invRepo     repository.InventarioFisicoRepository
	itemRepo    repository.ItemRepository
	usuarioRepo repository.UsuarioRepository
	notificador alertas.Notificador
	feed        alertas.CambioFeed // puede ser nil
	log         *logger.Logger
}

// NewInventarioUseCase construye el caso de uso.
func NewInventarioUseCase(
	txRunner movimientos.TxRunner,
	invRepo repository.InventarioFisicoRepository,
	itemRepo repository.ItemRepository,
	usuarioRepo repository.UsuarioRepository,
	notificador alertas.Notificador,
	feed alertas.CambioFeed,
	log *logger.Logger,
) *InventarioUseCase {
	return &InventarioUseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		itemRepo:    itemRepo,
		usuarioRepo: usuarioRepo,
		notificador: notificador,
		feed:        feed,
		log:         log,
	}
}

// Iniciar abre una sesión. Una sesión general pre-carga una línea por cada
// ítem del catálogo (sin conteo aún); una parcial inicia vacía y el gestor
// agrega ítems buscándolos.
func (uc *InventarioUseCase) Iniciar(ctx context.Context, idGestor, tipo string) (*entity.InventarioFisico, error) {
	if tipo != entity.InventarioGeneral && tipo != entity.InventarioParcial {
		return nil, domain.ErrInvalidInput
	}
	gestor, err := uc.usuarioRepo.GetByID(idGestor)
	if err != nil {
		return nil, err
	}
	if gestor == nil {
		return nil, domain.ErrUserNotFound
	}

	inv := &entity.InventarioFisico{
		ID:          uuid.New().String(),
		Tipo:        tipo,
		Estado:      entity.InventarioEnProgreso,
		IDGestor:    idGestor,
		FechaInicio: time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		if err := r.Inventarios.Create(inv); err != nil {
			return err
		}
		if tipo != entity.InventarioGeneral {
			return nil
		}
		items, err := r.Items.List(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			det := &entity.InventarioFisicoDetalle{
				ID:           uuid.New().String(),
				IDInventario: inv.ID,
				IDItem:       it.ID,
				StockSistema: it.StockReal,
				Contado:      false,
				Fecha:        inv.FechaInicio,
			}
			if err := r.Inventarios.UpsertDetalle(det); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GuardarConteo crea o sobrescribe la línea de conteo de un ítem mientras la
// sesión siga en progreso. Cada guardado re-captura stockSistema en ese
// instante: si una entrada ajena movió el stock durante el conteo, la
// diferencia aparece como discrepancia posterior en lugar de perderse.
func (uc *InventarioUseCase) GuardarConteo(ctx context.Context, idInventario string, in dto.GuardarConteoRequest) (*entity.InventarioFisicoDetalle, error) {
	var det *entity.InventarioFisicoDetalle
	err := uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		inv, err := r.Inventarios.GetForUpdate(idInventario)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Finalizado() {
			return domain.ErrSessionFinalized
		}
		item, err := r.Items.GetByID(in.IDItem)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		det = &entity.InventarioFisicoDetalle{
			ID:           uuid.New().String(),
			IDInventario: idInventario,
			IDItem:       in.IDItem,
			StockSistema: item.StockReal,
			StockContado: in.StockContado,
			Contado:      true,
			Fecha:        time.Now(),
		}
		return r.Inventarios.UpsertDetalle(det)
	})
	if err != nil {
		return nil, err
	}
	return det, nil
}

// Finalizar cierra la sesión de forma irreversible. Para cada línea contada
// cuyo conteo difiere del stock releído bajo lock en este momento, emite un
// ajuste (delta = contado − actual) a través del mutador; luego estampa
// fechaFin. Todo en una sola transacción: dos finalizaciones concurrentes no
// pueden emitir ajustes dobles.
func (uc *InventarioUseCase) Finalizar(ctx context.Context, idGestor, idInventario string) (*dto.FinalizarInventarioResponse, error) {
	gestor, err := uc.usuarioRepo.GetByID(idGestor)
	if err != nil {
		return nil, err
	}
	if gestor == nil {
		return nil, domain.ErrUserNotFound
	}

	var ajustados []string
	err = uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		inv, err := r.Inventarios.GetForUpdate(idInventario)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Finalizado() {
			return domain.ErrSessionFinalized
		}

		detalles, err := r.Inventarios.ListDetalles(ctx, idInventario)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, det := range detalles {
			if !det.Contado {
				continue
			}
			// Releer bajo lock: el delta se calcula contra el stock vigente,
			// no contra la captura de stockSistema al momento de contar.
			item, err := r.Items.GetForUpdate(det.IDItem)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			delta := det.StockContado - item.StockReal
			if delta == 0 {
				continue
			}
			descripcion := fmt.Sprintf("Ajuste por conteo físico del ítem %s: contado %d, sistema %d",
				item.Codigo, det.StockContado, item.StockReal)
			if _, err := movimientos.AplicarAjuste(r, det.IDItem, idGestor, delta,
				MotivoDiscrepancia, entity.AjusteInventario, descripcion, now); err != nil {
				return err
			}
			ajustados = append(ajustados, det.IDItem)
		}
		return r.Inventarios.Finalizar(idInventario)
	})
	if err != nil {
		return nil, err
	}

	for _, idItem := range ajustados {
		uc.despuesDeAjuste(ctx, idGestor, idItem)
	}
	return &dto.FinalizarInventarioResponse{
		IDInventario:    idInventario,
		AjustesEmitidos: len(ajustados),
		ItemsAjustados:  ajustados,
	}, nil
}

func (uc *InventarioUseCase) despuesDeAjuste(ctx context.Context, idGestor, idItem string) {
	if uc.feed != nil {
		if err := uc.feed.Publicar(ctx, "items:"+idItem, "stock"); err != nil {
			uc.log.Warn().Err(err).Str("item", idItem).Msg("publicar cambio en feed")
		}
	}
	item, err := uc.itemRepo.GetByID(idItem)
	if err != nil || item == nil {
		return
	}
	if item.StockBajo() {
		if err := uc.notificador.Emitir(ctx, entity.AlertaStockBajo, alertas.MensajeStockBajo(item), idGestor); err != nil {
			uc.log.Warn().Err(err).Str("item", idItem).Str("usuario", idGestor).Msg("emitir alerta de stock bajo")
		}
	}
}

// Listar devuelve las sesiones con su cantidad de diferencias (informativa,
// calculada sobre las capturas guardadas).
func (uc *InventarioUseCase) Listar(ctx context.Context, limit, offset int) ([]dto.InventarioResponse, error) {
	sesiones, err := uc.invRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventarioResponse, 0, len(sesiones))
	for _, s := range sesiones {
		difs, err := uc.invRepo.CountDiferencias(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.InventarioResponse{
			ID:              s.ID,
			Tipo:            s.Tipo,
			Estado:          s.Estado,
			IDGestor:        s.IDGestor,
			FechaInicio:     s.FechaInicio,
			FechaFin:        s.FechaFin,
			CantDiferencias: difs,
		})
	}
	return out, nil
}

// Detalle devuelve la sesión y sus líneas de conteo.
func (uc *InventarioUseCase) Detalle(ctx context.Context, id string) (*entity.InventarioFisico, []*entity.InventarioFisicoDetalle, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	detalles, err := uc.invRepo.ListDetalles(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return inv, detalles, nil
}

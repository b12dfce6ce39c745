package salidas

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

// SalidaUseCase despacha materiales a un solicitante. El despacho por línea
// puede ser parcial (cantidadDespachada <= cantidadRequerida); ambas cifras se
// conservan para auditoría. Una salida cuyo despacho excede el stock vigente
// falla con ErrInsufficientStock sin producir movimiento para esa línea.
type SalidaUseCase struct {
	txRunner    movimientos.TxRunner
	salidaRepo  repository.SalidaRepository
	itemRepo    repository.ItemRepository
	usuarioRepo repository.UsuarioRepository
	storage     FirmaStorage // puede ser nil (sin firma)
	notificador alertas.Notificador
	feed        alertas.CambioFeed // puede ser nil
	log         *logger.Logger
}

// NewSalidaUseCase construye el caso de uso.
func NewSalidaUseCase(
	txRunner movimientos.TxRunner,
	salidaRepo repository.SalidaRepository,
	itemRepo repository.ItemRepository,
	usuarioRepo repository.UsuarioRepository,
	storage FirmaStorage,
	notificador alertas.Notificador,
	feed alertas.CambioFeed,
	log *logger.Logger,
) *SalidaUseCase {
	return &SalidaUseCase{
		txRunner:    txRunner,
		salidaRepo:  salidaRepo,
		itemRepo:    itemRepo,
		usuarioRepo: usuarioRepo,
		storage:     storage,
		notificador: notificador,
		feed:        feed,
		log:         log,
	}
}

// Registrar resuelve solicitante y gestor, sube la firma (si viene), crea la
// cabecera y aplica cada línea en su propia transacción: la línea, el
// descuento de stock bajo lock y el movimiento viajan juntos. Un fallo en la
// línea k con líneas previas confirmadas devuelve *domain.PartialFailure.
func (uc *SalidaUseCase) Registrar(ctx context.Context, idGestor string, in dto.RegistrarSalidaRequest, firma []byte, firmaContentType string) (*entity.Salida, error) {
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

	firmaURL := ""
	if len(firma) > 0 && uc.storage != nil {
		nombre := fmt.Sprintf("firma-%s.png", uuid.New().String())
		firmaURL, err = uc.storage.SubirFirma(ctx, nombre, firma, firmaContentType)
		if err != nil {
			return nil, fmt.Errorf("subir firma: %w", err)
		}
	}

	now := time.Now()
	salida := &entity.Salida{
		ID:            uuid.New().String(),
		IDSolicitante: in.IDSolicitante,
		IDGestor:      idGestor,
		Actividad:     in.Actividad,
		Firma:         firmaURL,
		IDSolicitud:   in.IDSolicitud,
		Fecha:         now,
	}
	if err := uc.salidaRepo.Create(salida); err != nil {
		return nil, err
	}

	applied := make([]int, 0, len(in.Items))
	for idx, linea := range in.Items {
		lineaIdx, l := idx, linea
		err := uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
			item := &entity.SalidaItem{
				ID:                 uuid.New().String(),
				IDSalida:           salida.ID,
				IDItem:             l.IDItem,
				CantidadRequerida:  l.CantidadRequerida,
				CantidadDespachada: l.CantidadDespachada,
			}
			if err := r.Salidas.CreateItem(item); err != nil {
				return err
			}
			_, err := movimientos.Aplicar(r, movimientos.Input{
				IDItem:      l.IDItem,
				Tipo:        entity.MovimientoSalida,
				Cantidad:    -l.CantidadDespachada,
				Origen:      entity.Origen{Tipo: entity.OrigenSalidaItem, ID: item.ID},
				Descripcion: fmt.Sprintf("Salida por actividad %q", in.Actividad),
			}, now)
			return err
		})
		if err != nil {
			if len(applied) > 0 {
				return salida, &domain.PartialFailure{Applied: applied, Failed: lineaIdx, Err: err}
			}
			return nil, err
		}
		applied = append(applied, lineaIdx)
		uc.despuesDeLinea(ctx, idGestor, l.IDItem)
	}
	return salida, nil
}

// despuesDeLinea publica el cambio en el feed y emite la alerta de stock bajo
// si el descuento dejó el ítem en o por debajo del mínimo. La derivación es
// una consulta pura sobre el estado vigente, no un flag cacheado.
func (uc *SalidaUseCase) despuesDeLinea(ctx context.Context, idGestor, idItem string) {
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

// Listar devuelve las salidas más recientes.
func (uc *SalidaUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Salida, error) {
	return uc.salidaRepo.List(ctx, limit, offset)
}

// Detalle devuelve la cabecera y sus líneas.
func (uc *SalidaUseCase) Detalle(ctx context.Context, id string) (*entity.Salida, []*entity.SalidaItem, error) {
	salida, err := uc.salidaRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if salida == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.salidaRepo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return salida, items, nil
}

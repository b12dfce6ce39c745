package solicitudes

import (
	"context"
	"fmt"
	"strings"
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

// SolicitudUseCase gestiona el flujo de solicitudes de materiales. La
// transición pendiente → {aprobada, rechazada} es única y terminal; aprobar no
// descuenta stock, solo notifica al solicitante y al gestor asignado.
type SolicitudUseCase struct {
	txRunner      movimientos.TxRunner
	solicitudRepo repository.SolicitudRepository
	itemRepo      repository.ItemRepository
	usuarioRepo   repository.UsuarioRepository
	notificador   alertas.Notificador
	log           *logger.Logger
}

// NewSolicitudUseCase construye el caso de uso.
func NewSolicitudUseCase(
	txRunner movimientos.TxRunner,
	solicitudRepo repository.SolicitudRepository,
	itemRepo repository.ItemRepository,
	usuarioRepo repository.UsuarioRepository,
	notificador alertas.Notificador,
	log *logger.Logger,
) *SolicitudUseCase {
	return &SolicitudUseCase{
		txRunner:      txRunner,
		solicitudRepo: solicitudRepo,
		itemRepo:      itemRepo,
		usuarioRepo:   usuarioRepo,
		notificador:   notificador,
		log:           log,
	}
}

// Crear registra una solicitud en estado pendiente. Debe traer líneas de
// catálogo, descripción de material, o ambas; las líneas referencian ítems
// existentes.
func (uc *SolicitudUseCase) Crear(ctx context.Context, idSolicitante string, in dto.CrearSolicitudRequest) (*entity.Solicitud, error) {
	if len(in.Items) == 0 && strings.TrimSpace(in.DescripcionMaterial) == "" {
		return nil, domain.ErrInvalidInput
	}
	solicitante, err := uc.usuarioRepo.GetByID(idSolicitante)
	if err != nil {
		return nil, err
	}
	if solicitante == nil {
		return nil, domain.ErrUserNotFound
	}
	for _, linea := range in.Items {
		item, err := uc.itemRepo.GetByID(linea.IDItem)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
	}

	sol := &entity.Solicitud{
		ID:                  uuid.New().String(),
		IDSolicitante:       idSolicitante,
		Actividad:           in.Actividad,
		DescripcionMaterial: in.DescripcionMaterial,
		FechaActividad:      in.FechaActividad,
		FechaSolicitud:      time.Now(),
		Estado:              entity.SolicitudPendiente,
	}
	err = uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		if err := r.Solicitudes.Create(sol); err != nil {
			return err
		}
		for _, linea := range in.Items {
			item := &entity.SolicitudItem{
				ID:          uuid.New().String(),
				IDSolicitud: sol.ID,
				IDItem:      linea.IDItem,
				Cantidad:    linea.Cantidad,
			}
			if err := r.Solicitudes.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sol, nil
}

// Aprobar marca la solicitud como aprobada. Si tiene líneas de catálogo exige
// un gestor asignado, que recibe una alerta salida_pendiente con el detalle de
// lo aprobado; el solicitante recibe solicitud_aprobada.
func (uc *SolicitudUseCase) Aprobar(ctx context.Context, idAdmin, idSolicitud string, in dto.AprobarSolicitudRequest) (*entity.Solicitud, error) {
	admin, err := uc.usuarioRepo.GetByID(idAdmin)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUserNotFound
	}

	var (
		sol    *entity.Solicitud
		lineas []*entity.SolicitudItem
	)
	err = uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		sol, err = r.Solicitudes.GetForUpdate(idSolicitud)
		if err != nil {
			return err
		}
		if sol == nil {
			return domain.ErrNotFound
		}
		if sol.Procesada() {
			return domain.ErrRequestClosed
		}
		lineas, err = r.Solicitudes.ListItems(ctx, idSolicitud)
		if err != nil {
			return err
		}
		if len(lineas) > 0 {
			if in.IDGestor == "" {
				return domain.ErrManagerRequired
			}
			gestor, err := uc.usuarioRepo.GetByID(in.IDGestor)
			if err != nil {
				return err
			}
			if gestor == nil {
				return domain.ErrUserNotFound
			}
			sol.IDGestor = in.IDGestor
		}
		sol.Estado = entity.SolicitudAprobada
		sol.IDAdministrador = idAdmin
		return r.Solicitudes.Procesar(sol)
	})
	if err != nil {
		return nil, err
	}

	uc.emitir(ctx, entity.AlertaSolicitudAprobada,
		fmt.Sprintf("Tu solicitud para la actividad %q fue aprobada.", sol.Actividad),
		sol.IDSolicitante)
	if sol.IDGestor != "" {
		uc.emitir(ctx, entity.AlertaSalidaPendiente,
			uc.mensajeSalidaPendiente(sol, lineas), sol.IDGestor)
	}
	return sol, nil
}

// mensajeSalidaPendiente enumera las líneas aprobadas para el gestor que debe
// despacharlas.
func (uc *SolicitudUseCase) mensajeSalidaPendiente(sol *entity.Solicitud, lineas []*entity.SolicitudItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Solicitud aprobada pendiente de despacho para la actividad %q:", sol.Actividad)
	for _, linea := range lineas {
		item, err := uc.itemRepo.GetByID(linea.IDItem)
		if err != nil || item == nil {
			fmt.Fprintf(&b, " %d x %s;", linea.Cantidad, linea.IDItem)
			continue
		}
		fmt.Fprintf(&b, " %d x %s (%s);", linea.Cantidad, item.Nombre, item.Codigo)
	}
	return strings.TrimSuffix(b.String(), ";")
}

// Rechazar marca la solicitud como rechazada y notifica al solicitante con el
// motivo. Sin motivo explícito se usa uno genérico.
func (uc *SolicitudUseCase) Rechazar(ctx context.Context, idAdmin, idSolicitud string, in dto.RechazarSolicitudRequest) (*entity.Solicitud, error) {
	admin, err := uc.usuarioRepo.GetByID(idAdmin)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUserNotFound
	}

	motivo := strings.TrimSpace(in.Motivo)
	if motivo == "" {
		motivo = "La solicitud no fue aprobada."
	}
	var sol *entity.Solicitud
	err = uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		sol, err = r.Solicitudes.GetForUpdate(idSolicitud)
		if err != nil {
			return err
		}
		if sol == nil {
			return domain.ErrNotFound
		}
		if sol.Procesada() {
			return domain.ErrRequestClosed
		}
		sol.Estado = entity.SolicitudRechazada
		sol.IDAdministrador = idAdmin
		sol.MotivoRechazo = motivo
		return r.Solicitudes.Procesar(sol)
	})
	if err != nil {
		return nil, err
	}

	uc.emitir(ctx, entity.AlertaSolicitudRechazada,
		fmt.Sprintf("Tu solicitud para la actividad %q fue rechazada: %s", sol.Actividad, motivo),
		sol.IDSolicitante)
	return sol, nil
}

// emitir notifica best-effort: la transición ya quedó confirmada, así que un
// fallo al persistir la alerta se loguea y no se propaga.
func (uc *SolicitudUseCase) emitir(ctx context.Context, tipo, mensaje, idUsuario string) {
	if err := uc.notificador.Emitir(ctx, tipo, mensaje, idUsuario); err != nil {
		uc.log.Warn().Err(err).Str("tipo", tipo).Str("usuario", idUsuario).Msg("emitir alerta de solicitud")
	}
}

// Listar devuelve solicitudes según filtro. Un solicitante solo ve las suyas;
// esa restricción la impone la capa HTTP fijando IDSolicitante.
func (uc *SolicitudUseCase) Listar(ctx context.Context, filtro repository.FiltroSolicitudes, limit, offset int) ([]*entity.Solicitud, error) {
	return uc.solicitudRepo.List(ctx, filtro, limit, offset)
}

// Detalle devuelve la solicitud y sus líneas.
func (uc *SolicitudUseCase) Detalle(ctx context.Context, id string) (*entity.Solicitud, []*entity.SolicitudItem, error) {
	sol, err := uc.solicitudRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if sol == nil {
		return nil, nil, domain.ErrNotFound
	}
	lineas, err := uc.solicitudRepo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return sol, lineas, nil
}

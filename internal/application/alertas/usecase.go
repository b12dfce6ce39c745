package alertas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

var _ Notificador = (*AlertaUseCase)(nil)

// AlertaUseCase implementación por defecto de Notificador: persiste la alerta
// y, si hay feed configurado, publica el cambio en el canal del usuario.
type AlertaUseCase struct {
	alertaRepo repository.AlertaRepository
	feed       CambioFeed // puede ser nil (feed deshabilitado)
	log        *logger.Logger
}

// NewAlertaUseCase construye el caso de uso. feed puede ser nil.
func NewAlertaUseCase(alertaRepo repository.AlertaRepository, feed CambioFeed, log *logger.Logger) *AlertaUseCase {
	return &AlertaUseCase{alertaRepo: alertaRepo, feed: feed, log: log}
}

// Emitir crea la alerta para el usuario destino. El fallo del feed se loguea
// pero nunca falla la operación que originó la alerta.
func (uc *AlertaUseCase) Emitir(ctx context.Context, tipo, mensaje, idUsuario string) error {
	alerta := &entity.Alerta{
		ID:        uuid.New().String(),
		Tipo:      tipo,
		Mensaje:   mensaje,
		IDUsuario: idUsuario,
		Estado:    entity.AlertaActiva,
		Nivel:     nivelPorTipo(tipo),
		Fecha:     time.Now(),
	}
	if err := uc.alertaRepo.Create(alerta); err != nil {
		return fmt.Errorf("crear alerta: %w", err)
	}
	if uc.feed != nil {
		if err := uc.feed.Publicar(ctx, "alertas:"+idUsuario, alerta.ID); err != nil {
			uc.log.Warn().Err(err).Str("usuario", idUsuario).Msg("publicar alerta en feed")
		}
	}
	return nil
}

func nivelPorTipo(tipo string) string {
	switch tipo {
	case entity.AlertaStockBajo:
		return entity.NivelAlta
	case entity.AlertaSalidaPendiente:
		return entity.NivelMedia
	default:
		return entity.NivelMedia
	}
}

// Ultimas devuelve las últimas alertas activas del usuario.
func (uc *AlertaUseCase) Ultimas(ctx context.Context, idUsuario string, limit int) ([]*entity.Alerta, error) {
	if limit <= 0 {
		limit = 5
	}
	return uc.alertaRepo.ListByUsuario(ctx, idUsuario, true, limit)
}

// PorUsuario devuelve el historial completo de alertas del usuario.
func (uc *AlertaUseCase) PorUsuario(ctx context.Context, idUsuario string) ([]*entity.Alerta, error) {
	return uc.alertaRepo.ListByUsuario(ctx, idUsuario, false, 0)
}

// Todas devuelve todas las alertas (vista admin).
func (uc *AlertaUseCase) Todas(ctx context.Context, limit, offset int) ([]*entity.Alerta, error) {
	return uc.alertaRepo.ListAll(ctx, limit, offset)
}

// Detalle obtiene una alerta por id.
func (uc *AlertaUseCase) Detalle(ctx context.Context, id string) (*entity.Alerta, error) {
	return uc.alertaRepo.GetByID(id)
}

// MarcarInactiva desactiva una alerta ya atendida.
func (uc *AlertaUseCase) MarcarInactiva(ctx context.Context, id string) error {
	return uc.alertaRepo.MarkInactiva(id)
}

// MensajeStockBajo arma el mensaje estándar de alerta por stock mínimo.
func MensajeStockBajo(item *entity.Item) string {
	return fmt.Sprintf("El ítem %q (código %s) quedó en %d unidad(es), en o por debajo del mínimo (%d).",
		item.Nombre, item.Codigo, item.StockReal, item.StockMinimo)
}

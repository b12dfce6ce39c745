package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// FiltroSolicitudes criterios de listado de solicitudes.
type FiltroSolicitudes struct {
	IDSolicitante string // vacío = todas (vista admin)
	Estado        string // vacío = cualquier estado
	Texto         string // busca en actividad y descripción de material
}

// SolicitudRepository define el puerto de persistencia para solicitudes.
type SolicitudRepository interface {
	Create(sol *entity.Solicitud) error
	CreateItem(linea *entity.SolicitudItem) error
	GetByID(id string) (*entity.Solicitud, error)
	// GetForUpdate bloquea la fila: la transición pendiente → terminal debe
	// ser única aunque dos administradores procesen a la vez.
	GetForUpdate(id string) (*entity.Solicitud, error)
	// Procesar escribe el estado terminal junto con admin, gestor y motivo.
	Procesar(sol *entity.Solicitud) error
	List(ctx context.Context, filtro FiltroSolicitudes, limit, offset int) ([]*entity.Solicitud, error)
	ListItems(ctx context.Context, idSolicitud string) ([]*entity.SolicitudItem, error)
}

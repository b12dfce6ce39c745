package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

// AjusteRepo ajustes en memoria.
type AjusteRepo struct{ s *Store }

var _ repository.AjusteRepository = (*AjusteRepo)(nil)

func (r *AjusteRepo) Create(ajuste *entity.Ajuste) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *ajuste
	r.s.ajustes = append(r.s.ajustes, &c)
	return nil
}

func (r *AjusteRepo) ListByItem(_ context.Context, idItem string, limit, offset int) ([]*entity.Ajuste, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Ajuste, 0)
	for _, a := range r.s.ajustes {
		if a.IDItem == idItem {
			c := *a
			out = append(out, &c)
		}
	}
	return paginar(out, limit, offset), nil
}

func (r *AjusteRepo) List(_ context.Context, limit, offset int) ([]*entity.Ajuste, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Ajuste, 0, len(r.s.ajustes))
	for _, a := range r.s.ajustes {
		c := *a
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

// EntradaRepo entradas en memoria.
type EntradaRepo struct{ s *Store }

var _ repository.EntradaRepository = (*EntradaRepo)(nil)

func (r *EntradaRepo) Create(entrada *entity.Entrada) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *entrada
	r.s.entradas[entrada.ID] = &c
	return nil
}

func (r *EntradaRepo) CreateItem(linea *entity.EntradaItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *linea
	r.s.entradaItems = append(r.s.entradaItems, &c)
	return nil
}

func (r *EntradaRepo) GetByID(id string) (*entity.Entrada, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entradas[id]
	if !ok {
		return nil, nil
	}
	c := *e
	return &c, nil
}

func (r *EntradaRepo) List(_ context.Context, limit, offset int) ([]*entity.Entrada, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Entrada, 0, len(r.s.entradas))
	for _, e := range r.s.entradas {
		c := *e
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

func (r *EntradaRepo) ListItems(_ context.Context, idEntrada string) ([]*entity.EntradaItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.EntradaItem, 0)
	for _, l := range r.s.entradaItems {
		if l.IDEntrada == idEntrada {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// SalidaRepo salidas en memoria.
type SalidaRepo struct{ s *Store }

var _ repository.SalidaRepository = (*SalidaRepo)(nil)

func (r *SalidaRepo) Create(salida *entity.Salida) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *salida
	r.s.salidas[salida.ID] = &c
	return nil
}

func (r *SalidaRepo) CreateItem(linea *entity.SalidaItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *linea
	r.s.salidaItems = append(r.s.salidaItems, &c)
	return nil
}

func (r *SalidaRepo) GetByID(id string) (*entity.Salida, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.salidas[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *SalidaRepo) List(_ context.Context, limit, offset int) ([]*entity.Salida, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Salida, 0, len(r.s.salidas))
	for _, s := range r.s.salidas {
		c := *s
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

func (r *SalidaRepo) ListItems(_ context.Context, idSalida string) ([]*entity.SalidaItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.SalidaItem, 0)
	for _, l := range r.s.salidaItems {
		if l.IDSalida == idSalida {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// DevolucionRepo devoluciones en memoria.
type DevolucionRepo struct{ s *Store }

var _ repository.DevolucionRepository = (*DevolucionRepo)(nil)

func (r *DevolucionRepo) Create(devolucion *entity.Devolucion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *devolucion
	r.s.devoluciones[devolucion.ID] = &c
	return nil
}

func (r *DevolucionRepo) CreateItem(linea *entity.DevolucionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *linea
	r.s.devolItems = append(r.s.devolItems, &c)
	return nil
}

func (r *DevolucionRepo) GetByID(id string) (*entity.Devolucion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.devoluciones[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (r *DevolucionRepo) List(_ context.Context, limit, offset int) ([]*entity.Devolucion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Devolucion, 0, len(r.s.devoluciones))
	for _, d := range r.s.devoluciones {
		c := *d
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

func (r *DevolucionRepo) ListItems(_ context.Context, idDevolucion string) ([]*entity.DevolucionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.DevolucionItem, 0)
	for _, l := range r.s.devolItems {
		if l.IDDevolucion == idDevolucion {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// InventarioFisicoRepo sesiones de conteo en memoria.
type InventarioFisicoRepo struct{ s *Store }

var _ repository.InventarioFisicoRepository = (*InventarioFisicoRepo)(nil)

func claveDetalle(idInventario, idItem string) string {
	return idInventario + ":" + idItem
}

func (r *InventarioFisicoRepo) Create(inv *entity.InventarioFisico) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *inv
	r.s.inventarios[inv.ID] = &c
	return nil
}

func (r *InventarioFisicoRepo) GetByID(id string) (*entity.InventarioFisico, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventarios[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *InventarioFisicoRepo) GetForUpdate(id string) (*entity.InventarioFisico, error) {
	return r.GetByID(id)
}

func (r *InventarioFisicoRepo) Finalizar(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventarios[id]
	if !ok || inv.Finalizado() {
		return domain.ErrSessionFinalized
	}
	now := time.Now()
	inv.Estado = entity.InventarioFinalizado
	inv.FechaFin = &now
	return nil
}

func (r *InventarioFisicoRepo) List(_ context.Context, limit, offset int) ([]*entity.InventarioFisico, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventarioFisico, 0, len(r.s.inventarios))
	for _, inv := range r.s.inventarios {
		c := *inv
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

func (r *InventarioFisicoRepo) UpsertDetalle(det *entity.InventarioFisicoDetalle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *det
	r.s.detalles[claveDetalle(det.IDInventario, det.IDItem)] = &c
	return nil
}

func (r *InventarioFisicoRepo) ListDetalles(_ context.Context, idInventario string) ([]*entity.InventarioFisicoDetalle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InventarioFisicoDetalle, 0)
	for clave, det := range r.s.detalles {
		if strings.HasPrefix(clave, idInventario+":") {
			c := *det
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *InventarioFisicoRepo) CountDiferencias(ctx context.Context, idInventario string) (int, error) {
	detalles, err := r.ListDetalles(ctx, idInventario)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, d := range detalles {
		if d.Contado && d.StockContado != d.StockSistema {
			total++
		}
	}
	return total, nil
}

// SolicitudRepo solicitudes en memoria.
type SolicitudRepo struct{ s *Store }

var _ repository.SolicitudRepository = (*SolicitudRepo)(nil)

func (r *SolicitudRepo) Create(sol *entity.Solicitud) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *sol
	r.s.solicitudes[sol.ID] = &c
	return nil
}

func (r *SolicitudRepo) CreateItem(linea *entity.SolicitudItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *linea
	r.s.solItems = append(r.s.solItems, &c)
	return nil
}

func (r *SolicitudRepo) GetByID(id string) (*entity.Solicitud, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sol, ok := r.s.solicitudes[id]
	if !ok {
		return nil, nil
	}
	c := *sol
	return &c, nil
}

func (r *SolicitudRepo) GetForUpdate(id string) (*entity.Solicitud, error) {
	return r.GetByID(id)
}

func (r *SolicitudRepo) Procesar(sol *entity.Solicitud) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actual, ok := r.s.solicitudes[sol.ID]
	if !ok || actual.Procesada() {
		return domain.ErrRequestClosed
	}
	c := *sol
	r.s.solicitudes[sol.ID] = &c
	return nil
}

func (r *SolicitudRepo) List(_ context.Context, filtro repository.FiltroSolicitudes, limit, offset int) ([]*entity.Solicitud, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Solicitud, 0)
	texto := strings.ToLower(filtro.Texto)
	for _, sol := range r.s.solicitudes {
		if filtro.IDSolicitante != "" && sol.IDSolicitante != filtro.IDSolicitante {
			continue
		}
		if filtro.Estado != "" && sol.Estado != filtro.Estado {
			continue
		}
		if texto != "" &&
			!strings.Contains(strings.ToLower(sol.Actividad), texto) &&
			!strings.Contains(strings.ToLower(sol.DescripcionMaterial), texto) {
			continue
		}
		c := *sol
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

func (r *SolicitudRepo) ListItems(_ context.Context, idSolicitud string) ([]*entity.SolicitudItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.SolicitudItem, 0)
	for _, l := range r.s.solItems {
		if l.IDSolicitud == idSolicitud {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

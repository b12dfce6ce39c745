// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Sirve a los tests de los casos de uso y a entornos de demo sin
// PostgreSQL; no ofrece aislamiento transaccional (el TxRunner ejecuta el
// callback directamente sobre el estado compartido).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	items        map[string]*entity.Item
	categorias   map[string]*entity.Categoria
	usuarios     map[string]*entity.Usuario
	movimientos  []*entity.Movimiento
	ajustes      []*entity.Ajuste
	entradas     map[string]*entity.Entrada
	entradaItems []*entity.EntradaItem
	salidas      map[string]*entity.Salida
	salidaItems  []*entity.SalidaItem
	devoluciones map[string]*entity.Devolucion
	devolItems   []*entity.DevolucionItem
	inventarios  map[string]*entity.InventarioFisico
	detalles     map[string]*entity.InventarioFisicoDetalle // clave inventario+item
	solicitudes  map[string]*entity.Solicitud
	solItems     []*entity.SolicitudItem
	alertas      map[string]*entity.Alerta
}

// NewStore crea el estado vacío.
func NewStore() *Store {
	return &Store{
		items:        make(map[string]*entity.Item),
		categorias:   make(map[string]*entity.Categoria),
		usuarios:     make(map[string]*entity.Usuario),
		entradas:     make(map[string]*entity.Entrada),
		salidas:      make(map[string]*entity.Salida),
		devoluciones: make(map[string]*entity.Devolucion),
		inventarios:  make(map[string]*entity.InventarioFisico),
		detalles:     make(map[string]*entity.InventarioFisicoDetalle),
		solicitudes:  make(map[string]*entity.Solicitud),
		alertas:      make(map[string]*entity.Alerta),
	}
}

// Repos devuelve el juego completo de repositorios sobre el store.
func (s *Store) Repos() movimientos.TxRepos {
	return movimientos.TxRepos{
		Items:        &ItemRepo{s: s},
		Movimientos:  &MovimientoRepo{s: s},
		Ajustes:      &AjusteRepo{s: s},
		Entradas:     &EntradaRepo{s: s},
		Salidas:      &SalidaRepo{s: s},
		Devoluciones: &DevolucionRepo{s: s},
		Inventarios:  &InventarioFisicoRepo{s: s},
		Solicitudes:  &SolicitudRepo{s: s},
	}
}

// Usuarios devuelve el repositorio de usuarios.
func (s *Store) Usuarios() repository.UsuarioRepository { return &UsuarioRepo{s: s} }

// Categorias devuelve el repositorio de categorías.
func (s *Store) Categorias() repository.CategoriaRepository { return &CategoriaRepo{s: s} }

// Alertas devuelve el repositorio de alertas.
func (s *Store) Alertas() repository.AlertaRepository { return &AlertaRepo{s: s} }

// TxRunner implementación sin aislamiento: ejecuta fn sobre el estado
// compartido y propaga su error.
type TxRunner struct {
	s *Store
}

var _ movimientos.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn con los repos del store.
func (r *TxRunner) Run(_ context.Context, fn func(repos movimientos.TxRepos) error) error {
	return fn(r.s.Repos())
}

func clonarItem(i *entity.Item) *entity.Item {
	c := *i
	return &c
}

// ItemRepo repositorio de ítems en memoria.
type ItemRepo struct{ s *Store }

var _ repository.ItemRepository = (*ItemRepo)(nil)

func (r *ItemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = clonarItem(item)
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return clonarItem(item), nil
}

func (r *ItemRepo) GetByCodigo(codigo string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.items {
		if item.Codigo == codigo {
			return clonarItem(item), nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *ItemRepo) UpdateStock(id string, stockReal int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil
	}
	item.StockReal = stockReal
	item.UpdatedAt = time.Now()
	return nil
}

func (r *ItemRepo) SetBloqueado(id string, bloqueado bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item, ok := r.s.items[id]; ok {
		item.Bloqueado = bloqueado
	}
	return nil
}

func (r *ItemRepo) Update(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	actual, ok := r.s.items[item.ID]
	if !ok {
		return nil
	}
	stock := actual.StockReal
	c := *item
	c.StockReal = stock // el stock solo lo escribe UpdateStock
	r.s.items[item.ID] = &c
	return nil
}

func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		out = append(out, clonarItem(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *ItemRepo) ListStockBajo(ctx context.Context) ([]*entity.Item, error) {
	todos, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Item, 0)
	for _, item := range todos {
		if item.StockBajo() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ItemRepo) HasReferences(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movimientos {
		if m.IDItem == id {
			return true, nil
		}
	}
	for _, l := range r.s.solItems {
		if l.IDItem == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *ItemRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

// MovimientoRepo libro de movimientos en memoria.
type MovimientoRepo struct{ s *Store }

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

func (r *MovimientoRepo) Create(mov *entity.Movimiento) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *mov
	r.s.movimientos = append(r.s.movimientos, &c)
	return nil
}

func (r *MovimientoRepo) SumByItem(idItem string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	suma := 0
	for _, m := range r.s.movimientos {
		if m.IDItem == idItem {
			suma += m.Cantidad
		}
	}
	return suma, nil
}

func (r *MovimientoRepo) ListByItem(_ context.Context, idItem string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Movimiento, 0)
	for _, m := range r.s.movimientos {
		if m.IDItem != idItem || !enRango(m.Fecha, from, to) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

func (r *MovimientoRepo) List(_ context.Context, tipo string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Movimiento, 0)
	for _, m := range r.s.movimientos {
		if (tipo != "" && m.Tipo != tipo) || !enRango(m.Fecha, from, to) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return paginar(out, limit, offset), nil
}

func enRango(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginar[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

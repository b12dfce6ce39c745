package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

// UsuarioRepo usuarios en memoria.
type UsuarioRepo struct{ s *Store }

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *usuario
	r.s.usuarios[usuario.ID] = &c
	return nil
}

func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.usuarios[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UsuarioRepo) GetByCorreo(correo string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	correo = strings.ToLower(correo)
	for _, u := range r.s.usuarios {
		if strings.ToLower(u.Correo) == correo {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UsuarioRepo) ListByRol(_ context.Context, rol string) ([]*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Usuario, 0)
	for _, u := range r.s.usuarios {
		if u.Rol == rol {
			c := *u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usuarios[usuario.ID]; !ok {
		return nil
	}
	c := *usuario
	c.UpdatedAt = time.Now()
	r.s.usuarios[usuario.ID] = &c
	return nil
}

// CategoriaRepo categorías en memoria.
type CategoriaRepo struct{ s *Store }

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

func (r *CategoriaRepo) Create(categoria *entity.Categoria) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existente := range r.s.categorias {
		if existente.Nombre == categoria.Nombre {
			return domain.ErrCategoriaAlreadyExists
		}
	}
	c := *categoria
	r.s.categorias[categoria.ID] = &c
	return nil
}

func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cat, ok := r.s.categorias[id]
	if !ok {
		return nil, nil
	}
	c := *cat
	return &c, nil
}

func (r *CategoriaRepo) List(_ context.Context) ([]*entity.Categoria, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Categoria, 0, len(r.s.categorias))
	for _, cat := range r.s.categorias {
		c := *cat
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// AlertaRepo alertas en memoria.
type AlertaRepo struct{ s *Store }

var _ repository.AlertaRepository = (*AlertaRepo)(nil)

func (r *AlertaRepo) Create(alerta *entity.Alerta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *alerta
	r.s.alertas[alerta.ID] = &c
	return nil
}

func (r *AlertaRepo) GetByID(id string) (*entity.Alerta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.alertas[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *AlertaRepo) ListByUsuario(_ context.Context, idUsuario string, soloActivas bool, limit int) ([]*entity.Alerta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Alerta, 0)
	for _, a := range r.s.alertas {
		if a.IDUsuario != idUsuario {
			continue
		}
		if soloActivas && a.Estado != entity.AlertaActiva {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return paginar(out, limit, 0), nil
}

func (r *AlertaRepo) ListAll(_ context.Context, limit, offset int) ([]*entity.Alerta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Alerta, 0, len(r.s.alertas))
	for _, a := range r.s.alertas {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return paginar(out, limit, offset), nil
}

func (r *AlertaRepo) MarkInactiva(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.alertas[id]; ok {
		a.Estado = entity.AlertaInactiva
	}
	return nil
}

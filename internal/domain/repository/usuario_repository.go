package repository

import (
	"context"

	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByCorreo(correo string) (*entity.Usuario, error)
	ListByRol(ctx context.Context, rol string) ([]*entity.Usuario, error)
	Update(usuario *entity.Usuario) error
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioColumns = `id, cedula, nombre, apellidos, correo, password_hash, rol, estado, created_at, updated_at`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Cedula, &u.Nombre, &u.Apellidos, &u.Correo,
		&u.PasswordHash, &u.Rol, &u.Estado, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserta un usuario.
func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, cedula, nombre, apellidos, correo, password_hash, rol, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.Cedula, usuario.Nombre, usuario.Apellidos, usuario.Correo,
		usuario.PasswordHash, usuario.Rol, usuario.Estado, usuario.CreatedAt, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por id. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`
	usuario, err := scanUsuario(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return usuario, nil
}

// GetByCorreo obtiene un usuario por correo. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByCorreo(correo string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE correo = $1`
	usuario, err := scanUsuario(r.q.QueryRow(context.Background(), query, correo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by correo: %w", err)
	}
	return usuario, nil
}

// ListByRol devuelve los usuarios de un rol, ordenados por nombre.
func (r *UsuarioRepo) ListByRol(ctx context.Context, rol string) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE rol = $1 ORDER BY nombre, apellidos`
	rows, err := r.q.Query(ctx, query, rol)
	if err != nil {
		return nil, fmt.Errorf("list usuarios por rol: %w", err)
	}
	defer rows.Close()

	usuarios := make([]*entity.Usuario, 0)
	for rows.Next() {
		usuario, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		usuarios = append(usuarios, usuario)
	}
	return usuarios, rows.Err()
}

// Update actualiza los datos de un usuario.
func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	query := `
		UPDATE usuarios SET cedula = $2, nombre = $3, apellidos = $4, correo = $5,
			password_hash = $6, rol = $7, estado = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.Cedula, usuario.Nombre, usuario.Apellidos, usuario.Correo,
		usuario.PasswordHash, usuario.Rol, usuario.Estado, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

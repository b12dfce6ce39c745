package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
	"github.com/jmcanizales/papeleria-api/pkg/jwt"
)

// AuthUseCase registro, autenticación y administración de usuarios.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtSecret   string
	jwtIssuer   string
	jwtExpMin   int
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtSecret, jwtIssuer string, jwtExpMin int) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo: usuarioRepo,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
		jwtExpMin:   jwtExpMin,
	}
}

// Registro autoregistra un solicitante. El rol nunca viene del cliente: los
// gestores y administradores solo se crean vía CrearUsuario.
func (uc *AuthUseCase) Registro(ctx context.Context, in dto.RegisterRequest) (*entity.Usuario, error) {
	return uc.crear(ctx, dto.CrearUsuarioRequest{
		Cedula:    in.Cedula,
		Nombre:    in.Nombre,
		Apellidos: in.Apellidos,
		Correo:    in.Correo,
		Password:  in.Password,
		Rol:       entity.RolSolicitante,
	})
}

// CrearUsuario da de alta un usuario con rol explícito (solo admin).
func (uc *AuthUseCase) CrearUsuario(ctx context.Context, in dto.CrearUsuarioRequest) (*entity.Usuario, error) {
	return uc.crear(ctx, in)
}

func (uc *AuthUseCase) crear(ctx context.Context, in dto.CrearUsuarioRequest) (*entity.Usuario, error) {
	correo := strings.ToLower(strings.TrimSpace(in.Correo))
	existente, err := uc.usuarioRepo.GetByCorreo(correo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Cedula:       in.Cedula,
		Nombre:       in.Nombre,
		Apellidos:    in.Apellidos,
		Correo:       correo,
		PasswordHash: string(hash),
		Rol:          in.Rol,
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

// Login valida credenciales y emite un JWT con user_id y rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByCorreo(strings.ToLower(strings.TrimSpace(in.Correo)))
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Estado != "active" {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtSecret, usuario.ID, usuario.Rol, uc.jwtIssuer, uc.jwtExpMin)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: ToUserResponse(usuario),
	}, nil
}

// Perfil devuelve el usuario autenticado.
func (uc *AuthUseCase) Perfil(ctx context.Context, id string) (*entity.Usuario, error) {
	usuario, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	return usuario, nil
}

// ListarPorRol devuelve los usuarios de un rol (p. ej. gestores asignables).
func (uc *AuthUseCase) ListarPorRol(ctx context.Context, rol string) ([]*entity.Usuario, error) {
	return uc.usuarioRepo.ListByRol(ctx, rol)
}

// ToUserResponse proyecta la entidad sin el hash.
func ToUserResponse(u *entity.Usuario) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Cedula:    u.Cedula,
		Nombre:    u.Nombre,
		Apellidos: u.Apellidos,
		Correo:    u.Correo,
		Rol:       u.Rol,
		Estado:    u.Estado,
	}
}

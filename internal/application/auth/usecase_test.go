package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/application/auth"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/infrastructure/memory"
)

func nuevoUC(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Usuarios(), "secreto-de-test", "papeleria-test", 60)
	return uc, store
}

func TestRegistroYLogin(t *testing.T) {
	uc, _ := nuevoUC(t)

	usuario, err := uc.Registro(context.Background(), dto.RegisterRequest{
		Cedula:   "1020304050",
		Nombre:   "Camila",
		Correo:   "Camila@Example.com",
		Password: "clave-segura-123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RolSolicitante, usuario.Rol, "el autoregistro nunca otorga otro rol")
	assert.Equal(t, "camila@example.com", usuario.Correo, "el correo se normaliza a minúsculas")
	assert.NotEqual(t, "clave-segura-123", usuario.PasswordHash)

	res, err := uc.Login(context.Background(), dto.LoginRequest{
		Correo:   "camila@example.com",
		Password: "clave-segura-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, usuario.ID, res.Usuario.ID)
	assert.Equal(t, entity.RolSolicitante, res.Usuario.Rol)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := nuevoUC(t)
	_, err := uc.Registro(context.Background(), dto.RegisterRequest{
		Cedula: "1", Nombre: "Ana", Correo: "ana@example.com", Password: "clave-correcta",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Correo: "ana@example.com", Password: "clave-incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CorreoInexistente(t *testing.T) {
	uc, _ := nuevoUC(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Correo: "nadie@example.com", Password: "lo-que-sea",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := nuevoUC(t)
	usuario, err := uc.Registro(context.Background(), dto.RegisterRequest{
		Cedula: "2", Nombre: "Iván", Correo: "ivan@example.com", Password: "clave-valida-8",
	})
	require.NoError(t, err)

	usuario.Estado = "inactive"
	require.NoError(t, store.Usuarios().Update(usuario))

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Correo: "ivan@example.com", Password: "clave-valida-8",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrearUsuario_CorreoDuplicado(t *testing.T) {
	uc, _ := nuevoUC(t)
	_, err := uc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Cedula: "3", Nombre: "Gina", Correo: "gina@example.com",
		Password: "clave-valida-8", Rol: entity.RolGestor,
	})
	require.NoError(t, err)

	// Mismo correo con otra capitalización: sigue siendo duplicado.
	_, err = uc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Cedula: "4", Nombre: "Gina II", Correo: "GINA@example.com",
		Password: "otra-clave-123", Rol: entity.RolSolicitante,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestListarPorRol(t *testing.T) {
	uc, _ := nuevoUC(t)
	for _, u := range []dto.CrearUsuarioRequest{
		{Cedula: "5", Nombre: "Gestor Uno", Correo: "g1@example.com", Password: "clave-valida-8", Rol: entity.RolGestor},
		{Cedula: "6", Nombre: "Gestor Dos", Correo: "g2@example.com", Password: "clave-valida-8", Rol: entity.RolGestor},
		{Cedula: "7", Nombre: "Solicitante", Correo: "s1@example.com", Password: "clave-valida-8", Rol: entity.RolSolicitante},
	} {
		_, err := uc.CrearUsuario(context.Background(), u)
		require.NoError(t, err)
	}

	gestores, err := uc.ListarPorRol(context.Background(), entity.RolGestor)
	require.NoError(t, err)
	assert.Len(t, gestores, 2)
}

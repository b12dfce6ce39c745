package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmcanizales/papeleria-api/internal/application/auth"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
)

// AuthHandler maneja registro, login y administración de usuarios.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Autoregistro de solicitante
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "cedula, nombre, correo, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	usuario, err := h.uc.Registro(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(auth.ToUserResponse(usuario))
}

// Login godoc
// @Summary      Login con correo y contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "correo y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me devuelve el perfil del usuario autenticado.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	usuario, err := h.uc.Perfil(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(auth.ToUserResponse(usuario))
}

// CrearUsuario da de alta un usuario con rol explícito (solo admin).
func (h *AuthHandler) CrearUsuario(c *fiber.Ctx) error {
	var in dto.CrearUsuarioRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	usuario, err := h.uc.CrearUsuario(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(auth.ToUserResponse(usuario))
}

// ListarGestores devuelve los gestores asignables al aprobar solicitudes.
func (h *AuthHandler) ListarGestores(c *fiber.Ctx) error {
	usuarios, err := h.uc.ListarPorRol(c.Context(), entity.RolGestor)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.UserResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, auth.ToUserResponse(u))
	}
	return c.JSON(out)
}

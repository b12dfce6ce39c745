package dto

// RegisterRequest body para POST /api/auth/register (autoregistro de solicitantes).
type RegisterRequest struct {
	Cedula    string `json:"cedula" validate:"required"`
	Nombre    string `json:"nombre" validate:"required"`
	Apellidos string `json:"apellidos"`
	Correo    string `json:"correo" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// CrearUsuarioRequest body para POST /api/usuarios (solo admin; permite crear gestores).
type CrearUsuarioRequest struct {
	Cedula    string `json:"cedula" validate:"required"`
	Nombre    string `json:"nombre" validate:"required"`
	Apellidos string `json:"apellidos"`
	Correo    string `json:"correo" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Rol       string `json:"rol" validate:"required,oneof=admin gestor solicitante"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Correo   string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse usuario en respuestas (sin hash).
type UserResponse struct {
	ID        string `json:"id"`
	Cedula    string `json:"cedula"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos,omitempty"`
	Correo    string `json:"correo"`
	Rol       string `json:"rol"`
	Estado    string `json:"estado"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario UserResponse `json:"usuario"`
}

package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin       = "admin"
	RolGestor      = "gestor"
	RolSolicitante = "solicitante"
)

// Usuario representa un usuario del portal de inventario.
type Usuario struct {
	ID           string
	Cedula       string
	Nombre       string
	Apellidos    string
	Correo       string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          string // admin, gestor, solicitante
	Estado       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto para mensajes de alertas y descripciones de movimientos.
func (u *Usuario) NombreCompleto() string {
	if u.Apellidos == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellidos
}

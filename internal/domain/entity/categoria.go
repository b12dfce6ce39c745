package entity

import "time"

// Categoria agrupa ítems del catálogo (papelería, aseo, cafetería...).
type Categoria struct {
	ID        string
	Nombre    string
	CreatedAt time.Time
}

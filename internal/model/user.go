package model

import (
	"time"

	"github.com/google/uuid"
)

// User role values stored in the rol column.
const (
	RolPaciente      = "paciente"
	RolNutricionista = "nutricionista"
	RolAdmin         = "admin"
)

// User estado values.
const (
	UserEstadoActivo   = "activo"
	UserEstadoInvitado = "invitado"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Nombre       string    `gorm:"size:120;not null"`
	Apellido     string    `gorm:"size:120;not null"`
	Telefono     string    `gorm:"size:32"`
	Rol          string    `gorm:"size:20;not null;index"`
	Estado       string    `gorm:"size:20;not null;default:activo"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

// NombreCompleto renders the display name the clients show.
func (u User) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}

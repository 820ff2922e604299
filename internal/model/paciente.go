package model

import (
	"time"

	"github.com/google/uuid"
)

type PacienteProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"foreignKey:UserID"`

	FechaNacimiento *time.Time `gorm:"type:date"`
	Objetivo        string     `gorm:"type:text"`
	Condiciones     string     `gorm:"type:text"`

	ObraSocialID *uuid.UUID  `gorm:"type:uuid"`
	ObraSocial   *ObraSocial `gorm:"foreignKey:ObraSocialID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PacienteProfile) TableName() string { return "paciente_profiles" }

// Vinculacion estado values.
const (
	VinculacionActiva = "activa"
	VinculacionBaja   = "baja"
)

// Vinculacion links a paciente to a nutricionista. Creation is
// idempotent: an existing active link is reused, never duplicated.
type Vinculacion struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_vinculacion,priority:1"`
	NutricionistaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_vinculacion,priority:2"`

	Estado string `gorm:"size:20;not null;default:activa"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vinculacion) TableName() string { return "vinculaciones" }

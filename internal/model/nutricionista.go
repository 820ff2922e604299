package model

import (
	"time"

	"github.com/google/uuid"
)

type NutricionistaProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"foreignKey:UserID"`

	Titulo  string `gorm:"size:160"`
	SobreMi string `gorm:"type:text"`
	FotoURL string `gorm:"size:512"`

	Especialidades []Especialidad `gorm:"many2many:nutricionista_especialidades"`
	Modalidades    []Modalidad    `gorm:"many2many:nutricionista_modalidades"`
	MetodosPago    []MetodoPago   `gorm:"many2many:nutricionista_metodos_pago"`
	ObrasSociales  []ObraSocial   `gorm:"many2many:nutricionista_obras_sociales"`

	Educacion []Educacion           `gorm:"foreignKey:NutricionistaID"`
	Resenas   []Resena              `gorm:"foreignKey:NutricionistaID"`
	Rangos    []DisponibilidadRango `gorm:"foreignKey:NutricionistaID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NutricionistaProfile) TableName() string { return "nutricionista_profiles" }

type Educacion struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NutricionistaID uuid.UUID `gorm:"type:uuid;index;not null"`

	Titulo      string `gorm:"size:200;not null"`
	Institucion string `gorm:"size:200"`
	Anio        int
}

func (Educacion) TableName() string { return "educacion" }

type Resena struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NutricionistaID uuid.UUID `gorm:"type:uuid;index;not null"`
	PacienteID      uuid.UUID `gorm:"type:uuid;index;not null"`

	Puntaje    int    `gorm:"not null"` // 1..5
	Comentario string `gorm:"type:text"`

	CreatedAt time.Time
}

func (Resena) TableName() string { return "resenas" }

// DisponibilidadRango is one weekly availability window. The slot ladder
// for a date is generated from the ranges whose DiaSemana matches.
type DisponibilidadRango struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NutricionistaID uuid.UUID `gorm:"type:uuid;index;not null"`

	DiaSemana       int    `gorm:"not null"`        // 0 = domingo .. 6 = sábado
	HoraInicio      string `gorm:"size:5;not null"` // HH:MM
	HoraFin         string `gorm:"size:5;not null"` // HH:MM
	DuracionMinutos int    `gorm:"not null;default:30"`
}

func (DisponibilidadRango) TableName() string { return "disponibilidad_rangos" }

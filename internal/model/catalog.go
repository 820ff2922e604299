package model

import "github.com/google/uuid"

// Catalog tables are seeded by `nutrito system seed` and referenced by
// profiles and turnos.

type Especialidad struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"size:120;uniqueIndex;not null"`
}

func (Especialidad) TableName() string { return "especialidades" }

type Modalidad struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"size:60;uniqueIndex;not null"` // Presencial, Virtual
}

func (Modalidad) TableName() string { return "modalidades" }

type MetodoPago struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"size:60;uniqueIndex;not null"`
}

func (MetodoPago) TableName() string { return "metodos_pago" }

type ObraSocial struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"size:120;uniqueIndex;not null"`
}

func (ObraSocial) TableName() string { return "obras_sociales" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Consulta estado values.
const (
	ConsultaBorrador   = "borrador"
	ConsultaCompletada = "completada"
)

// Consulta is a single visit record.
type Consulta struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	NutricionistaID uuid.UUID  `gorm:"type:uuid;index;not null"`
	TurnoID         *uuid.UUID `gorm:"type:uuid"`

	Estado       string `gorm:"size:20;not null;default:borrador"`
	Motivo       string `gorm:"type:text"`
	Diagnostico  string `gorm:"type:text"`
	Indicaciones string `gorm:"type:text"`
	Notas        string `gorm:"type:text"`

	// Medidas holds {peso, altura, imc}; imc is always derived
	// server-side from peso and altura.
	Medidas datatypes.JSON `gorm:"type:jsonb"`

	Fecha time.Time `gorm:"not null"`

	Documentos []ConsultaDocumento `gorm:"foreignKey:ConsultaID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Consulta) TableName() string { return "consultas" }

type ConsultaDocumento struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConsultaID uuid.UUID `gorm:"type:uuid;index;not null"`

	Nombre      string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:120"`
	S3Key       string `gorm:"size:512;not null"`
	SizeBytes   int64

	CreatedAt time.Time
}

func (ConsultaDocumento) TableName() string { return "consulta_documentos" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Plan estado values. Transitions are forward-only:
// borrador -> validado -> enviado.
const (
	PlanBorrador = "borrador"
	PlanValidado = "validado"
	PlanEnviado  = "enviado"
)

// Plan origin values.
const (
	PlanOriginManual = "manual"
	PlanOriginIA     = "ia"
)

type Plan struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID      uuid.UUID `gorm:"type:uuid;index;not null"`
	NutricionistaID uuid.UUID `gorm:"type:uuid;index;not null"`

	Estado string `gorm:"size:20;not null;default:borrador"`
	Origin string `gorm:"size:20;not null;default:manual"`

	// Metadata and Days hold the mealplan document tree as JSONB; the
	// Go shapes live in internal/mealplan.
	Metadata datatypes.JSON `gorm:"type:jsonb"`
	Days     datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Plan) TableName() string { return "planes" }

package model

import (
	"time"

	"github.com/google/uuid"
)

// Notificacion tipo values.
const (
	NotifTurnoConfirmado   = "turno_confirmado"
	NotifTurnoCancelado    = "turno_cancelado"
	NotifTurnoReprogramado = "turno_reprogramado"
	NotifPlanEnviado       = "plan_enviado"
)

type Notificacion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Tipo    string `gorm:"size:40;not null"`
	Titulo  string `gorm:"size:200;not null"`
	Mensaje string `gorm:"type:text;not null"`

	Leida bool `gorm:"not null;default:false"`

	CreatedAt time.Time
}

func (Notificacion) TableName() string { return "notificaciones" }

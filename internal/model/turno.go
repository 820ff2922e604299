package model

import (
	"time"

	"github.com/google/uuid"
)

// Turno estado values. Display strings the clients render are
// "Confirmado" / "Completado" / "Cancelado"; storage is lowercase.
const (
	TurnoConfirmado = "confirmado"
	TurnoCompletado = "completado"
	TurnoCancelado  = "cancelado"
)

// Turno is one booked appointment slot. Double-booking is prevented by a
// partial unique index over active turnos:
//
//	CREATE UNIQUE INDEX uniq_turno_slot ON turnos (nutricionista_id, fecha, hora)
//	WHERE estado <> 'cancelado';
//
// created by `nutrito system migrate`. Lost races surface as
// gorm.ErrDuplicatedKey.
type Turno struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NutricionistaID uuid.UUID `gorm:"type:uuid;index;not null"`
	PacienteID      uuid.UUID `gorm:"type:uuid;index;not null"`

	Fecha time.Time `gorm:"type:date;not null"`
	Hora  string    `gorm:"size:5;not null"` // HH:MM

	Estado string `gorm:"size:20;not null;default:confirmado"`

	ModalidadID  uuid.UUID   `gorm:"type:uuid;not null"`
	Modalidad    Modalidad   `gorm:"foreignKey:ModalidadID"`
	MetodoPagoID *uuid.UUID  `gorm:"type:uuid"`
	MetodoPago   *MetodoPago `gorm:"foreignKey:MetodoPagoID"`
	ObraSocialID *uuid.UUID  `gorm:"type:uuid"`
	ObraSocial   *ObraSocial `gorm:"foreignKey:ObraSocialID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Turno) TableName() string { return "turnos" }

// FechaString renders the date the way the API exposes it.
func (t Turno) FechaString() string {
	return t.Fecha.Format("2006-01-02")
}

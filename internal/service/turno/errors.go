package turno

import "errors"

var (
	// ErrSlotNotAvailable carries the fixed message the clients map to
	// "slot unavailable"; it covers both a stale ladder and a lost race.
	ErrSlotNotAvailable = errors.New("el horario seleccionado ya no está disponible")

	ErrNotFound         = errors.New("turno no encontrado")
	ErrAlreadyCancelled = errors.New("el turno ya fue cancelado")
	ErrAlreadyCompleted = errors.New("el turno ya fue completado")
	ErrInvalidFecha     = errors.New("fecha inválida, se espera YYYY-MM-DD")
	ErrMissingModalidad = errors.New("modalidad es obligatoria")
)

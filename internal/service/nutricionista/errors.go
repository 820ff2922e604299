package nutricionista

import "errors"

var (
	ErrNotFound           = errors.New("nutricionista no encontrado")
	ErrInvalidRango       = errors.New("rango de disponibilidad inválido")
	ErrInvalidEmail       = errors.New("formato de email inválido")
	ErrMissingNombre      = errors.New("nombre y apellido son obligatorios")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

package paciente

import "errors"

var (
	ErrNotFound              = errors.New("paciente no encontrado")
	ErrNutricionistaNotFound = errors.New("nutricionista no encontrado")
	ErrInvalidFecha          = errors.New("fecha de nacimiento inválida, se espera YYYY-MM-DD")
)

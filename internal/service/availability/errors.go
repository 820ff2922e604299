package availability

import "errors"

var (
	ErrNutricionistaNotFound = errors.New("nutricionista no encontrado")
	ErrInvalidFecha          = errors.New("fecha inválida, se espera YYYY-MM-DD")
)

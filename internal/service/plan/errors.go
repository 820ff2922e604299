package plan

import "errors"

var (
	ErrNotFound          = errors.New("plan no encontrado")
	ErrNotEditable       = errors.New("solo un plan en borrador puede editarse")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrInvalidEstado     = errors.New("estado inválido")
	ErrInvalidOperacion  = errors.New("operación de edición inválida")
	ErrMissingPaciente   = errors.New("pacienteId es obligatorio")
)

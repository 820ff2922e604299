package consulta

import "errors"

var (
	ErrNotFound        = errors.New("consulta no encontrada")
	ErrMissingPaciente = errors.New("pacienteId y nutricionistaId son obligatorios")
	ErrMotivoRequired  = errors.New("el motivo es obligatorio para eliminar una consulta")
	ErrInvalidMedidas  = errors.New("medidas inválidas: peso y altura deben ser positivos")
	ErrEmptyDocumento  = errors.New("el documento está vacío")
)

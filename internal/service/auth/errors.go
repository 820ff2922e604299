package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidEmail       = errors.New("formato de email inválido")
	ErrInvalidPhone       = errors.New("número de teléfono inválido")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrPasswordTooShort   = errors.New("la contraseña debe tener al menos 8 caracteres")
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos")
	ErrSessionNotFound    = errors.New("sesión no encontrada o expirada")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)

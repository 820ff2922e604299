package notification

import "errors"

var ErrNotFound = errors.New("notificación no encontrada")

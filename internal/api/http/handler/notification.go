package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/service/notification"
	"github.com/MarciaOrozco/nutrito-backend/pkg/token"
)

type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// GET /api/notificaciones
func (h *NotificationHandler) List(c fiber.Ctx) error {
	claims, valid := token.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	rows, err := h.svc.List(c.Context(), claims.UserID)
	if err != nil {
		return internalError(c)
	}

	return ok(c, rows)
}

// PATCH /api/notificaciones/:id/leida
func (h *NotificationHandler) MarcarLeida(c fiber.Ctx) error {
	claims, valid := token.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}

	n, err := h.svc.MarcarLeida(c.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}

	return ok(c, n)
}

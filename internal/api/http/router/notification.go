package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/handler"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
)

func (r *Router) registerNotificationRoutes(api fiber.Router, h *handler.NotificationHandler, authRequired fiber.Handler, perm permFunc) {
	group := api.Group("/notificaciones", authRequired)

	group.Get("/", perm(authorize.ResourceNotificacion, authorize.ActionRead), h.List)
	group.Patch("/:id/leida", perm(authorize.ResourceNotificacion, authorize.ActionUpdate), h.MarcarLeida)
}

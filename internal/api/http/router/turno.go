package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/handler"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
)

func (r *Router) registerTurnoRoutes(api fiber.Router, h *handler.TurnoHandler, authRequired fiber.Handler, perm permFunc) {
	group := api.Group("/turnos")

	group.Get("/disponibles/:nutricionistaId", authRequired,
		perm(authorize.ResourceDisponibilidad, authorize.ActionRead), h.Disponibles)

	group.Post("/", authRequired,
		perm(authorize.ResourceTurno, authorize.ActionCreate), h.Create)
	group.Get("/:id", authRequired,
		perm(authorize.ResourceTurno, authorize.ActionRead), h.Get)
	group.Delete("/:id", authRequired,
		perm(authorize.ResourceTurno, authorize.ActionDelete), h.Cancel)
	group.Put("/:id/reprogramar", authRequired,
		perm(authorize.ResourceTurno, authorize.ActionUpdate), h.Reprogramar)
}

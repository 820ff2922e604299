package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/handler"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
)

type permFunc func(authorize.Resource, authorize.Action) fiber.Handler

func (r *Router) registerNutricionistaRoutes(api fiber.Router, h *handler.NutricionistaHandler, authRequired fiber.Handler, perm permFunc) {
	group := api.Group("/nutricionistas")

	// The directory is public; everything else needs a session.
	group.Get("/", h.Search)
	group.Get("/:id", h.GetProfile)

	group.Put("/:id/disponibilidad", authRequired,
		perm(authorize.ResourceDisponibilidad, authorize.ActionUpdate), h.ReplaceDisponibilidad)
	group.Get("/:id/turnos", authRequired,
		perm(authorize.ResourceTurno, authorize.ActionList), h.Agenda)
	group.Get("/:id/pacientes", authRequired,
		perm(authorize.ResourcePaciente, authorize.ActionList), h.Roster)
	group.Post("/:id/pacientes/manual", authRequired,
		perm(authorize.ResourcePaciente, authorize.ActionCreate), h.RegisterManualPatient)
}

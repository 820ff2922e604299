package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/handler"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
)

func (r *Router) registerPlanRoutes(api fiber.Router, h *handler.PlanHandler, authRequired fiber.Handler, perm permFunc) {
	group := api.Group("/planes")

	group.Post("/manual", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionCreate), h.CreateManual)
	group.Post("/ia", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionCreate), h.CreateIA)

	group.Get("/:id", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionRead), h.Get)
	group.Put("/:id", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionUpdate), h.Update)
	group.Delete("/:id", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionDelete), h.Delete)

	group.Post("/:id/validar", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionValidate), h.Validar)
	group.Post("/:id/exportar", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionExport), h.Exportar)
}

package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/handler"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
)

func (r *Router) registerConsultaRoutes(api fiber.Router, h *handler.ConsultaHandler, authRequired fiber.Handler, perm permFunc) {
	group := api.Group("/consultas")

	group.Post("/", authRequired,
		perm(authorize.ResourceConsulta, authorize.ActionCreate), h.Create)
	group.Get("/", authRequired,
		perm(authorize.ResourceConsulta, authorize.ActionRead), h.List)
	group.Get("/:id", authRequired,
		perm(authorize.ResourceConsulta, authorize.ActionRead), h.Get)
	group.Put("/:id", authRequired,
		perm(authorize.ResourceConsulta, authorize.ActionUpdate), h.Update)
	group.Delete("/:id", authRequired,
		perm(authorize.ResourceConsulta, authorize.ActionDelete), h.Delete)

	group.Post("/:id/documentos", authRequired,
		perm(authorize.ResourceConsultaDocumento, authorize.ActionCreate), h.UploadDocumento)
	group.Post("/:id/exportar", authRequired,
		perm(authorize.ResourceConsulta, authorize.ActionExport), h.Exportar)
	group.Post("/:id/proxima-cita", authRequired,
		perm(authorize.ResourceTurno, authorize.ActionCreate), h.ProximaCita)
}

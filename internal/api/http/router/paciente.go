package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/handler"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
)

func (r *Router) registerPacienteRoutes(api fiber.Router, h *handler.PacienteHandler, authRequired fiber.Handler, perm permFunc) {
	group := api.Group("/pacientes")

	group.Post("/vinculaciones", authRequired,
		perm(authorize.ResourceVinculacion, authorize.ActionCreate), h.CreateVinculacion)

	group.Get("/:id/perfil", authRequired,
		perm(authorize.ResourcePaciente, authorize.ActionRead), h.GetPerfil)
	group.Put("/:id/perfil", authRequired,
		perm(authorize.ResourcePaciente, authorize.ActionUpdate), h.UpdatePerfil)

	group.Get("/:id/turnos", authRequired,
		perm(authorize.ResourceTurno, authorize.ActionRead), h.ListTurnos)
	group.Get("/:id/planes", authRequired,
		perm(authorize.ResourcePlan, authorize.ActionRead), h.ListPlanes)
	group.Get("/:id/consultas", authRequired,
		perm(authorize.ResourceConsulta, authorize.ActionRead), h.ListConsultas)
	group.Get("/:id/documentos", authRequired,
		perm(authorize.ResourceConsultaDocumento, authorize.ActionRead), h.ListDocumentos)
	group.Get("/:id/evolucion", authRequired,
		perm(authorize.ResourceEvolucion, authorize.ActionRead), h.Evolucion)
}

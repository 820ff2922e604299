package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/service/paciente"
)

type PacienteHandler struct {
	svc paciente.Service
}

func NewPacienteHandler(svc paciente.Service) *PacienteHandler {
	return &PacienteHandler{svc: svc}
}

// canAccess decides whether the caller may touch this paciente's
// records: the paciente themself, a nutricionista with an active
// vinculación, or an admin.
func (h *PacienteHandler) canAccess(c fiber.Ctx, pacienteID uuid.UUID) (bool, error) {
	if isAdmin(c) {
		return true, nil
	}
	if id, ok := callerPacienteID(c); ok {
		return id == pacienteID, nil
	}
	if id, ok := callerNutricionistaID(c); ok {
		return h.svc.IsLinked(c.Context(), pacienteID, id)
	}
	return false, nil
}

// pacienteID parses and authorizes the :id param. When it reports not
// ok the response has already been written.
func (h *PacienteHandler) pacienteID(c fiber.Ctx) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false, badRequest(c, "id inválido")
	}
	allowed, err := h.canAccess(c, id)
	if err != nil {
		return uuid.Nil, false, internalError(c)
	}
	if !allowed {
		return uuid.Nil, false, forbidden(c)
	}
	return id, true, nil
}

// GET /api/pacientes/:id/perfil
func (h *PacienteHandler) GetPerfil(c fiber.Ctx) error {
	id, allowed, err := h.pacienteID(c)
	if !allowed {
		return err
	}

	perfil, err := h.svc.GetPerfil(c.Context(), id)
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, perfil)
}

// PUT /api/pacientes/:id/perfil
func (h *PacienteHandler) UpdatePerfil(c fiber.Ctx) error {
	id, allowed, err := h.pacienteID(c)
	if !allowed {
		return err
	}

	var body struct {
		Nombre          string     `json:"nombre"`
		Apellido        string     `json:"apellido"`
		Telefono        string     `json:"telefono"`
		FechaNacimiento string     `json:"fecha_nacimiento"`
		Objetivo        *string    `json:"objetivo"`
		Condiciones     *string    `json:"condiciones"`
		ObraSocialID    *uuid.UUID `json:"obra_social_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	perfil, err := h.svc.UpdatePerfil(c.Context(), id, paciente.PerfilUpdate{
		Nombre:          body.Nombre,
		Apellido:        body.Apellido,
		Telefono:        body.Telefono,
		FechaNacimiento: body.FechaNacimiento,
		Objetivo:        body.Objetivo,
		Condiciones:     body.Condiciones,
		ObraSocialID:    body.ObraSocialID,
	})
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, perfil)
}

// GET /api/pacientes/:id/turnos
func (h *PacienteHandler) ListTurnos(c fiber.Ctx) error {
	id, allowed, err := h.pacienteID(c)
	if !allowed {
		return err
	}

	turnos, err := h.svc.ListTurnos(c.Context(), id)
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, turnos)
}

// GET /api/pacientes/:id/planes
func (h *PacienteHandler) ListPlanes(c fiber.Ctx) error {
	id, allowed, err := h.pacienteID(c)
	if !allowed {
		return err
	}

	planes, err := h.svc.ListPlanes(c.Context(), id)
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, planes)
}

// GET /api/pacientes/:id/consultas
func (h *PacienteHandler) ListConsultas(c fiber.Ctx) error {
	id, allowed, err := h.pacienteID(c)
	if !allowed {
		return err
	}

	consultas, err := h.svc.ListConsultas(c.Context(), id)
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, consultas)
}

// GET /api/pacientes/:id/documentos
func (h *PacienteHandler) ListDocumentos(c fiber.Ctx) error {
	id, allowed, err := h.pacienteID(c)
	if !allowed {
		return err
	}

	docs, err := h.svc.ListDocumentos(c.Context(), id)
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, docs)
}

// GET /api/pacientes/:id/evolucion
func (h *PacienteHandler) Evolucion(c fiber.Ctx) error {
	id, allowed, err := h.pacienteID(c)
	if !allowed {
		return err
	}

	serie, err := h.svc.Evolucion(c.Context(), id)
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, serie)
}

// POST /api/pacientes/vinculaciones
func (h *PacienteHandler) CreateVinculacion(c fiber.Ctx) error {
	var body struct {
		PacienteID      uuid.UUID `json:"pacienteId"`
		NutricionistaID uuid.UUID `json:"nutricionistaId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}
	if body.PacienteID == uuid.Nil || body.NutricionistaID == uuid.Nil {
		return badRequest(c, "pacienteId y nutricionistaId son obligatorios")
	}
	// The caller must be one of the two parties being linked.
	if !canAccessRecord(c, body.PacienteID, body.NutricionistaID) {
		return forbidden(c)
	}

	v, err := h.svc.CreateVinculacion(c.Context(), paciente.VinculacionRequest{
		PacienteID:      body.PacienteID,
		NutricionistaID: body.NutricionistaID,
	})
	if err != nil {
		return mapPacienteError(c, err)
	}

	return ok(c, v)
}

func mapPacienteError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, paciente.ErrNotFound),
		errors.Is(err, paciente.ErrNutricionistaNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, paciente.ErrInvalidFecha):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

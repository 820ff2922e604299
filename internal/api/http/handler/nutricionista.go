package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/service/nutricionista"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/paciente"
)

type NutricionistaHandler struct {
	svc       nutricionista.Service
	pacientes paciente.Service
}

func NewNutricionistaHandler(svc nutricionista.Service, pacientes paciente.Service) *NutricionistaHandler {
	return &NutricionistaHandler{svc: svc, pacientes: pacientes}
}

// GET /api/nutricionistas
func (h *NutricionistaHandler) Search(c fiber.Ctx) error {
	filters := nutricionista.SearchFilters{
		Nombre:       c.Query("nombre"),
		Especialidad: c.Query("especialidad"),
	}
	if csv := c.Query("especialidades"); csv != "" {
		filters.Especialidades = strings.Split(csv, ",")
	}
	if csv := c.Query("modalidades"); csv != "" {
		filters.Modalidades = strings.Split(csv, ",")
	}

	results, err := h.svc.Search(c.Context(), filters)
	if err != nil {
		return internalError(c)
	}

	return ok(c, results)
}

// GET /api/nutricionistas/:id
func (h *NutricionistaHandler) GetProfile(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}

	profile, err := h.svc.GetProfile(c.Context(), id)
	if err != nil {
		return mapNutricionistaError(c, err)
	}

	return ok(c, profile)
}

// PUT /api/nutricionistas/:id/disponibilidad
func (h *NutricionistaHandler) ReplaceDisponibilidad(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}
	if !requireOwnNutricionista(c, id) {
		return forbidden(c)
	}

	var body struct {
		Rangos []nutricionista.RangoInput `json:"rangos"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	if err := h.svc.ReplaceDisponibilidad(c.Context(), id, body.Rangos); err != nil {
		return mapNutricionistaError(c, err)
	}

	return ok(c, fiber.Map{"rangos": len(body.Rangos)})
}

// GET /api/nutricionistas/:id/pacientes
func (h *NutricionistaHandler) Roster(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}
	if !requireOwnNutricionista(c, id) {
		return forbidden(c)
	}

	roster, err := h.pacientes.Roster(c.Context(), id)
	if err != nil {
		return internalError(c)
	}

	return ok(c, roster)
}

// GET /api/nutricionistas/:id/turnos
func (h *NutricionistaHandler) Agenda(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}
	if !requireOwnNutricionista(c, id) {
		return forbidden(c)
	}

	agenda, err := h.svc.Agenda(c.Context(), id)
	if err != nil {
		return mapNutricionistaError(c, err)
	}

	return ok(c, agenda)
}

// POST /api/nutricionistas/:id/pacientes/manual
func (h *NutricionistaHandler) RegisterManualPatient(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}
	if !requireOwnNutricionista(c, id) {
		return forbidden(c)
	}

	var body struct {
		Nombre   string `json:"nombre"`
		Apellido string `json:"apellido"`
		Email    string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	result, err := h.svc.RegisterManualPatient(c.Context(), id, nutricionista.ManualPatientRequest{
		Nombre:   body.Nombre,
		Apellido: body.Apellido,
		Email:    body.Email,
	})
	if err != nil {
		return mapNutricionistaError(c, err)
	}

	return created(c, result)
}

func mapNutricionistaError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, nutricionista.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, nutricionista.ErrInvalidRango),
		errors.Is(err, nutricionista.ErrInvalidEmail),
		errors.Is(err, nutricionista.ErrMissingNombre):
		return badRequest(c, err.Error())
	case errors.Is(err, nutricionista.ErrEmailAlreadyExists):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

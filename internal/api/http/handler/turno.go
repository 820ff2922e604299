package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/service/availability"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/turno"
)

type TurnoHandler struct {
	svc   turno.Service
	avail availability.Service
}

func NewTurnoHandler(svc turno.Service, avail availability.Service) *TurnoHandler {
	return &TurnoHandler{svc: svc, avail: avail}
}

// GET /api/turnos/disponibles/:nutricionistaId?fecha=YYYY-MM-DD
func (h *TurnoHandler) Disponibles(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("nutricionistaId"))
	if err != nil {
		return badRequest(c, "nutricionistaId inválido")
	}
	fecha := c.Query("fecha")
	if fecha == "" {
		return badRequest(c, "fecha es obligatoria")
	}

	slots, err := h.avail.SlotsForDate(c.Context(), id, fecha)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrNutricionistaNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, availability.ErrInvalidFecha):
			return badRequest(c, err.Error())
		default:
			return internalError(c)
		}
	}

	return ok(c, fiber.Map{"slots": slots})
}

// POST /api/turnos
func (h *TurnoHandler) Create(c fiber.Ctx) error {
	var body struct {
		NutricionistaID uuid.UUID  `json:"nutricionistaId"`
		PacienteID      uuid.UUID  `json:"pacienteId"`
		Fecha           string     `json:"fecha"`
		Hora            string     `json:"hora"`
		ModalidadID     uuid.UUID  `json:"modalidadId"`
		MetodoPagoID    *uuid.UUID `json:"metodoPagoId"`
		ObraSocialID    *uuid.UUID `json:"obraSocialId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	// A paciente books for themself; a nutricionista books into their
	// own agenda on behalf of a patient.
	if !canAccessRecord(c, body.PacienteID, body.NutricionistaID) {
		return forbidden(c)
	}

	result, err := h.svc.Create(c.Context(), turno.CreateRequest{
		NutricionistaID: body.NutricionistaID,
		PacienteID:      body.PacienteID,
		Fecha:           body.Fecha,
		Hora:            body.Hora,
		ModalidadID:     body.ModalidadID,
		MetodoPagoID:    body.MetodoPagoID,
		ObraSocialID:    body.ObraSocialID,
	})
	if err != nil {
		return mapTurnoError(c, err)
	}

	return created(c, result)
}

// GET /api/turnos/:id
func (h *TurnoHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}

	t, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapTurnoError(c, err)
	}
	if !canAccessRecord(c, t.PacienteID, t.NutricionistaID) {
		return forbidden(c)
	}

	return ok(c, t)
}

// DELETE /api/turnos/:id
func (h *TurnoHandler) Cancel(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}

	t, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapTurnoError(c, err)
	}
	if !canAccessRecord(c, t.PacienteID, t.NutricionistaID) {
		return forbidden(c)
	}

	if err := h.svc.Cancel(c.Context(), id); err != nil {
		return mapTurnoError(c, err)
	}

	return noContent(c)
}

// PUT /api/turnos/:id/reprogramar
func (h *TurnoHandler) Reprogramar(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "id inválido")
	}

	var body struct {
		NuevaFecha string    `json:"nuevaFecha"`
		NuevaHora  string    `json:"nuevaHora"`
		PacienteID uuid.UUID `json:"pacienteId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	t, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapTurnoError(c, err)
	}
	if !canAccessRecord(c, t.PacienteID, t.NutricionistaID) {
		return forbidden(c)
	}

	result, err := h.svc.Reprogramar(c.Context(), id, turno.ReprogramarRequest{
		NuevaFecha: body.NuevaFecha,
		NuevaHora:  body.NuevaHora,
		PacienteID: body.PacienteID,
	})
	if err != nil {
		return mapTurnoError(c, err)
	}

	return ok(c, result)
}

func mapTurnoError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, turno.ErrSlotNotAvailable),
		errors.Is(err, turno.ErrAlreadyCancelled),
		errors.Is(err, turno.ErrAlreadyCompleted):
		return conflict(c, err.Error())
	case errors.Is(err, turno.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, turno.ErrInvalidFecha),
		errors.Is(err, turno.ErrMissingModalidad):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

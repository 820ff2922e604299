package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/service/consulta"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/turno"
)

type ConsultaHandler struct {
	svc consulta.Service
}

func NewConsultaHandler(svc consulta.Service) *ConsultaHandler {
	return &ConsultaHandler{svc: svc}
}

// POST /api/consultas
func (h *ConsultaHandler) Create(c fiber.Ctx) error {
	var body struct {
		PacienteID      uuid.UUID  `json:"pacienteId"`
		NutricionistaID uuid.UUID  `json:"nutricionistaId"`
		TurnoID         *uuid.UUID `json:"turnoId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}
	if !canAccessRecord(c, body.PacienteID, body.NutricionistaID) {
		return forbidden(c)
	}

	row, err := h.svc.Create(c.Context(), consulta.CreateRequest{
		PacienteID:      body.PacienteID,
		NutricionistaID: body.NutricionistaID,
		TurnoID:         body.TurnoID,
	})
	if err != nil {
		return mapConsultaError(c, err)
	}

	return created(c, row)
}

// consultaForCaller loads the consulta and rejects callers who are not
// a party to it. When it reports not ok the response has been written.
func (h *ConsultaHandler) consultaForCaller(c fiber.Ctx) (*consulta.Detail, bool, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, false, badRequest(c, "id inválido")
	}

	detail, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return nil, false, mapConsultaError(c, err)
	}
	if !canAccessRecord(c, detail.Consulta.PacienteID, detail.Consulta.NutricionistaID) {
		return nil, false, forbidden(c)
	}
	return detail, true, nil
}

// GET /api/consultas
func (h *ConsultaHandler) List(c fiber.Ctx) error {
	// The listing is always scoped to the caller's own records; admins
	// may narrow by query params instead.
	var filter consulta.ListFilter
	switch {
	case isAdmin(c):
		if q := c.Query("pacienteId"); q != "" {
			id, err := uuid.Parse(q)
			if err != nil {
				return badRequest(c, "pacienteId inválido")
			}
			filter.PacienteID = &id
		}
		if q := c.Query("nutricionistaId"); q != "" {
			id, err := uuid.Parse(q)
			if err != nil {
				return badRequest(c, "nutricionistaId inválido")
			}
			filter.NutricionistaID = &id
		}
	default:
		if id, isPaciente := callerPacienteID(c); isPaciente {
			filter.PacienteID = &id
		} else if id, isNutri := callerNutricionistaID(c); isNutri {
			filter.NutricionistaID = &id
		} else {
			return forbidden(c)
		}
	}

	rows, err := h.svc.List(c.Context(), filter)
	if err != nil {
		return mapConsultaError(c, err)
	}

	return ok(c, rows)
}

// GET /api/consultas/:id
func (h *ConsultaHandler) Get(c fiber.Ctx) error {
	detail, allowed, err := h.consultaForCaller(c)
	if !allowed {
		return err
	}

	return ok(c, detail)
}

// PUT /api/consultas/:id
func (h *ConsultaHandler) Update(c fiber.Ctx) error {
	detail, allowed, err := h.consultaForCaller(c)
	if !allowed {
		return err
	}
	id := detail.Consulta.ID

	var body struct {
		Motivo       *string `json:"motivo"`
		Diagnostico  *string `json:"diagnostico"`
		Indicaciones *string `json:"indicaciones"`
		Notas        *string `json:"notas"`
		Estado       *string `json:"estado"`
		Medidas      *struct {
			Peso   float64 `json:"peso"`
			Altura float64 `json:"altura"`
		} `json:"medidas"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	upd := consulta.UpdateRequest{
		Motivo:       body.Motivo,
		Diagnostico:  body.Diagnostico,
		Indicaciones: body.Indicaciones,
		Notas:        body.Notas,
		Estado:       body.Estado,
	}
	if body.Medidas != nil {
		// IMC is recomputed server-side; a client-sent value is ignored.
		upd.Medidas = &consulta.Medidas{
			Peso:   body.Medidas.Peso,
			Altura: body.Medidas.Altura,
		}
	}

	result, err := h.svc.Update(c.Context(), id, upd)
	if err != nil {
		return mapConsultaError(c, err)
	}

	return ok(c, result)
}

// DELETE /api/consultas/:id
func (h *ConsultaHandler) Delete(c fiber.Ctx) error {
	detail, allowed, err := h.consultaForCaller(c)
	if !allowed {
		return err
	}
	id := detail.Consulta.ID

	var body struct {
		Motivo string `json:"motivo"`
	}
	// motivo may arrive in the body or as a query param
	_ = c.Bind().JSON(&body)
	if body.Motivo == "" {
		body.Motivo = c.Query("motivo")
	}

	if err := h.svc.Delete(c.Context(), id, body.Motivo); err != nil {
		return mapConsultaError(c, err)
	}

	return noContent(c)
}

// POST /api/consultas/:id/documentos
func (h *ConsultaHandler) UploadDocumento(c fiber.Ctx) error {
	detail, allowed, err := h.consultaForCaller(c)
	if !allowed {
		return err
	}
	id := detail.Consulta.ID

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "el campo file es obligatorio")
	}

	f, err := fh.Open()
	if err != nil {
		return internalError(c)
	}
	defer f.Close()

	doc, err := h.svc.UploadDocumento(c.Context(), id, consulta.UploadRequest{
		Nombre:      fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
		SizeBytes:   fh.Size,
	})
	if err != nil {
		return mapConsultaError(c, err)
	}

	return created(c, doc)
}

// POST /api/consultas/:id/exportar
func (h *ConsultaHandler) Exportar(c fiber.Ctx) error {
	detail, allowed, err := h.consultaForCaller(c)
	if !allowed {
		return err
	}

	var body struct {
		Secciones []string `json:"secciones"`
	}
	_ = c.Bind().JSON(&body)

	export, err := h.svc.Exportar(c.Context(), detail.Consulta.ID, body.Secciones)
	if err != nil {
		return mapConsultaError(c, err)
	}

	return download(c, export.Filename, export.ContentType, export.Content)
}

// POST /api/consultas/:id/proxima-cita
func (h *ConsultaHandler) ProximaCita(c fiber.Ctx) error {
	detail, allowed, err := h.consultaForCaller(c)
	if !allowed {
		return err
	}
	id := detail.Consulta.ID

	var body struct {
		Fecha       string    `json:"fecha"`
		Hora        string    `json:"hora"`
		ModalidadID uuid.UUID `json:"modalidadId"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	result, err := h.svc.ProximaCita(c.Context(), id, consulta.ProximaCitaRequest{
		Fecha:       body.Fecha,
		Hora:        body.Hora,
		ModalidadID: body.ModalidadID,
	})
	if err != nil {
		return mapConsultaError(c, err)
	}

	return created(c, result)
}

func mapConsultaError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, consulta.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, consulta.ErrMissingPaciente),
		errors.Is(err, consulta.ErrMotivoRequired),
		errors.Is(err, consulta.ErrInvalidMedidas),
		errors.Is(err, consulta.ErrEmptyDocumento):
		return badRequest(c, err.Error())
	case errors.Is(err, turno.ErrSlotNotAvailable),
		errors.Is(err, turno.ErrAlreadyCancelled),
		errors.Is(err, turno.ErrAlreadyCompleted):
		return conflict(c, err.Error())
	case errors.Is(err, turno.ErrInvalidFecha),
		errors.Is(err, turno.ErrMissingModalidad):
		return badRequest(c, err.Error())
	case errors.Is(err, turno.ErrNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c)
	}
}

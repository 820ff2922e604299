package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/mealplan"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/plan"
)

type PlanHandler struct {
	svc plan.Service
}

func NewPlanHandler(svc plan.Service) *PlanHandler {
	return &PlanHandler{svc: svc}
}

type planCreateBody struct {
	PacienteID      uuid.UUID         `json:"pacienteId"`
	NutricionistaID uuid.UUID         `json:"nutricionistaId"`
	Metadata        mealplan.Metadata `json:"metadata"`
	Days            []mealplan.Day    `json:"days"`
}

// POST /api/planes/manual
func (h *PlanHandler) CreateManual(c fiber.Ctx) error {
	var body planCreateBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}
	if !canAccessRecord(c, body.PacienteID, body.NutricionistaID) {
		return forbidden(c)
	}

	doc, err := h.svc.CreateManual(c.Context(), plan.CreateRequest{
		PacienteID:      body.PacienteID,
		NutricionistaID: body.NutricionistaID,
		Metadata:        body.Metadata,
		Days:            body.Days,
	})
	if err != nil {
		return mapPlanError(c, err)
	}

	return created(c, doc)
}

// POST /api/planes/ia
func (h *PlanHandler) CreateIA(c fiber.Ctx) error {
	var body planCreateBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}
	if !canAccessRecord(c, body.PacienteID, body.NutricionistaID) {
		return forbidden(c)
	}

	doc, err := h.svc.CreateIA(c.Context(), plan.CreateRequest{
		PacienteID:      body.PacienteID,
		NutricionistaID: body.NutricionistaID,
		Metadata:        body.Metadata,
	})
	if err != nil {
		return mapPlanError(c, err)
	}

	return created(c, doc)
}

// planForCaller loads the plan and rejects callers who are not a party
// to it. When it reports not ok the response has been written.
func (h *PlanHandler) planForCaller(c fiber.Ctx) (*plan.Doc, bool, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, false, badRequest(c, "id inválido")
	}

	doc, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return nil, false, mapPlanError(c, err)
	}
	if !canAccessRecord(c, doc.PacienteID, doc.NutricionistaID) {
		return nil, false, forbidden(c)
	}
	return doc, true, nil
}

// GET /api/planes/:id
func (h *PlanHandler) Get(c fiber.Ctx) error {
	doc, allowed, err := h.planForCaller(c)
	if !allowed {
		return err
	}

	return ok(c, doc)
}

// planOpBody is one day-level edit inside a PUT /api/planes/:id.
type planOpBody struct {
	Tipo    string           `json:"tipo"`
	Dia     int              `json:"dia"`
	Indice  int              `json:"indice"`
	Comida  *mealplan.Meal   `json:"comida"`
	Orden   []int            `json:"orden"`
	Totales *mealplan.Totals `json:"totales"`
}

// PUT /api/planes/:id
func (h *PlanHandler) Update(c fiber.Ctx) error {
	doc, allowed, err := h.planForCaller(c)
	if !allowed {
		return err
	}

	var body struct {
		Metadata    *mealplan.Metadata `json:"metadata"`
		Days        *[]mealplan.Day    `json:"days"`
		Estado      *string            `json:"estado"`
		Operaciones []planOpBody       `json:"operaciones"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	ops := make([]plan.DayOp, 0, len(body.Operaciones))
	for _, op := range body.Operaciones {
		ops = append(ops, plan.DayOp{
			Tipo:    op.Tipo,
			Dia:     op.Dia,
			Indice:  op.Indice,
			Comida:  op.Comida,
			Orden:   op.Orden,
			Totales: op.Totales,
		})
	}

	updated, err := h.svc.Update(c.Context(), doc.ID, plan.UpdateRequest{
		Metadata: body.Metadata,
		Days:     body.Days,
		Estado:   body.Estado,
		Ops:      ops,
	})
	if err != nil {
		return mapPlanError(c, err)
	}

	return ok(c, updated)
}

// DELETE /api/planes/:id
func (h *PlanHandler) Delete(c fiber.Ctx) error {
	doc, allowed, err := h.planForCaller(c)
	if !allowed {
		return err
	}

	if err := h.svc.Delete(c.Context(), doc.ID); err != nil {
		return mapPlanError(c, err)
	}

	return noContent(c)
}

// POST /api/planes/:id/validar
func (h *PlanHandler) Validar(c fiber.Ctx) error {
	doc, allowed, err := h.planForCaller(c)
	if !allowed {
		return err
	}

	var body struct {
		Estado string `json:"estado"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "cuerpo de la petición inválido")
	}

	updated, err := h.svc.Validar(c.Context(), doc.ID, body.Estado)
	if err != nil {
		return mapPlanError(c, err)
	}

	return ok(c, updated)
}

// POST /api/planes/:id/exportar
func (h *PlanHandler) Exportar(c fiber.Ctx) error {
	doc, allowed, err := h.planForCaller(c)
	if !allowed {
		return err
	}

	export, err := h.svc.Exportar(c.Context(), doc.ID)
	if err != nil {
		return mapPlanError(c, err)
	}

	return download(c, export.Filename, export.ContentType, export.Content)
}

func mapPlanError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, plan.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, plan.ErrNotEditable),
		errors.Is(err, plan.ErrInvalidTransition):
		return conflict(c, err.Error())
	case errors.Is(err, plan.ErrInvalidEstado),
		errors.Is(err, plan.ErrInvalidOperacion),
		errors.Is(err, plan.ErrMissingPaciente):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

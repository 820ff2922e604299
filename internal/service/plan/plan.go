// Package plan manages plan alimentario documents: creation (manual or
// template-generated), edits while in borrador, forward-only estado
// transitions and the export rendering.
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/events"
	"github.com/MarciaOrozco/nutrito-backend/internal/mealplan"
	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

// estadoRank orders the forward-only lifecycle.
var estadoRank = map[string]int{
	model.PlanBorrador: 0,
	model.PlanValidado: 1,
	model.PlanEnviado:  2,
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	PacienteID      uuid.UUID
	NutricionistaID uuid.UUID
	Metadata        mealplan.Metadata
	Days            []mealplan.Day
}

// Doc is a plan with its JSONB columns decoded.
type Doc struct {
	ID              uuid.UUID         `json:"id"`
	PacienteID      uuid.UUID         `json:"paciente_id"`
	NutricionistaID uuid.UUID         `json:"nutricionista_id"`
	Estado          string            `json:"estado"`
	Origin          string            `json:"origin"`
	Metadata        mealplan.Metadata `json:"metadata"`
	Days            []mealplan.Day    `json:"days"`
}

type UpdateRequest struct {
	Metadata *mealplan.Metadata
	Days     *[]mealplan.Day
	Estado   *string

	// Ops are applied after Days (when both are present), so a client
	// can replace the tree and patch it in one request.
	Ops []DayOp
}

type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	CreateManual(ctx context.Context, req CreateRequest) (*Doc, error)
	CreateIA(ctx context.Context, req CreateRequest) (*Doc, error)
	Get(ctx context.Context, id uuid.UUID) (*Doc, error)
	Update(ctx context.Context, id uuid.UUID, upd UpdateRequest) (*Doc, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Validar(ctx context.Context, id uuid.UUID, estado string) (*Doc, error)
	Exportar(ctx context.Context, id uuid.UUID) (*Export, error)
}

type planService struct {
	db        *gorm.DB
	publisher *events.Publisher
}

func New(db *gorm.DB, publisher *events.Publisher) Service {
	return &planService{db: db, publisher: publisher}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func (s *planService) CreateManual(ctx context.Context, req CreateRequest) (*Doc, error) {
	return s.create(ctx, req, req.Days, model.PlanOriginManual)
}

// CreateIA builds the deterministic 7-day draft from the metadata; the
// nutricionista edits it before validating.
func (s *planService) CreateIA(ctx context.Context, req CreateRequest) (*Doc, error) {
	return s.create(ctx, req, mealplan.BuildTemplate(req.Metadata), model.PlanOriginIA)
}

func (s *planService) create(ctx context.Context, req CreateRequest, days []mealplan.Day, origin string) (*Doc, error) {
	if req.PacienteID == uuid.Nil {
		return nil, ErrMissingPaciente
	}

	metaJSON, err := json.Marshal(req.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	if days == nil {
		days = []mealplan.Day{}
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("marshal days: %w", err)
	}

	p := &model.Plan{
		PacienteID:      req.PacienteID,
		NutricionistaID: req.NutricionistaID,
		Estado:          model.PlanBorrador,
		Origin:          origin,
		Metadata:        datatypes.JSON(metaJSON),
		Days:            datatypes.JSON(daysJSON),
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	return toDoc(p)
}

// ---------------------------------------------------------------------------
// Get / Update / Delete
// ---------------------------------------------------------------------------

func (s *planService) Get(ctx context.Context, id uuid.UUID) (*Doc, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDoc(p)
}

func (s *planService) Update(ctx context.Context, id uuid.UUID, upd UpdateRequest) (*Doc, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Estado != model.PlanBorrador {
		return nil, ErrNotEditable
	}

	fields := map[string]any{}
	if upd.Metadata != nil {
		metaJSON, err := json.Marshal(upd.Metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		fields["metadata"] = datatypes.JSON(metaJSON)
	}

	if upd.Days != nil || len(upd.Ops) > 0 {
		var days []mealplan.Day
		switch {
		case upd.Days != nil:
			days = *upd.Days
		default:
			if len(p.Days) > 0 {
				if err := json.Unmarshal(p.Days, &days); err != nil {
					return nil, fmt.Errorf("decode days: %w", err)
				}
			}
		}

		days, err = applyOps(days, upd.Ops)
		if err != nil {
			return nil, err
		}

		daysJSON, err := json.Marshal(days)
		if err != nil {
			return nil, fmt.Errorf("marshal days: %w", err)
		}
		fields["days"] = datatypes.JSON(daysJSON)
	}
	if upd.Estado != nil {
		if _, ok := estadoRank[*upd.Estado]; !ok {
			return nil, ErrInvalidEstado
		}
		if estadoRank[*upd.Estado] < estadoRank[p.Estado] {
			return nil, ErrInvalidTransition
		}
		fields["estado"] = *upd.Estado
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(p).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update plan: %w", err)
		}
	}

	return s.Get(ctx, id)
}

func (s *planService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Plan{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Validar
// ---------------------------------------------------------------------------

// Validar moves the plan forward to validado or enviado. Reaching
// enviado publishes the event that notifies and emails the patient.
func (s *planService) Validar(ctx context.Context, id uuid.UUID, estado string) (*Doc, error) {
	if estado != model.PlanValidado && estado != model.PlanEnviado {
		return nil, ErrInvalidEstado
	}

	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if estadoRank[estado] <= estadoRank[p.Estado] {
		return nil, ErrInvalidTransition
	}

	if err := s.db.WithContext(ctx).Model(p).Update("estado", estado).Error; err != nil {
		return nil, fmt.Errorf("update estado: %w", err)
	}
	p.Estado = estado

	if estado == model.PlanEnviado {
		s.publisher.PlanEnviado(p.ID)
	}

	return toDoc(p)
}

// ---------------------------------------------------------------------------
// Exportar
// ---------------------------------------------------------------------------

func (s *planService) Exportar(ctx context.Context, id uuid.UUID) (*Export, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename:    fmt.Sprintf("plan-%s.pdf", doc.ID),
		ContentType: "application/pdf",
		Content:     []byte(RenderDocument(doc)),
	}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *planService) find(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	var p model.Plan
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return &p, nil
}

func toDoc(p *model.Plan) (*Doc, error) {
	doc := &Doc{
		ID:              p.ID,
		PacienteID:      p.PacienteID,
		NutricionistaID: p.NutricionistaID,
		Estado:          p.Estado,
		Origin:          p.Origin,
		Days:            []mealplan.Day{},
	}
	if len(p.Metadata) > 0 {
		if err := json.Unmarshal(p.Metadata, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	if len(p.Days) > 0 {
		if err := json.Unmarshal(p.Days, &doc.Days); err != nil {
			return nil, fmt.Errorf("decode days: %w", err)
		}
	}
	return doc, nil
}

// Package turno implements appointment booking. The critical path is
// validate, insert, respond; everything else (vinculación, in-app
// notifications, emails) rides on NATS events consumed by workers.
package turno

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/events"
	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/availability"
	"github.com/MarciaOrozco/nutrito-backend/pkg/calendar"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	NutricionistaID uuid.UUID
	PacienteID      uuid.UUID
	Fecha           string // YYYY-MM-DD
	Hora            string // HH:MM
	ModalidadID     uuid.UUID
	MetodoPagoID    *uuid.UUID
	ObraSocialID    *uuid.UUID
}

type ReprogramarRequest struct {
	NuevaFecha string
	NuevaHora  string
	PacienteID uuid.UUID
}

// Notificacion is the calendar convenience attached to booking
// responses; the clients regex-scan the URL out of it.
type Notificacion struct {
	Tipo        string `json:"tipo"`
	CalendarURL string `json:"calendar_url"`
	ICS         string `json:"ics"`
}

type Result struct {
	Turno          *model.Turno   `json:"turno"`
	Notificaciones []Notificacion `json:"notificaciones"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Result, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Reprogramar(ctx context.Context, id uuid.UUID, req ReprogramarRequest) (*Result, error)
}

type turnoService struct {
	db        *gorm.DB
	avail     availability.Service
	publisher *events.Publisher
}

func New(db *gorm.DB, avail availability.Service, publisher *events.Publisher) Service {
	return &turnoService{db: db, avail: avail, publisher: publisher}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func (s *turnoService) Create(ctx context.Context, req CreateRequest) (*Result, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}
	if req.ModalidadID == uuid.Nil {
		return nil, ErrMissingModalidad
	}

	// The hora must be in the open ladder for that date. The ladder
	// already excludes booked slots, so a taken hora fails here too.
	if err := s.checkSlotOpen(ctx, req.NutricionistaID, req.Fecha, req.Hora); err != nil {
		return nil, err
	}

	t := &model.Turno{
		NutricionistaID: req.NutricionistaID,
		PacienteID:      req.PacienteID,
		Fecha:           fecha,
		Hora:            req.Hora,
		Estado:          model.TurnoConfirmado,
		ModalidadID:     req.ModalidadID,
		MetodoPagoID:    req.MetodoPagoID,
		ObraSocialID:    req.ObraSocialID,
	}

	// The partial unique index on active turnos decides lost races.
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("create turno: %w", err)
	}

	s.avail.InvalidateDay(ctx, req.NutricionistaID, req.Fecha)
	s.publisher.TurnoCreado(t.ID)

	return s.result(ctx, t)
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func (s *turnoService) Get(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := s.db.WithContext(ctx).
		Preload("Modalidad").
		Preload("MetodoPago").
		Preload("ObraSocial").
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find turno: %w", err)
	}
	return &t, nil
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

func (s *turnoService) Cancel(ctx context.Context, id uuid.UUID) error {
	var t model.Turno
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find turno: %w", err)
	}

	// Conditional update: only a confirmed turno can be cancelled, and
	// the estado guard decides concurrent cancellations at the database.
	res := s.db.WithContext(ctx).Model(&model.Turno{}).
		Where("id = ? AND estado = ?", id, model.TurnoConfirmado).
		Update("estado", model.TurnoCancelado)
	if res.Error != nil {
		return fmt.Errorf("cancel turno: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return s.estadoConflict(ctx, id)
	}

	// Cancelling reopens the slot.
	s.avail.InvalidateDay(ctx, t.NutricionistaID, t.FechaString())
	s.publisher.TurnoCancelado(t.ID)

	return nil
}

// estadoConflict re-reads the turno after a guarded update matched no
// rows and maps the estado it found to the right conflict error.
func (s *turnoService) estadoConflict(ctx context.Context, id uuid.UUID) error {
	var t model.Turno
	err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find turno: %w", err)
	}
	return conflictForEstado(t.Estado)
}

// conflictForEstado maps a non-cancellable estado to its error.
func conflictForEstado(estado string) error {
	switch estado {
	case model.TurnoCompletado:
		return ErrAlreadyCompleted
	default:
		return ErrAlreadyCancelled
	}
}

// ---------------------------------------------------------------------------
// Reprogramar
// ---------------------------------------------------------------------------

func (s *turnoService) Reprogramar(ctx context.Context, id uuid.UUID, req ReprogramarRequest) (*Result, error) {
	nuevaFecha, err := time.Parse("2006-01-02", req.NuevaFecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	var t model.Turno
	err = s.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find turno: %w", err)
	}

	switch t.Estado {
	case model.TurnoCancelado:
		return nil, ErrAlreadyCancelled
	case model.TurnoCompletado:
		return nil, ErrAlreadyCompleted
	}

	// Rescheduling onto the turno's own slot is a no-op success.
	if t.FechaString() == req.NuevaFecha && t.Hora == req.NuevaHora {
		return s.result(ctx, &t)
	}

	if err := s.checkSlotOpen(ctx, t.NutricionistaID, req.NuevaFecha, req.NuevaHora); err != nil {
		return nil, err
	}

	oldFecha := t.FechaString()
	res := s.db.WithContext(ctx).Model(&model.Turno{}).
		Where("id = ? AND estado = ?", id, model.TurnoConfirmado).
		Updates(map[string]any{"fecha": nuevaFecha, "hora": req.NuevaHora})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("reprogram turno: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.estadoConflict(ctx, id)
	}
	t.Fecha = nuevaFecha
	t.Hora = req.NuevaHora

	s.avail.InvalidateDay(ctx, t.NutricionistaID, oldFecha)
	s.avail.InvalidateDay(ctx, t.NutricionistaID, req.NuevaFecha)
	s.publisher.TurnoReprogramado(t.ID)

	return s.result(ctx, &t)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *turnoService) checkSlotOpen(ctx context.Context, nutricionistaID uuid.UUID, fecha, hora string) error {
	slots, err := s.avail.SlotsForDate(ctx, nutricionistaID, fecha)
	if err != nil {
		if errors.Is(err, availability.ErrNutricionistaNotFound) {
			return ErrNotFound
		}
		if errors.Is(err, availability.ErrInvalidFecha) {
			return ErrInvalidFecha
		}
		return err
	}
	for _, slot := range slots {
		if slot.Time == hora {
			return nil
		}
	}
	return ErrSlotNotAvailable
}

func (s *turnoService) result(ctx context.Context, t *model.Turno) (*Result, error) {
	full, err := s.Get(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Turno:          full,
		Notificaciones: []Notificacion{BuildCalendarNotificacion(full)},
	}, nil
}

// BuildCalendarNotificacion renders the Google Calendar URL and ICS
// payload for a turno. Also used by the notification worker.
func BuildCalendarNotificacion(t *model.Turno) Notificacion {
	start := slotStart(t)
	event := calendar.Event{
		Title:       "Consulta nutricional",
		Description: "Turno confirmado en Nutrito",
		Location:    t.Modalidad.Nombre,
		Start:       start,
		End:         start.Add(30 * time.Minute),
	}
	return Notificacion{
		Tipo:        "calendar",
		CalendarURL: calendar.GoogleURL(event),
		ICS:         calendar.ICS(t.ID.String(), event),
	}
}

func slotStart(t *model.Turno) time.Time {
	var h, m int
	fmt.Sscanf(t.Hora, "%d:%d", &h, &m)
	return time.Date(t.Fecha.Year(), t.Fecha.Month(), t.Fecha.Day(), h, m, 0, 0, time.UTC)
}

package nutricionista

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

type AgendaItem struct {
	ID         uuid.UUID `json:"id"`
	Fecha      string    `json:"fecha"`
	Hora       string    `json:"hora"`
	Estado     string    `json:"estado"`
	Modalidad  string    `json:"modalidad"`
	PacienteID uuid.UUID `json:"paciente_id"`
	Paciente   string    `json:"paciente"`
	Email      string    `json:"email"`
}

// Agenda is the provider's appointment book, split the same way the
// patient listing is: confirmed future turnos up front, the rest below.
type Agenda struct {
	Proximos []AgendaItem `json:"proximos"`
	Pasados  []AgendaItem `json:"pasados"`
}

func (s *nutricionistaService) Agenda(ctx context.Context, id uuid.UUID) (*Agenda, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&model.NutricionistaProfile{}).
		Where("id = ?", id).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("find nutricionista: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var rows []model.Turno
	err := s.db.WithContext(ctx).
		Preload("Modalidad").
		Where("nutricionista_id = ?", id).
		Order("fecha ASC, hora ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}

	patients, err := s.pacienteDisplay(ctx, rows)
	if err != nil {
		return nil, err
	}

	items := make([]AgendaItem, 0, len(rows))
	for _, t := range rows {
		item := AgendaItem{
			ID:         t.ID,
			Fecha:      t.FechaString(),
			Hora:       t.Hora,
			Estado:     t.Estado,
			Modalidad:  t.Modalidad.Nombre,
			PacienteID: t.PacienteID,
		}
		if p, found := patients[t.PacienteID]; found {
			item.Paciente = p.nombre
			item.Email = p.email
		}
		items = append(items, item)
	}

	return splitAgenda(items, time.Now().Format("2006-01-02")), nil
}

type pacienteDisplay struct {
	nombre string
	email  string
}

func (s *nutricionistaService) pacienteDisplay(ctx context.Context, rows []model.Turno) (map[uuid.UUID]pacienteDisplay, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool)
	for _, t := range rows {
		if !seen[t.PacienteID] {
			seen[t.PacienteID] = true
			ids = append(ids, t.PacienteID)
		}
	}

	out := make(map[uuid.UUID]pacienteDisplay, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var profiles []model.PacienteProfile
	err := s.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("list pacientes: %w", err)
	}
	for _, p := range profiles {
		out[p.ID] = pacienteDisplay{nombre: p.User.NombreCompleto(), email: p.User.Email}
	}
	return out, nil
}

// splitAgenda partitions items into upcoming and past. A turno counts
// as upcoming while it is confirmed and its date has not passed.
func splitAgenda(items []AgendaItem, today string) *Agenda {
	out := &Agenda{Proximos: []AgendaItem{}, Pasados: []AgendaItem{}}
	for _, item := range items {
		if item.Estado == model.TurnoConfirmado && item.Fecha >= today {
			out.Proximos = append(out.Proximos, item)
		} else {
			out.Pasados = append(out.Pasados, item)
		}
	}
	return out
}

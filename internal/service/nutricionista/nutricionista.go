// Package nutricionista implements the provider directory: search,
// public profiles, weekly availability ranges and manual patient
// registration.
package nutricionista

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/config"
	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/pkg/email"
	"github.com/MarciaOrozco/nutrito-backend/pkg/util/password"
)

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// SearchFilters mirror the query params of GET /api/nutricionistas.
// Especialidades is AND (the provider must have all), Modalidades is OR.
type SearchFilters struct {
	Nombre         string
	Especialidad   string
	Especialidades []string
	Modalidades    []string
}

type Summary struct {
	ID             uuid.UUID `json:"id"`
	Nombre         string    `json:"nombre"`
	Titulo         string    `json:"titulo"`
	FotoURL        string    `json:"foto_url"`
	Especialidades []string  `json:"especialidades"`
	Modalidades    []string  `json:"modalidades"`
	Reputacion     float64   `json:"reputacion"`
	TotalOpiniones int       `json:"total_opiniones"`
}

type CatalogItem struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
}

type EducacionItem struct {
	Titulo      string `json:"titulo"`
	Institucion string `json:"institucion"`
	Anio        int    `json:"anio"`
}

type ResenaItem struct {
	Puntaje    int       `json:"puntaje"`
	Comentario string    `json:"comentario"`
	Fecha      time.Time `json:"fecha"`
}

type Profile struct {
	ID             uuid.UUID       `json:"id"`
	Nombre         string          `json:"nombre"`
	Titulo         string          `json:"titulo"`
	SobreMi        string          `json:"sobre_mi"`
	FotoURL        string          `json:"foto_url"`
	Especialidades []string        `json:"especialidades"`
	Modalidades    []CatalogItem   `json:"modalidades"`
	MetodosPago    []CatalogItem   `json:"metodos_pago"`
	ObrasSociales  []CatalogItem   `json:"obras_sociales"`
	Educacion      []EducacionItem `json:"educacion"`
	Resenas        []ResenaItem    `json:"resenas"`
	Reputacion     float64         `json:"reputacion"`
	TotalOpiniones int             `json:"total_opiniones"`
}

type RangoInput struct {
	DiaSemana       int    `json:"dia_semana"`
	HoraInicio      string `json:"hora_inicio"`
	HoraFin         string `json:"hora_fin"`
	DuracionMinutos int    `json:"duracion_minutos"`
}

type ManualPatientRequest struct {
	Nombre   string
	Apellido string
	Email    string
}

type ManualPatientResult struct {
	PacienteID uuid.UUID `json:"paciente_id"`
	UserID     uuid.UUID `json:"user_id"`
	ConsultaID uuid.UUID `json:"consulta_id"`
	Estado     string    `json:"estado"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Search(ctx context.Context, filters SearchFilters) ([]Summary, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	Agenda(ctx context.Context, id uuid.UUID) (*Agenda, error)
	ReplaceDisponibilidad(ctx context.Context, id uuid.UUID, rangos []RangoInput) error
	RegisterManualPatient(ctx context.Context, id uuid.UUID, req ManualPatientRequest) (*ManualPatientResult, error)
}

type nutricionistaService struct {
	db    *gorm.DB
	email *email.Client
	cfg   *config.Config
}

func New(db *gorm.DB, emailCli *email.Client, cfg *config.Config) Service {
	return &nutricionistaService{db: db, email: emailCli, cfg: cfg}
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func (s *nutricionistaService) Search(ctx context.Context, filters SearchFilters) ([]Summary, error) {
	var profiles []model.NutricionistaProfile
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Especialidades").
		Preload("Modalidades").
		Preload("Resenas").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("list nutricionistas: %w", err)
	}

	// Filtering is accent- and case-insensitive, done over the loaded
	// set so the semantics match the clients' local filter exactly.
	out := make([]Summary, 0, len(profiles))
	for _, p := range profiles {
		if !matches(p, filters) {
			continue
		}
		out = append(out, toSummary(p))
	}
	return out, nil
}

func matches(p model.NutricionistaProfile, f SearchFilters) bool {
	if f.Nombre != "" && !foldContains(p.User.NombreCompleto(), f.Nombre) {
		return false
	}

	if f.Especialidad != "" && !hasEspecialidad(p, f.Especialidad) {
		return false
	}

	// AND: every requested especialidad must be present.
	for _, esp := range f.Especialidades {
		if esp = strings.TrimSpace(esp); esp == "" {
			continue
		}
		if !hasEspecialidad(p, esp) {
			return false
		}
	}

	// OR: at least one requested modalidad must be present.
	if len(f.Modalidades) > 0 {
		found := false
		for _, mod := range f.Modalidades {
			if mod = strings.TrimSpace(mod); mod == "" {
				continue
			}
			for _, m := range p.Modalidades {
				if fold(m.Nombre) == fold(mod) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func hasEspecialidad(p model.NutricionistaProfile, esp string) bool {
	for _, e := range p.Especialidades {
		if foldContains(e.Nombre, esp) {
			return true
		}
	}
	return false
}

func toSummary(p model.NutricionistaProfile) Summary {
	especialidades := make([]string, 0, len(p.Especialidades))
	for _, e := range p.Especialidades {
		especialidades = append(especialidades, e.Nombre)
	}
	modalidades := make([]string, 0, len(p.Modalidades))
	for _, m := range p.Modalidades {
		modalidades = append(modalidades, m.Nombre)
	}
	avg, total := reputacion(p.Resenas)

	return Summary{
		ID:             p.ID,
		Nombre:         p.User.NombreCompleto(),
		Titulo:         p.Titulo,
		FotoURL:        p.FotoURL,
		Especialidades: especialidades,
		Modalidades:    modalidades,
		Reputacion:     avg,
		TotalOpiniones: total,
	}
}

func reputacion(resenas []model.Resena) (float64, int) {
	if len(resenas) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range resenas {
		sum += r.Puntaje
	}
	return float64(sum) / float64(len(resenas)), len(resenas)
}

// ---------------------------------------------------------------------------
// GetProfile
// ---------------------------------------------------------------------------

func (s *nutricionistaService) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p model.NutricionistaProfile
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Especialidades").
		Preload("Modalidades").
		Preload("MetodosPago").
		Preload("ObrasSociales").
		Preload("Educacion").
		Preload("Resenas").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find nutricionista: %w", err)
	}

	especialidades := make([]string, 0, len(p.Especialidades))
	for _, e := range p.Especialidades {
		especialidades = append(especialidades, e.Nombre)
	}
	modalidades := make([]CatalogItem, 0, len(p.Modalidades))
	for _, m := range p.Modalidades {
		modalidades = append(modalidades, CatalogItem{ID: m.ID, Nombre: m.Nombre})
	}
	metodos := make([]CatalogItem, 0, len(p.MetodosPago))
	for _, m := range p.MetodosPago {
		metodos = append(metodos, CatalogItem{ID: m.ID, Nombre: m.Nombre})
	}
	obras := make([]CatalogItem, 0, len(p.ObrasSociales))
	for _, o := range p.ObrasSociales {
		obras = append(obras, CatalogItem{ID: o.ID, Nombre: o.Nombre})
	}
	educacion := make([]EducacionItem, 0, len(p.Educacion))
	for _, e := range p.Educacion {
		educacion = append(educacion, EducacionItem{Titulo: e.Titulo, Institucion: e.Institucion, Anio: e.Anio})
	}
	resenas := make([]ResenaItem, 0, len(p.Resenas))
	for _, r := range p.Resenas {
		resenas = append(resenas, ResenaItem{Puntaje: r.Puntaje, Comentario: r.Comentario, Fecha: r.CreatedAt})
	}
	avg, total := reputacion(p.Resenas)

	return &Profile{
		ID:             p.ID,
		Nombre:         p.User.NombreCompleto(),
		Titulo:         p.Titulo,
		SobreMi:        p.SobreMi,
		FotoURL:        p.FotoURL,
		Especialidades: especialidades,
		Modalidades:    modalidades,
		MetodosPago:    metodos,
		ObrasSociales:  obras,
		Educacion:      educacion,
		Resenas:        resenas,
		Reputacion:     avg,
		TotalOpiniones: total,
	}, nil
}

// ---------------------------------------------------------------------------
// ReplaceDisponibilidad
// ---------------------------------------------------------------------------

func (s *nutricionistaService) ReplaceDisponibilidad(ctx context.Context, id uuid.UUID, rangos []RangoInput) error {
	for _, r := range rangos {
		if r.DiaSemana < 0 || r.DiaSemana > 6 {
			return ErrInvalidRango
		}
		if !validHora(r.HoraInicio) || !validHora(r.HoraFin) || r.HoraFin <= r.HoraInicio {
			return ErrInvalidRango
		}
	}

	var exists int64
	if err := s.db.WithContext(ctx).Model(&model.NutricionistaProfile{}).
		Where("id = ?", id).Count(&exists).Error; err != nil {
		return fmt.Errorf("find nutricionista: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("nutricionista_id = ?", id).
			Delete(&model.DisponibilidadRango{}).Error; err != nil {
			return fmt.Errorf("clear rangos: %w", err)
		}
		for _, r := range rangos {
			dur := r.DuracionMinutos
			if dur <= 0 {
				dur = 30
			}
			row := model.DisponibilidadRango{
				NutricionistaID: id,
				DiaSemana:       r.DiaSemana,
				HoraInicio:      r.HoraInicio,
				HoraFin:         r.HoraFin,
				DuracionMinutos: dur,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create rango: %w", err)
			}
		}
		return nil
	})
}

var reHora = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validHora(s string) bool { return reHora.MatchString(s) }

// ---------------------------------------------------------------------------
// RegisterManualPatient
// ---------------------------------------------------------------------------

// RegisterManualPatient creates an invited paciente on behalf of the
// nutricionista, links the two and opens a draft consulta so the visit
// can be recorded right away. The invitation email carries a temporary
// password and is best-effort.
func (s *nutricionistaService) RegisterManualPatient(ctx context.Context, id uuid.UUID, req ManualPatientRequest) (*ManualPatientResult, error) {
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Apellido = strings.TrimSpace(req.Apellido)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Nombre == "" || req.Apellido == "" {
		return nil, ErrMissingNombre
	}
	if !reEmail.MatchString(req.Email) {
		return nil, ErrInvalidEmail
	}

	var nutri model.NutricionistaProfile
	err := s.db.WithContext(ctx).Preload("User").First(&nutri, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find nutricionista: %w", err)
	}

	tempPassword := password.Generate(12)
	passHash, err := password.Hash(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:        req.Email,
		PasswordHash: passHash,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Rol:          model.RolPaciente,
		Estado:       model.UserEstadoInvitado,
	}
	paciente := &model.PacienteProfile{}
	consulta := &model.Consulta{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		paciente.UserID = u.ID
		if err := tx.Create(paciente).Error; err != nil {
			return err
		}
		vinc := model.Vinculacion{
			PacienteID:      paciente.ID,
			NutricionistaID: id,
			Estado:          model.VinculacionActiva,
		}
		if err := tx.Create(&vinc).Error; err != nil {
			return err
		}
		consulta.PacienteID = paciente.ID
		consulta.NutricionistaID = id
		consulta.Estado = model.ConsultaBorrador
		consulta.Fecha = time.Now()
		return tx.Create(consulta).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create paciente: %w", err)
	}

	msg := email.BuildPacienteInvitationEmail(email.InvitationEmailData{
		Email:             req.Email,
		PacienteNombre:    req.Nombre,
		NutricionistaName: nutri.User.NombreCompleto(),
		TempPassword:      tempPassword,
	})
	if err := s.email.Send(ctx, msg); err != nil {
		slog.Warn("invitation email failed", "email", req.Email, "err", err)
	}

	return &ManualPatientResult{
		PacienteID: paciente.ID,
		UserID:     u.ID,
		ConsultaID: consulta.ID,
		Estado:     model.UserEstadoInvitado,
	}, nil
}

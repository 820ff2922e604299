// Package paciente covers the patient-side read model: profile,
// history listings, evolution series and the vinculación with a
// provider.
package paciente

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/pkg/s3"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Perfil struct {
	ID              uuid.UUID  `json:"id"`
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Email           string     `json:"email"`
	Telefono        string     `json:"telefono"`
	FechaNacimiento *string    `json:"fecha_nacimiento"`
	Objetivo        string     `json:"objetivo"`
	Condiciones     string     `json:"condiciones"`
	ObraSocial      *string    `json:"obra_social"`
	ObraSocialID    *uuid.UUID `json:"obra_social_id"`
}

type PerfilUpdate struct {
	Nombre          string
	Apellido        string
	Telefono        string
	FechaNacimiento string // YYYY-MM-DD, empty clears nothing
	Objetivo        *string
	Condiciones     *string
	ObraSocialID    *uuid.UUID
}

type TurnoItem struct {
	ID            uuid.UUID `json:"id"`
	Fecha         string    `json:"fecha"`
	Hora          string    `json:"hora"`
	Estado        string    `json:"estado"`
	Modalidad     string    `json:"modalidad"`
	Nutricionista string    `json:"nutricionista"`
}

type Turnos struct {
	Proximos []TurnoItem `json:"proximos"`
	Pasados  []TurnoItem `json:"pasados"`
}

type DocumentoItem struct {
	ID          uuid.UUID `json:"id"`
	ConsultaID  uuid.UUID `json:"consulta_id"`
	Nombre      string    `json:"nombre"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	Fecha       time.Time `json:"fecha"`
}

type EvolucionPoint struct {
	Fecha string  `json:"fecha"`
	Peso  float64 `json:"peso"`
	IMC   float64 `json:"imc"`
}

type VinculacionRequest struct {
	PacienteID      uuid.UUID
	NutricionistaID uuid.UUID
}

type RosterItem struct {
	PacienteID uuid.UUID `json:"paciente_id"`
	Nombre     string    `json:"nombre"`
	Apellido   string    `json:"apellido"`
	Email      string    `json:"email"`
	Estado     string    `json:"estado"`
	Desde      time.Time `json:"desde"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	GetPerfil(ctx context.Context, pacienteID uuid.UUID) (*Perfil, error)
	UpdatePerfil(ctx context.Context, pacienteID uuid.UUID, upd PerfilUpdate) (*Perfil, error)
	ListTurnos(ctx context.Context, pacienteID uuid.UUID) (*Turnos, error)
	ListPlanes(ctx context.Context, pacienteID uuid.UUID) ([]model.Plan, error)
	ListConsultas(ctx context.Context, pacienteID uuid.UUID) ([]model.Consulta, error)
	ListDocumentos(ctx context.Context, pacienteID uuid.UUID) ([]DocumentoItem, error)
	Evolucion(ctx context.Context, pacienteID uuid.UUID) ([]EvolucionPoint, error)
	CreateVinculacion(ctx context.Context, req VinculacionRequest) (*model.Vinculacion, error)
	IsLinked(ctx context.Context, pacienteID, nutricionistaID uuid.UUID) (bool, error)
	Roster(ctx context.Context, nutricionistaID uuid.UUID) ([]RosterItem, error)
}

type pacienteService struct {
	db *gorm.DB
	s3 *s3.Client
}

func New(db *gorm.DB, s3Cli *s3.Client) Service {
	return &pacienteService{db: db, s3: s3Cli}
}

// ---------------------------------------------------------------------------
// Perfil
// ---------------------------------------------------------------------------

func (s *pacienteService) GetPerfil(ctx context.Context, pacienteID uuid.UUID) (*Perfil, error) {
	p, err := s.findProfile(ctx, pacienteID)
	if err != nil {
		return nil, err
	}
	return toPerfil(p), nil
}

func (s *pacienteService) UpdatePerfil(ctx context.Context, pacienteID uuid.UUID, upd PerfilUpdate) (*Perfil, error) {
	p, err := s.findProfile(ctx, pacienteID)
	if err != nil {
		return nil, err
	}

	userFields := map[string]any{}
	if n := strings.TrimSpace(upd.Nombre); n != "" {
		userFields["nombre"] = n
	}
	if a := strings.TrimSpace(upd.Apellido); a != "" {
		userFields["apellido"] = a
	}
	if t := strings.TrimSpace(upd.Telefono); t != "" {
		userFields["telefono"] = t
	}

	profileFields := map[string]any{}
	if upd.FechaNacimiento != "" {
		fn, err := time.Parse("2006-01-02", upd.FechaNacimiento)
		if err != nil {
			return nil, ErrInvalidFecha
		}
		profileFields["fecha_nacimiento"] = fn
	}
	if upd.Objetivo != nil {
		profileFields["objetivo"] = *upd.Objetivo
	}
	if upd.Condiciones != nil {
		profileFields["condiciones"] = *upd.Condiciones
	}
	if upd.ObraSocialID != nil {
		profileFields["obra_social_id"] = *upd.ObraSocialID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(userFields) > 0 {
			if err := tx.Model(&model.User{}).Where("id = ?", p.UserID).
				Updates(userFields).Error; err != nil {
				return err
			}
		}
		if len(profileFields) > 0 {
			if err := tx.Model(&model.PacienteProfile{}).Where("id = ?", p.ID).
				Updates(profileFields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update perfil: %w", err)
	}

	return s.GetPerfil(ctx, pacienteID)
}

func (s *pacienteService) findProfile(ctx context.Context, pacienteID uuid.UUID) (*model.PacienteProfile, error) {
	var p model.PacienteProfile
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("ObraSocial").
		First(&p, "id = ?", pacienteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find paciente: %w", err)
	}
	return &p, nil
}

func toPerfil(p *model.PacienteProfile) *Perfil {
	out := &Perfil{
		ID:           p.ID,
		Nombre:       p.User.Nombre,
		Apellido:     p.User.Apellido,
		Email:        p.User.Email,
		Telefono:     p.User.Telefono,
		Objetivo:     p.Objetivo,
		Condiciones:  p.Condiciones,
		ObraSocialID: p.ObraSocialID,
	}
	if p.FechaNacimiento != nil {
		fn := p.FechaNacimiento.Format("2006-01-02")
		out.FechaNacimiento = &fn
	}
	if p.ObraSocial != nil {
		out.ObraSocial = &p.ObraSocial.Nombre
	}
	return out
}

// ---------------------------------------------------------------------------
// Listings
// ---------------------------------------------------------------------------

func (s *pacienteService) ListTurnos(ctx context.Context, pacienteID uuid.UUID) (*Turnos, error) {
	var rows []model.Turno
	err := s.db.WithContext(ctx).
		Preload("Modalidad").
		Where("paciente_id = ?", pacienteID).
		Order("fecha ASC, hora ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}

	// Provider names in one pass instead of per-row lookups.
	names, err := s.nutricionistaNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	out := &Turnos{Proximos: []TurnoItem{}, Pasados: []TurnoItem{}}
	for _, t := range rows {
		item := TurnoItem{
			ID:            t.ID,
			Fecha:         t.FechaString(),
			Hora:          t.Hora,
			Estado:        t.Estado,
			Modalidad:     t.Modalidad.Nombre,
			Nutricionista: names[t.NutricionistaID],
		}
		if t.Estado == model.TurnoConfirmado && item.Fecha >= today {
			out.Proximos = append(out.Proximos, item)
		} else {
			out.Pasados = append(out.Pasados, item)
		}
	}
	return out, nil
}

func (s *pacienteService) nutricionistaNames(ctx context.Context, rows []model.Turno) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool)
	for _, t := range rows {
		if !seen[t.NutricionistaID] {
			seen[t.NutricionistaID] = true
			ids = append(ids, t.NutricionistaID)
		}
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var profiles []model.NutricionistaProfile
	err := s.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("list nutricionistas: %w", err)
	}
	for _, p := range profiles {
		names[p.ID] = p.User.NombreCompleto()
	}
	return names, nil
}

func (s *pacienteService) ListPlanes(ctx context.Context, pacienteID uuid.UUID) ([]model.Plan, error) {
	var planes []model.Plan
	err := s.db.WithContext(ctx).
		Where("paciente_id = ?", pacienteID).
		Order("created_at DESC").
		Find(&planes).Error
	if err != nil {
		return nil, fmt.Errorf("list planes: %w", err)
	}
	return planes, nil
}

func (s *pacienteService) ListConsultas(ctx context.Context, pacienteID uuid.UUID) ([]model.Consulta, error) {
	var consultas []model.Consulta
	err := s.db.WithContext(ctx).
		Preload("Documentos").
		Where("paciente_id = ?", pacienteID).
		Order("fecha DESC").
		Find(&consultas).Error
	if err != nil {
		return nil, fmt.Errorf("list consultas: %w", err)
	}
	return consultas, nil
}

func (s *pacienteService) ListDocumentos(ctx context.Context, pacienteID uuid.UUID) ([]DocumentoItem, error) {
	var docs []model.ConsultaDocumento
	err := s.db.WithContext(ctx).
		Joins("JOIN consultas ON consultas.id = consulta_documentos.consulta_id").
		Where("consultas.paciente_id = ?", pacienteID).
		Order("consulta_documentos.created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}

	out := make([]DocumentoItem, 0, len(docs))
	for _, d := range docs {
		item := DocumentoItem{
			ID:          d.ID,
			ConsultaID:  d.ConsultaID,
			Nombre:      d.Nombre,
			ContentType: d.ContentType,
			SizeBytes:   d.SizeBytes,
			Fecha:       d.CreatedAt,
		}
		url, err := s.s3.PresignDownload(ctx, d.S3Key)
		if err != nil {
			slog.Warn("presign documento failed", "documento_id", d.ID, "err", err)
		} else {
			item.URL = url
		}
		out = append(out, item)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Evolucion
// ---------------------------------------------------------------------------

// medidas is the JSONB shape stored on consultas.
type medidas struct {
	Peso   float64 `json:"peso"`
	Altura float64 `json:"altura"`
	IMC    float64 `json:"imc"`
}

func (s *pacienteService) Evolucion(ctx context.Context, pacienteID uuid.UUID) ([]EvolucionPoint, error) {
	var consultas []model.Consulta
	err := s.db.WithContext(ctx).
		Where("paciente_id = ? AND medidas IS NOT NULL", pacienteID).
		Order("fecha ASC").
		Find(&consultas).Error
	if err != nil {
		return nil, fmt.Errorf("list consultas: %w", err)
	}

	out := make([]EvolucionPoint, 0, len(consultas))
	for _, c := range consultas {
		var m medidas
		if err := json.Unmarshal(c.Medidas, &m); err != nil || m.Peso <= 0 {
			continue
		}
		out = append(out, EvolucionPoint{
			Fecha: c.Fecha.Format("2006-01-02"),
			Peso:  m.Peso,
			IMC:   m.IMC,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha < out[j].Fecha })
	return out, nil
}

// ---------------------------------------------------------------------------
// Vinculacion
// ---------------------------------------------------------------------------

// CreateVinculacion is idempotent: an existing active link is returned
// untouched, a dropped one is reactivated.
func (s *pacienteService) CreateVinculacion(ctx context.Context, req VinculacionRequest) (*model.Vinculacion, error) {
	var existing model.Vinculacion
	err := s.db.WithContext(ctx).
		Where("paciente_id = ? AND nutricionista_id = ?", req.PacienteID, req.NutricionistaID).
		First(&existing).Error
	switch {
	case err == nil:
		if existing.Estado != model.VinculacionActiva {
			if err := s.db.WithContext(ctx).Model(&existing).
				Update("estado", model.VinculacionActiva).Error; err != nil {
				return nil, fmt.Errorf("reactivate vinculacion: %w", err)
			}
			existing.Estado = model.VinculacionActiva
		}
		return &existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find vinculacion: %w", err)
	}

	v := model.Vinculacion{
		PacienteID:      req.PacienteID,
		NutricionistaID: req.NutricionistaID,
		Estado:          model.VinculacionActiva,
	}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		// A concurrent create hit the unique index first; reuse its row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.CreateVinculacion(ctx, req)
		}
		return nil, fmt.Errorf("create vinculacion: %w", err)
	}
	return &v, nil
}

// IsLinked reports whether the paciente has an active vinculación with
// the nutricionista. Handlers use it to grant providers access to their
// own patients' records only.
func (s *pacienteService) IsLinked(ctx context.Context, pacienteID, nutricionistaID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Vinculacion{}).
		Where("paciente_id = ? AND nutricionista_id = ? AND estado = ?",
			pacienteID, nutricionistaID, model.VinculacionActiva).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check vinculacion: %w", err)
	}
	return count > 0, nil
}

// ---------------------------------------------------------------------------
// Roster
// ---------------------------------------------------------------------------

func (s *pacienteService) Roster(ctx context.Context, nutricionistaID uuid.UUID) ([]RosterItem, error) {
	var links []model.Vinculacion
	err := s.db.WithContext(ctx).
		Where("nutricionista_id = ? AND estado = ?", nutricionistaID, model.VinculacionActiva).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list vinculaciones: %w", err)
	}

	out := make([]RosterItem, 0, len(links))
	for _, l := range links {
		var p model.PacienteProfile
		err := s.db.WithContext(ctx).Preload("User").First(&p, "id = ?", l.PacienteID).Error
		if err != nil {
			slog.Warn("roster: paciente lookup failed", "paciente_id", l.PacienteID, "err", err)
			continue
		}
		out = append(out, RosterItem{
			PacienteID: p.ID,
			Nombre:     p.User.Nombre,
			Apellido:   p.User.Apellido,
			Email:      p.User.Email,
			Estado:     p.User.Estado,
			Desde:      l.CreatedAt,
		})
	}
	return out, nil
}

// Package consulta manages visit records: clinical notes, measurements
// with derived IMC, attached documents in object storage and the
// follow-up booking shortcut.
package consulta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/turno"
	"github.com/MarciaOrozco/nutrito-backend/pkg/s3"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	PacienteID      uuid.UUID
	NutricionistaID uuid.UUID
	TurnoID         *uuid.UUID
}

// Medidas is the measurement payload; IMC is always recomputed here,
// never taken from the client.
type Medidas struct {
	Peso   float64 `json:"peso"`
	Altura float64 `json:"altura"`
	IMC    float64 `json:"imc"`
}

type UpdateRequest struct {
	Motivo       *string
	Diagnostico  *string
	Indicaciones *string
	Notas        *string
	Medidas      *Medidas
	Estado       *string
}

type DocumentoItem struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	Fecha       time.Time `json:"fecha"`
}

type Detail struct {
	Consulta   *model.Consulta `json:"consulta"`
	Documentos []DocumentoItem `json:"documentos"`
}

type UploadRequest struct {
	Nombre      string
	ContentType string
	Body        io.Reader
	SizeBytes   int64
}

type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ProximaCitaRequest struct {
	Fecha       string
	Hora        string
	ModalidadID uuid.UUID
}

// ListFilter narrows the collection listing; nil fields are ignored.
type ListFilter struct {
	PacienteID      *uuid.UUID
	NutricionistaID *uuid.UUID
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*model.Consulta, error)
	List(ctx context.Context, filter ListFilter) ([]model.Consulta, error)
	Get(ctx context.Context, id uuid.UUID) (*Detail, error)
	Update(ctx context.Context, id uuid.UUID, upd UpdateRequest) (*model.Consulta, error)
	Delete(ctx context.Context, id uuid.UUID, motivo string) error
	UploadDocumento(ctx context.Context, id uuid.UUID, req UploadRequest) (*DocumentoItem, error)
	Exportar(ctx context.Context, id uuid.UUID, secciones []string) (*Export, error)
	ProximaCita(ctx context.Context, id uuid.UUID, req ProximaCitaRequest) (*turno.Result, error)
}

type consultaService struct {
	db     *gorm.DB
	s3     *s3.Client
	turnos turno.Service
}

func New(db *gorm.DB, s3Cli *s3.Client, turnos turno.Service) Service {
	return &consultaService{db: db, s3: s3Cli, turnos: turnos}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func (s *consultaService) Create(ctx context.Context, req CreateRequest) (*model.Consulta, error) {
	if req.PacienteID == uuid.Nil || req.NutricionistaID == uuid.Nil {
		return nil, ErrMissingPaciente
	}

	c := &model.Consulta{
		PacienteID:      req.PacienteID,
		NutricionistaID: req.NutricionistaID,
		TurnoID:         req.TurnoID,
		Estado:          model.ConsultaBorrador,
		Fecha:           time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("create consulta: %w", err)
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func (s *consultaService) List(ctx context.Context, filter ListFilter) ([]model.Consulta, error) {
	q := s.db.WithContext(ctx).Preload("Documentos")
	if filter.PacienteID != nil {
		q = q.Where("paciente_id = ?", *filter.PacienteID)
	}
	if filter.NutricionistaID != nil {
		q = q.Where("nutricionista_id = ?", *filter.NutricionistaID)
	}

	var rows []model.Consulta
	if err := q.Order("fecha DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list consultas: %w", err)
	}
	return rows, nil
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func (s *consultaService) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	c, err := s.find(ctx, id, true)
	if err != nil {
		return nil, err
	}

	docs := make([]DocumentoItem, 0, len(c.Documentos))
	for _, d := range c.Documentos {
		item := DocumentoItem{
			ID:          d.ID,
			Nombre:      d.Nombre,
			ContentType: d.ContentType,
			SizeBytes:   d.SizeBytes,
			Fecha:       d.CreatedAt,
		}
		if url, err := s.s3.PresignDownload(ctx, d.S3Key); err == nil {
			item.URL = url
		}
		docs = append(docs, item)
	}

	return &Detail{Consulta: c, Documentos: docs}, nil
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (s *consultaService) Update(ctx context.Context, id uuid.UUID, upd UpdateRequest) (*model.Consulta, error) {
	c, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.Motivo != nil {
		fields["motivo"] = *upd.Motivo
	}
	if upd.Diagnostico != nil {
		fields["diagnostico"] = *upd.Diagnostico
	}
	if upd.Indicaciones != nil {
		fields["indicaciones"] = *upd.Indicaciones
	}
	if upd.Notas != nil {
		fields["notas"] = *upd.Notas
	}
	if upd.Estado != nil {
		fields["estado"] = *upd.Estado
	}
	if upd.Medidas != nil {
		if upd.Medidas.Peso <= 0 || upd.Medidas.Altura <= 0 {
			return nil, ErrInvalidMedidas
		}
		m := Medidas{
			Peso:   upd.Medidas.Peso,
			Altura: upd.Medidas.Altura,
			IMC:    IMC(upd.Medidas.Peso, upd.Medidas.Altura),
		}
		payload, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("marshal medidas: %w", err)
		}
		fields["medidas"] = datatypes.JSON(payload)
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(c).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update consulta: %w", err)
		}
	}

	return s.find(ctx, id, false)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

// Delete removes a consulta. The caller must state a motivo, which is
// kept in the log trail.
func (s *consultaService) Delete(ctx context.Context, id uuid.UUID, motivo string) error {
	if strings.TrimSpace(motivo) == "" {
		return ErrMotivoRequired
	}

	c, err := s.find(ctx, id, true)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("consulta_id = ?", id).
			Delete(&model.ConsultaDocumento{}).Error; err != nil {
			return fmt.Errorf("delete documentos: %w", err)
		}
		if err := tx.Delete(c).Error; err != nil {
			return fmt.Errorf("delete consulta: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("consulta deleted", "consulta_id", id, "motivo", motivo)
	return nil
}

// ---------------------------------------------------------------------------
// UploadDocumento
// ---------------------------------------------------------------------------

func (s *consultaService) UploadDocumento(ctx context.Context, id uuid.UUID, req UploadRequest) (*DocumentoItem, error) {
	if req.SizeBytes <= 0 {
		return nil, ErrEmptyDocumento
	}

	if _, err := s.find(ctx, id, false); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("consultas/%s/%s%s", id, uuid.New(), filepath.Ext(req.Nombre))
	if err := s.s3.Upload(ctx, key, req.ContentType, req.Body, req.SizeBytes); err != nil {
		return nil, fmt.Errorf("upload documento: %w", err)
	}

	doc := &model.ConsultaDocumento{
		ConsultaID:  id,
		Nombre:      req.Nombre,
		ContentType: req.ContentType,
		S3Key:       key,
		SizeBytes:   req.SizeBytes,
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, fmt.Errorf("save documento: %w", err)
	}

	item := &DocumentoItem{
		ID:          doc.ID,
		Nombre:      doc.Nombre,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		Fecha:       doc.CreatedAt,
	}
	if url, err := s.s3.PresignDownload(ctx, key); err == nil {
		item.URL = url
	}
	return item, nil
}

// ---------------------------------------------------------------------------
// Exportar
// ---------------------------------------------------------------------------

func (s *consultaService) Exportar(ctx context.Context, id uuid.UUID, secciones []string) (*Export, error) {
	c, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename:    fmt.Sprintf("consulta-%s.pdf", c.ID),
		ContentType: "application/pdf",
		Content:     []byte(RenderDocument(c, secciones)),
	}, nil
}

// ---------------------------------------------------------------------------
// ProximaCita
// ---------------------------------------------------------------------------

// ProximaCita books the follow-up turno through the turno service, so
// conflict semantics are identical to a regular booking.
func (s *consultaService) ProximaCita(ctx context.Context, id uuid.UUID, req ProximaCitaRequest) (*turno.Result, error) {
	c, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}

	return s.turnos.Create(ctx, turno.CreateRequest{
		NutricionistaID: c.NutricionistaID,
		PacienteID:      c.PacienteID,
		Fecha:           req.Fecha,
		Hora:            req.Hora,
		ModalidadID:     req.ModalidadID,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *consultaService) find(ctx context.Context, id uuid.UUID, withDocs bool) (*model.Consulta, error) {
	q := s.db.WithContext(ctx)
	if withDocs {
		q = q.Preload("Documentos")
	}

	var c model.Consulta
	if err := q.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find consulta: %w", err)
	}
	return &c, nil
}

package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/middleware"
	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/consulta"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/paciente"
	"github.com/MarciaOrozco/nutrito-backend/internal/service/turno"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
	"github.com/MarciaOrozco/nutrito-backend/pkg/token"
)

var (
	ownPacienteID   = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	otherPacienteID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
	ownNutriID      = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	otherNutriID    = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
)

// stubPacienteService serves the perfil route; only the methods the
// tests reach are implemented.
type stubPacienteService struct {
	paciente.Service
	linkedTo uuid.UUID // nutricionista with an active vinculación
}

func (s *stubPacienteService) GetPerfil(_ context.Context, id uuid.UUID) (*paciente.Perfil, error) {
	return &paciente.Perfil{ID: id}, nil
}

func (s *stubPacienteService) IsLinked(_ context.Context, _, nutricionistaID uuid.UUID) (bool, error) {
	return nutricionistaID == s.linkedTo, nil
}

type stubTurnoService struct {
	turno.Service
	record *model.Turno
}

func (s *stubTurnoService) Get(_ context.Context, id uuid.UUID) (*model.Turno, error) {
	if s.record == nil || s.record.ID != id {
		return nil, turno.ErrNotFound
	}
	return s.record, nil
}

// withLocals mimics what the auth middleware resolves for the caller.
func withLocals(role string, profileID uuid.UUID) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(token.CtxKeyClaims, &token.Claims{Role: role})
		switch role {
		case authorize.UserRolePaciente:
			c.Locals(middleware.LocalPacienteID, profileID)
		case authorize.UserRoleNutricionista:
			c.Locals(middleware.LocalNutricionistaID, profileID)
		}
		return c.Next()
	}
}

func TestPacientePerfilScope(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		profileID  uuid.UUID
		target     uuid.UUID
		wantStatus int
	}{
		{"paciente reads own perfil", authorize.UserRolePaciente, ownPacienteID, ownPacienteID, fiber.StatusOK},
		{"paciente cannot read another perfil", authorize.UserRolePaciente, ownPacienteID, otherPacienteID, fiber.StatusForbidden},
		{"linked nutricionista reads patient perfil", authorize.UserRoleNutricionista, ownNutriID, ownPacienteID, fiber.StatusOK},
		{"unlinked nutricionista is rejected", authorize.UserRoleNutricionista, otherNutriID, ownPacienteID, fiber.StatusForbidden},
		{"admin reads any perfil", authorize.UserRoleAdmin, uuid.Nil, otherPacienteID, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			h := NewPacienteHandler(&stubPacienteService{linkedTo: ownNutriID})
			app.Get("/pacientes/:id/perfil", withLocals(tt.role, tt.profileID), h.GetPerfil)

			req := httptest.NewRequest("GET", "/pacientes/"+tt.target.String()+"/perfil", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestTurnoGetScope(t *testing.T) {
	turnoID := uuid.MustParse("cccccccc-0000-0000-0000-000000000001")
	record := &model.Turno{
		ID:              turnoID,
		PacienteID:      ownPacienteID,
		NutricionistaID: ownNutriID,
	}

	tests := []struct {
		name       string
		role       string
		profileID  uuid.UUID
		wantStatus int
	}{
		{"owning paciente", authorize.UserRolePaciente, ownPacienteID, fiber.StatusOK},
		{"foreign paciente", authorize.UserRolePaciente, otherPacienteID, fiber.StatusForbidden},
		{"owning nutricionista", authorize.UserRoleNutricionista, ownNutriID, fiber.StatusOK},
		{"foreign nutricionista", authorize.UserRoleNutricionista, otherNutriID, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			h := NewTurnoHandler(&stubTurnoService{record: record}, nil)
			app.Get("/turnos/:id", withLocals(tt.role, tt.profileID), h.Get)

			req := httptest.NewRequest("GET", "/turnos/"+turnoID.String(), nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

type stubConsultaService struct {
	consulta.Service
	gotFilter consulta.ListFilter
}

func (s *stubConsultaService) List(_ context.Context, f consulta.ListFilter) ([]model.Consulta, error) {
	s.gotFilter = f
	return []model.Consulta{}, nil
}

func TestConsultaListScopedToCaller(t *testing.T) {
	t.Run("paciente sees only their consultas", func(t *testing.T) {
		svc := &stubConsultaService{}
		app := fiber.New()
		h := NewConsultaHandler(svc)
		app.Get("/consultas", withLocals(authorize.UserRolePaciente, ownPacienteID), h.List)

		resp, err := app.Test(httptest.NewRequest("GET", "/consultas", nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
		}
		if svc.gotFilter.PacienteID == nil || *svc.gotFilter.PacienteID != ownPacienteID {
			t.Errorf("filter.PacienteID = %v, want %s", svc.gotFilter.PacienteID, ownPacienteID)
		}
		if svc.gotFilter.NutricionistaID != nil {
			t.Errorf("filter.NutricionistaID = %v, want nil", svc.gotFilter.NutricionistaID)
		}
	})

	t.Run("nutricionista sees only their consultas", func(t *testing.T) {
		svc := &stubConsultaService{}
		app := fiber.New()
		h := NewConsultaHandler(svc)
		app.Get("/consultas", withLocals(authorize.UserRoleNutricionista, ownNutriID), h.List)

		resp, err := app.Test(httptest.NewRequest("GET", "/consultas", nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
		}
		if svc.gotFilter.NutricionistaID == nil || *svc.gotFilter.NutricionistaID != ownNutriID {
			t.Errorf("filter.NutricionistaID = %v, want %s", svc.gotFilter.NutricionistaID, ownNutriID)
		}
	})

	t.Run("caller without profile is rejected", func(t *testing.T) {
		svc := &stubConsultaService{}
		app := fiber.New()
		h := NewConsultaHandler(svc)
		app.Get("/consultas", h.List)

		resp, err := app.Test(httptest.NewRequest("GET", "/consultas", nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusForbidden)
		}
	})
}

func TestCanAccessRecordWithoutProfile(t *testing.T) {
	app := fiber.New()
	app.Get("/check", func(c fiber.Ctx) error {
		if !canAccessRecord(c, ownPacienteID, ownNutriID) {
			return forbidden(c)
		}
		return noContent(c)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/check", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusForbidden)
	}
}

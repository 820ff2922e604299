package nutricionista

import (
	"testing"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

func TestSplitAgenda(t *testing.T) {
	today := "2025-07-14"
	items := []AgendaItem{
		{Paciente: "Ana", Fecha: "2025-07-15", Estado: model.TurnoConfirmado},
		{Paciente: "Bruno", Fecha: "2025-07-14", Estado: model.TurnoConfirmado},
		{Paciente: "Carla", Fecha: "2025-07-10", Estado: model.TurnoConfirmado},
		{Paciente: "Diego", Fecha: "2025-07-20", Estado: model.TurnoCancelado},
		{Paciente: "Eva", Fecha: "2025-07-01", Estado: model.TurnoCompletado},
	}

	out := splitAgenda(items, today)

	if len(out.Proximos) != 2 {
		t.Fatalf("len(Proximos) = %d, want 2", len(out.Proximos))
	}
	if out.Proximos[0].Paciente != "Ana" || out.Proximos[1].Paciente != "Bruno" {
		t.Errorf("Proximos = %+v", out.Proximos)
	}

	if len(out.Pasados) != 3 {
		t.Fatalf("len(Pasados) = %d, want 3", len(out.Pasados))
	}
	// A cancelled turno is never upcoming, regardless of date.
	for _, item := range out.Pasados {
		if item.Paciente == "Diego" {
			return
		}
	}
	t.Error("cancelled future turno missing from Pasados")
}

func TestSplitAgendaEmpty(t *testing.T) {
	out := splitAgenda(nil, "2025-07-14")
	if out.Proximos == nil || out.Pasados == nil {
		t.Error("expected empty slices, got nil")
	}
	if len(out.Proximos) != 0 || len(out.Pasados) != 0 {
		t.Errorf("expected empty agenda, got %+v", out)
	}
}

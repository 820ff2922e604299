package turno

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

func testTurno() *model.Turno {
	return &model.Turno{
		ID:        uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Fecha:     time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		Hora:      "10:30",
		Modalidad: model.Modalidad{Nombre: "Virtual"},
	}
}

func TestBuildCalendarNotificacion(t *testing.T) {
	n := BuildCalendarNotificacion(testTurno())

	if n.Tipo != "calendar" {
		t.Errorf("Tipo = %q, want calendar", n.Tipo)
	}
	if !strings.Contains(n.CalendarURL, "20250714T103000Z%2F20250714T110000Z") {
		t.Errorf("CalendarURL missing 30-minute slot window: %s", n.CalendarURL)
	}
	if !strings.Contains(n.ICS, "UID:11111111-2222-3333-4444-555555555555") {
		t.Errorf("ICS missing turno id as UID:\n%s", n.ICS)
	}
	if !strings.Contains(n.ICS, "LOCATION:Virtual") {
		t.Errorf("ICS missing modalidad as location:\n%s", n.ICS)
	}
}

func TestConflictForEstado(t *testing.T) {
	tests := []struct {
		estado string
		want   error
	}{
		{model.TurnoCancelado, ErrAlreadyCancelled},
		{model.TurnoCompletado, ErrAlreadyCompleted},
	}

	for _, tt := range tests {
		if got := conflictForEstado(tt.estado); got != tt.want {
			t.Errorf("conflictForEstado(%q) = %v, want %v", tt.estado, got, tt.want)
		}
	}
}

func TestSlotStart(t *testing.T) {
	tests := []struct {
		hora string
		want time.Time
	}{
		{"09:00", time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)},
		{"10:30", time.Date(2025, 7, 14, 10, 30, 0, 0, time.UTC)},
		{"23:45", time.Date(2025, 7, 14, 23, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		tr := testTurno()
		tr.Hora = tt.hora
		if got := slotStart(tr); !got.Equal(tt.want) {
			t.Errorf("slotStart(%q) = %v, want %v", tt.hora, got, tt.want)
		}
	}
}

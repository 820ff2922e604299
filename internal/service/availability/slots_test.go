package availability

import (
	"reflect"
	"testing"
	"time"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

// 2025-07-14 is a Monday (dia_semana 1).
var monday = time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

func TestBuildSlotsLadder(t *testing.T) {
	rangos := []model.DisponibilidadRango{
		{DiaSemana: 1, HoraInicio: "09:00", HoraFin: "11:00", DuracionMinutos: 30},
	}

	got := BuildSlots(rangos, monday, nil)

	want := []Slot{
		{Time: "09:00", Label: "09:00 hs", DiaSemana: 1},
		{Time: "09:30", Label: "09:30 hs", DiaSemana: 1},
		{Time: "10:00", Label: "10:00 hs", DiaSemana: 1},
		{Time: "10:30", Label: "10:30 hs", DiaSemana: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ladder = %v, want %v", got, want)
	}
}

func TestBuildSlotsExcludesBooked(t *testing.T) {
	rangos := []model.DisponibilidadRango{
		{DiaSemana: 1, HoraInicio: "09:00", HoraFin: "10:30", DuracionMinutos: 30},
	}
	ocupadas := map[string]bool{"09:30": true}

	got := BuildSlots(rangos, monday, ocupadas)

	times := make([]string, 0, len(got))
	for _, s := range got {
		times = append(times, s.Time)
	}
	want := []string{"09:00", "10:00"}
	if !reflect.DeepEqual(times, want) {
		t.Errorf("times = %v, want %v", times, want)
	}
}

func TestBuildSlotsIgnoresOtherWeekdays(t *testing.T) {
	rangos := []model.DisponibilidadRango{
		{DiaSemana: 2, HoraInicio: "09:00", HoraFin: "12:00", DuracionMinutos: 30},
		{DiaSemana: 0, HoraInicio: "14:00", HoraFin: "16:00", DuracionMinutos: 30},
	}

	got := BuildSlots(rangos, monday, nil)
	if len(got) != 0 {
		t.Errorf("expected empty ladder, got %v", got)
	}
}

func TestBuildSlotsDuration(t *testing.T) {
	rangos := []model.DisponibilidadRango{
		{DiaSemana: 1, HoraInicio: "09:00", HoraFin: "11:00", DuracionMinutos: 45},
	}

	got := BuildSlots(rangos, monday, nil)

	// 09:00 and 09:45 fit; 10:30+45m would run past 11:00.
	times := make([]string, 0, len(got))
	for _, s := range got {
		times = append(times, s.Time)
	}
	want := []string{"09:00", "09:45"}
	if !reflect.DeepEqual(times, want) {
		t.Errorf("times = %v, want %v", times, want)
	}
}

func TestBuildSlotsMergesRangesSorted(t *testing.T) {
	rangos := []model.DisponibilidadRango{
		{DiaSemana: 1, HoraInicio: "15:00", HoraFin: "16:00", DuracionMinutos: 30},
		{DiaSemana: 1, HoraInicio: "09:00", HoraFin: "10:00", DuracionMinutos: 30},
	}

	got := BuildSlots(rangos, monday, nil)

	times := make([]string, 0, len(got))
	for _, s := range got {
		times = append(times, s.Time)
	}
	want := []string{"09:00", "09:30", "15:00", "15:30"}
	if !reflect.DeepEqual(times, want) {
		t.Errorf("times = %v, want %v", times, want)
	}
}

func TestBuildSlotsDeterministic(t *testing.T) {
	rangos := []model.DisponibilidadRango{
		{DiaSemana: 1, HoraInicio: "09:00", HoraFin: "13:00", DuracionMinutos: 30},
		{DiaSemana: 1, HoraInicio: "14:00", HoraFin: "18:00", DuracionMinutos: 30},
	}
	ocupadas := map[string]bool{"10:00": true, "15:30": true}

	first := BuildSlots(rangos, monday, ocupadas)
	second := BuildSlots(rangos, monday, ocupadas)
	if !reflect.DeepEqual(first, second) {
		t.Error("BuildSlots is not deterministic")
	}
}

func TestBuildSlotsSkipsMalformedRanges(t *testing.T) {
	rangos := []model.DisponibilidadRango{
		{DiaSemana: 1, HoraInicio: "basura", HoraFin: "11:00", DuracionMinutos: 30},
		{DiaSemana: 1, HoraInicio: "12:00", HoraFin: "10:00", DuracionMinutos: 30},
		{DiaSemana: 1, HoraInicio: "09:00", HoraFin: "09:30", DuracionMinutos: 30},
	}

	got := BuildSlots(rangos, monday, nil)
	if len(got) != 1 || got[0].Time != "09:00" {
		t.Errorf("ladder = %v, want just 09:00", got)
	}
}

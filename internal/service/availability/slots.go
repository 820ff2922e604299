package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

// Slot is one offerable appointment time, in the shape the clients
// consume directly.
type Slot struct {
	Time      string `json:"time"`  // HH:MM
	Label     string `json:"label"` // "HH:MM hs"
	DiaSemana int    `json:"dia_semana"`
}

// BuildSlots generates the slot ladder for a date from the weekly
// availability ranges, excluding the horas in ocupadas. The result is a
// deterministic function of its inputs: ranges whose weekday does not
// match the date are ignored, each matching range is walked from
// hora_inicio in duracion_minutos steps while a full slot still fits
// before hora_fin, and the merged ladder is sorted by time.
func BuildSlots(rangos []model.DisponibilidadRango, fecha time.Time, ocupadas map[string]bool) []Slot {
	weekday := int(fecha.Weekday()) // 0 = domingo, matching dia_semana

	seen := make(map[string]bool)
	slots := make([]Slot, 0)

	for _, r := range rangos {
		if r.DiaSemana != weekday {
			continue
		}

		start, ok := parseHora(r.HoraInicio)
		if !ok {
			continue
		}
		end, ok := parseHora(r.HoraFin)
		if !ok || end <= start {
			continue
		}

		step := r.DuracionMinutos
		if step <= 0 {
			step = 30
		}

		for m := start; m+step <= end; m += step {
			hora := formatHora(m)
			if ocupadas[hora] || seen[hora] {
				continue
			}
			seen[hora] = true
			slots = append(slots, Slot{
				Time:      hora,
				Label:     hora + " hs",
				DiaSemana: weekday,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })
	return slots
}

// parseHora converts "HH:MM" to minutes since midnight.
func parseHora(s string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatHora(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

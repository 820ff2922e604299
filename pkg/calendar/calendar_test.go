package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func testEvent() Event {
	start := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	return Event{
		Title:       "Consulta con Lic. Laura Fernández",
		Description: "Turno confirmado, modalidad Virtual",
		Start:       start,
		End:         start.Add(30 * time.Minute),
	}
}

func TestGoogleURL(t *testing.T) {
	got := GoogleURL(testEvent())

	if !strings.HasPrefix(got, "https://calendar.google.com/calendar/render?") {
		t.Fatalf("GoogleURL() prefix wrong: %s", got)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("GoogleURL() not parseable: %v", err)
	}

	q := u.Query()
	if q.Get("action") != "TEMPLATE" {
		t.Errorf("action = %q, want TEMPLATE", q.Get("action"))
	}
	if q.Get("dates") != "20250714T120000Z/20250714T123000Z" {
		t.Errorf("dates = %q", q.Get("dates"))
	}
	if q.Get("text") != "Consulta con Lic. Laura Fernández" {
		t.Errorf("text = %q", q.Get("text"))
	}
}

func TestGoogleURLDeterministic(t *testing.T) {
	e := testEvent()
	if GoogleURL(e) != GoogleURL(e) {
		t.Error("GoogleURL() not deterministic for same event")
	}
}

func TestICS(t *testing.T) {
	got := ICS("turno-123", testEvent())

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:turno-123",
		"DTSTART:20250714T120000Z",
		"DTEND:20250714T123000Z",
		"SUMMARY:Consulta con Lic. Laura Fernández",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ICS() missing %q in:\n%s", want, got)
		}
	}

	if !strings.Contains(got, "\r\n") {
		t.Error("ICS() lines must be CRLF-terminated")
	}
}

func TestICSEscapesText(t *testing.T) {
	e := testEvent()
	e.Title = "Plan; control, etapa 2"

	got := ICS("turno-esc", e)
	if !strings.Contains(got, `SUMMARY:Plan\; control\, etapa 2`) {
		t.Errorf("ICS() did not escape special characters:\n%s", got)
	}
}

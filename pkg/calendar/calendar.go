package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Event describes a single calendar entry for a booked turno.
type Event struct {
	Title       string
	Description string
	Location    string

	Start time.Time
	End   time.Time
}

// GoogleURL renders the event as a Google Calendar "add event" link.
// Clients scan notification text for this URL, so the shape must stay
// https://calendar.google.com/calendar/render?action=TEMPLATE&...
func GoogleURL(e Event) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	q.Set("dates", fmt.Sprintf("%s/%s", formatUTC(e.Start), formatUTC(e.End)))
	if e.Description != "" {
		q.Set("details", e.Description)
	}
	if e.Location != "" {
		q.Set("location", e.Location)
	}

	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// ICS renders a minimal single-event iCalendar payload.
func ICS(uid string, e Event) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//Nutrito//ES\r\n")
	sb.WriteString("BEGIN:VEVENT\r\n")
	sb.WriteString("UID:" + escapeText(uid) + "\r\n")
	sb.WriteString("DTSTAMP:" + formatUTC(time.Now().UTC()) + "\r\n")
	sb.WriteString("DTSTART:" + formatUTC(e.Start) + "\r\n")
	sb.WriteString("DTEND:" + formatUTC(e.End) + "\r\n")
	sb.WriteString("SUMMARY:" + escapeText(e.Title) + "\r\n")
	if e.Description != "" {
		sb.WriteString("DESCRIPTION:" + escapeText(e.Description) + "\r\n")
	}
	if e.Location != "" {
		sb.WriteString("LOCATION:" + escapeText(e.Location) + "\r\n")
	}
	sb.WriteString("END:VEVENT\r\n")
	sb.WriteString("END:VCALENDAR\r\n")

	return sb.String()
}

// formatUTC renders a timestamp in the basic UTC format both Google
// Calendar and ICS expect (YYYYMMDDTHHMMSSZ).
func formatUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeText escapes the characters RFC 5545 treats as special in
// text values.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}

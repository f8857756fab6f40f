package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// DefaultTimezone is the IANA identifier used when the caller supplies none.
// The sandwich project operates on the US east coast.
const DefaultTimezone = "America/New_York"

// uidDomain is the fixed suffix on every generated event UID.
const uidDomain = "sandwichproject.org"

// Options controls calendar event construction. The zero value is usable:
// BaseDate defaults to the next Wednesday from Now, Timezone to
// DefaultTimezone, and DefaultDuration to one hour.
type Options struct {
	// BaseDate supplies the calendar day of the event. Zero value means
	// "next Wednesday from Now".
	BaseDate time.Time
	// Timezone is the IANA identifier the event's local times belong to.
	Timezone string
	// DefaultDuration is the event length used when the host has no close
	// time. Zero means one hour.
	DefaultDuration time.Duration
	// Now is the clock used for BaseDate defaulting and DTSTAMP. Nil means
	// time.Now. Tests inject a fixed instant here.
	Now func() time.Time
}

// BuildCalendarEvent derives a downloadable calendar event for a host's next
// collection window. A nil host is a programming error and is the only hard
// failure in this package; every malformed host field degrades gracefully.
//
// Given identical inputs and a fixed Now, the output is fully deterministic —
// DTSTAMP is the only field that reflects generation time.
func BuildCalendarEvent(host *domain.Host, opts Options) (domain.CalendarEvent, error) {
	if host == nil {
		return domain.CalendarEvent{}, fmt.Errorf("%w: host is required", domain.ErrValidation)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	tz := opts.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	duration := opts.DefaultDuration
	if duration <= 0 {
		duration = time.Hour
	}

	baseDate := opts.BaseDate
	if baseDate.IsZero() {
		baseDate = NextWednesday(now().In(loc))
	} else {
		// Re-anchor the caller's day in the event timezone so the local
		// DTSTART/DTEND values line up with the TZID parameter.
		baseDate = time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), 0, 0, 0, 0, loc)
	}

	start := ComposeDateTime(baseDate, host.OpenTime, 9, 0)

	var end time.Time
	if host.CloseTime != "" {
		end = ComposeDateTime(baseDate, host.CloseTime, start.Hour(), start.Minute())
	} else {
		end = start.Add(duration)
	}
	// Repair nonsensical windows (close before open, unparsable close time):
	// the event always gets a strictly positive, sane duration.
	if !end.After(start) {
		repair := duration / 2
		if repair < 30*time.Minute {
			repair = 30 * time.Minute
		}
		end = start.Add(repair)
	}

	summary := "Sandwich Drop-Off: " + host.Name
	location := host.Area
	if host.Neighborhood != "" {
		location = host.Neighborhood + ", " + host.Area
	}
	description := buildDescription(host)

	ev := domain.CalendarEvent{
		Summary:     summary,
		Description: description,
		Location:    location,
		Start:       start,
		End:         end,
		Timezone:    tz,
		FileName:    eventFileName(summary),
	}
	ev.ICSContent = serializeICS(host.ID, ev, now().UTC())
	return ev, nil
}

// buildDescription joins the host's non-empty display fields with newlines.
// The free-text hours string wins over the raw opening time when both exist.
func buildDescription(host *domain.Host) string {
	var parts []string
	for _, p := range []string{host.Area, host.Neighborhood, host.Phone, host.Notes} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	switch {
	case host.Hours != "":
		parts = append(parts, host.Hours)
	case host.OpenTime != "":
		parts = append(parts, "Opens at "+FormatTime12h(host.OpenTime))
	}
	return strings.Join(parts, "\n")
}

// icsTimestamp is the RFC 5545 local date-time layout.
const icsTimestamp = "20060102T150405"

// serializeICS renders the VCALENDAR/VEVENT payload. Line endings are CRLF
// per RFC 5545; DTSTART/DTEND carry the TZID parameter with local (non-UTC)
// time values, and DTSTAMP is the UTC generation instant.
func serializeICS(hostID int64, ev domain.CalendarEvent, stamp time.Time) string {
	uid := fmt.Sprintf("host-%d-%s@%s", hostID, ev.Start.Format(icsTimestamp), uidDomain)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Sandwich Project//Host Locator//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + stamp.Format(icsTimestamp) + "Z",
		"DTSTART;TZID=" + ev.Timezone + ":" + ev.Start.Format(icsTimestamp),
		"DTEND;TZID=" + ev.Timezone + ":" + ev.End.Format(icsTimestamp),
		"SUMMARY:" + escapeICS(ev.Summary),
		"DESCRIPTION:" + escapeICS(ev.Description),
		"LOCATION:" + escapeICS(ev.Location),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

// escapeICS escapes the RFC 5545 TEXT special characters. Backslash must be
// escaped first or it would double-escape the sequences that follow.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, ";", `\;`)
	return s
}

var (
	fileNameStrip    = regexp.MustCompile(`[^\w\s-]`)
	fileNameCollapse = regexp.MustCompile(`\s+`)
)

// eventFileName turns the event summary into a safe download name:
// non-word/non-space/non-hyphen characters stripped, interior whitespace
// collapsed to single hyphens, with "event" as the fallback when nothing
// survives.
func eventFileName(summary string) string {
	cleaned := fileNameStrip.ReplaceAllString(summary, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = fileNameCollapse.ReplaceAllString(cleaned, "-")
	if cleaned == "" {
		cleaned = "event"
	}
	return cleaned + ".ics"
}

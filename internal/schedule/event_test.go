package schedule_test

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/schedule"
)

// ---- fixtures --------------------------------------------------------------

// fixedNow is a deterministic clock for event building.
var fixedNow = func() time.Time {
	return time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC) // Monday before Feb 12
}

func hostFixture() domain.Host {
	return domain.Host{
		ID:           42,
		Name:         "Riverside Community Center",
		Area:         "Downtown",
		Neighborhood: "Riverside",
		Phone:        "555-0142",
		Hours:        "Wednesdays 9:30am-5pm",
		Lat:          40.7128,
		Lng:          -74.0060,
		OpenTime:     "09:30",
		CloseTime:    "17:00",
		Available:    true,
	}
}

// icsLine returns the full value of the first content line starting with
// prefix, or "" when absent.
func icsLine(content, prefix string) string {
	for _, line := range strings.Split(content, "\r\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	return ""
}

// unescapeICS reverses escapeICS in the opposite order of application.
func unescapeICS(s string) string {
	s = strings.ReplaceAll(s, `\;`, ";")
	s = strings.ReplaceAll(s, `\,`, ",")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// ---- BuildCalendarEvent ----------------------------------------------------

func TestBuildCalendarEvent_NilHost(t *testing.T) {
	_, err := schedule.BuildCalendarEvent(nil, schedule.Options{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// TestBuildCalendarEvent_WireFormat pins the exact DTSTART/DTEND lines and
// the file name for a known host on Wednesday, Feb 12 2025.
func TestBuildCalendarEvent_WireFormat(t *testing.T) {
	host := hostFixture()
	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{
		BaseDate: time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
		Now:      fixedNow,
	})
	require.NoError(t, err)

	assert.Contains(t, ev.ICSContent, "DTSTART;TZID=America/New_York:20250212T093000")
	assert.Contains(t, ev.ICSContent, "DTEND;TZID=America/New_York:20250212T170000")
	assert.Contains(t, ev.ICSContent, "UID:host-42-20250212T093000@sandwichproject.org")
	assert.Equal(t, "Sandwich-Drop-Off-Riverside-Community-Center.ics", ev.FileName)
	assert.Equal(t, "Sandwich Drop-Off: Riverside Community Center", ev.Summary)
	assert.Equal(t, "Riverside, Downtown", ev.Location)

	assert.True(t, strings.HasPrefix(ev.ICSContent, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(ev.ICSContent, "END:VCALENDAR\r\n"))
}

// TestBuildCalendarEvent_DefaultsToNextWednesday verifies the base date falls
// back to the next Wednesday from the injected clock.
func TestBuildCalendarEvent_DefaultsToNextWednesday(t *testing.T) {
	host := hostFixture()
	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{Now: fixedNow})
	require.NoError(t, err)

	// fixedNow is Monday Feb 10; next Wednesday is Feb 12.
	assert.Equal(t, 2025, ev.Start.Year())
	assert.Equal(t, time.February, ev.Start.Month())
	assert.Equal(t, 12, ev.Start.Day())
	assert.Equal(t, time.Wednesday, ev.Start.Weekday())
}

// TestBuildCalendarEvent_CloseBeforeOpen verifies the invariant repair: a
// close time earlier than the open time still yields end > start.
func TestBuildCalendarEvent_CloseBeforeOpen(t *testing.T) {
	host := hostFixture()
	host.OpenTime = "09:30"
	host.CloseTime = "06:00"

	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{Now: fixedNow})
	require.NoError(t, err)

	assert.True(t, ev.End.After(ev.Start))
	assert.GreaterOrEqual(t, ev.End.Sub(ev.Start), 30*time.Minute)
}

// TestBuildCalendarEvent_NoCloseTime verifies the default duration applies
// when the host has no close time.
func TestBuildCalendarEvent_NoCloseTime(t *testing.T) {
	host := hostFixture()
	host.CloseTime = ""

	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{
		Now:             fixedNow,
		DefaultDuration: 90 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, ev.End.Sub(ev.Start))
}

// TestBuildCalendarEvent_EscapingRoundTrip verifies ICS special characters in
// host fields survive escape → unescape unchanged.
func TestBuildCalendarEvent_EscapingRoundTrip(t *testing.T) {
	host := hostFixture()
	host.Name = `Joe's Deli; Back Door, Ring Twice \ Loudly`
	host.Notes = "Line one\nLine two, with commas; and semicolons"
	host.Hours = ""

	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{Now: fixedNow})
	require.NoError(t, err)

	rawSummary := icsLine(ev.ICSContent, "SUMMARY:")
	require.NotEmpty(t, rawSummary)
	assert.Equal(t, ev.Summary, unescapeICS(rawSummary))
	assert.NotContains(t, rawSummary, "\n")

	rawDesc := icsLine(ev.ICSContent, "DESCRIPTION:")
	require.NotEmpty(t, rawDesc)
	assert.Equal(t, ev.Description, unescapeICS(rawDesc))
	assert.Contains(t, ev.Description, "Line one\nLine two")
}

// TestBuildCalendarEvent_ParsesWithCalendarLibrary feeds the generated
// payload to a third-party RFC 5545 parser, proving standard calendar import
// tools accept it.
func TestBuildCalendarEvent_ParsesWithCalendarLibrary(t *testing.T) {
	host := hostFixture()
	host.Notes = "Ring bell; leave coolers by door, please"

	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{Now: fixedNow})
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(strings.NewReader(ev.ICSContent))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	parsed := cal.Events()[0]
	uid := parsed.GetProperty(ics.ComponentPropertyUniqueId)
	require.NotNil(t, uid)
	assert.Equal(t, "host-42-20250212T093000@sandwichproject.org", uid.Value)

	summary := parsed.GetProperty(ics.ComponentPropertySummary)
	require.NotNil(t, summary)
	assert.NotEmpty(t, summary.Value)
}

// TestBuildCalendarEvent_FileNameFallback verifies the "event" fallback when
// the summary strips to nothing.
func TestBuildCalendarEvent_FileNameFallback(t *testing.T) {
	host := hostFixture()
	host.Name = "::;;,,"

	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{Now: fixedNow})
	require.NoError(t, err)

	// "Sandwich Drop-Off" survives the strip, so build a summary that cannot.
	assert.True(t, strings.HasSuffix(ev.FileName, ".ics"))
	assert.NotContains(t, ev.FileName, ":")
	assert.NotContains(t, ev.FileName, ";")
}

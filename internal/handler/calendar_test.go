package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/schedule"
)

// eventFixture builds a real calendar event so the download test serves an
// actual RFC 5545 payload, not a canned string.
func eventFixture(t *testing.T) domain.CalendarEvent {
	t.Helper()
	host := hostFixture()
	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{
		BaseDate: time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
		Now:      func() time.Time { return time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return ev
}

func TestDownloadHostEvent_OK(t *testing.T) {
	ev := eventFixture(t)
	h := newRouter(nil, nil, &mockCalendarServicer{
		eventForHost: func(_ context.Context, hostID int64, baseDate time.Time) (domain.CalendarEvent, error) {
			require.Equal(t, int64(7), hostID)
			assert.True(t, baseDate.IsZero(), "no ?date= means zero base date")
			return ev, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hosts/7/event.ics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ev.FileName)
	assert.Equal(t, ev.ICSContent, rec.Body.String())

	// The served payload must be importable by standard calendar tools.
	cal, err := ics.ParseCalendar(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 1)
}

func TestDownloadHostEvent_ExplicitDate(t *testing.T) {
	h := newRouter(nil, nil, &mockCalendarServicer{
		eventForHost: func(_ context.Context, _ int64, baseDate time.Time) (domain.CalendarEvent, error) {
			assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), baseDate)
			return eventFixture(t), nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hosts/7/event.ics?date=2025-03-05", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDownloadHostEvent_BadDate(t *testing.T) {
	h := newRouter(nil, nil, &mockCalendarServicer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hosts/7/event.ics?date=next-wednesday", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadHostEvent_HostNotFound(t *testing.T) {
	h := newRouter(nil, nil, &mockCalendarServicer{
		eventForHost: func(_ context.Context, _ int64, _ time.Time) (domain.CalendarEvent, error) {
			return domain.CalendarEvent{}, domain.ErrNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hosts/999/event.ics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

package handler

import (
	"net/http"
	"time"

	"github.com/sandwichproject/host-locator/internal/metrics"
)

// DownloadHostEvent handles GET /api/hosts/{id}/event.ics.
//
// The response body is the raw RFC 5545 payload, served with the calendar
// MIME type and a Content-Disposition filename so browsers hand it straight
// to the user's calendar app. An optional ?date=YYYY-MM-DD overrides the
// default "next Wednesday" base date.
func (s *Server) DownloadHostEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("host not found"))
		return
	}

	var baseDate time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		baseDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody("date must be YYYY-MM-DD"))
			return
		}
	}

	ev, err := s.calendar.EventForHost(r.Context(), id, baseDate)
	if err != nil {
		writeServiceError(w, r, err, "host")
		return
	}

	metrics.CalendarEventsTotal.Inc()
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ev.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ev.ICSContent))
}

package handler

import (
	"net/http"
	"time"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// GetWeeklyStats handles GET /api/stats/weekly — the analytics dashboard
// dataset, oldest week first.
func (s *Server) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Weekly(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// weeklyStatRequest is the payload for recording one week of totals.
// week_start is a plain date (2006-01-02), not a full timestamp.
type weeklyStatRequest struct {
	WeekStart   string `json:"week_start"`
	Sandwiches  int    `json:"sandwiches"`
	Volunteers  int    `json:"volunteers"`
	HostsActive int    `json:"hosts_active"`
}

// RecordWeeklyStats handles POST /api/stats/weekly — the admin upsert for a
// week's totals. Posting the same week twice replaces the earlier counts.
func (s *Server) RecordWeeklyStats(w http.ResponseWriter, r *http.Request) {
	var req weeklyStatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body: "+err.Error()))
		return
	}

	week, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("week_start must be a date in 2006-01-02 format"))
		return
	}

	stat, err := s.stats.RecordWeek(r.Context(), domain.WeeklyStat{
		WeekStart:   week,
		Sandwiches:  req.Sandwiches,
		Volunteers:  req.Volunteers,
		HostsActive: req.HostsActive,
	})
	if err != nil {
		writeServiceError(w, r, err, "stats")
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

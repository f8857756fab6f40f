package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwichproject/host-locator/internal/domain"
)

func TestGetWeeklyStats_OK(t *testing.T) {
	weeks := []domain.WeeklyStat{
		{WeekStart: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), Sandwiches: 501, Volunteers: 37, HostsActive: 11},
		{WeekStart: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Sandwiches: 476, Volunteers: 33, HostsActive: 11},
	}
	h := newRouter(nil, nil, nil, &mockStatsServicer{
		weekly: func(_ context.Context) ([]domain.WeeklyStat, error) { return weeks, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats/weekly", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.WeeklyStat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 501, got[0].Sandwiches)
}

func TestGetWeeklyStats_InternalError(t *testing.T) {
	h := newRouter(nil, nil, nil, &mockStatsServicer{
		weekly: func(_ context.Context) ([]domain.WeeklyStat, error) {
			return nil, errors.New("connection refused")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats/weekly", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection refused", "internal detail stays in the log")
}

func TestGetHealth_OK(t *testing.T) {
	h := newRouter(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

// ---- RecordWeeklyStats -----------------------------------------------------

func TestRecordWeeklyStats_OK(t *testing.T) {
	var recorded domain.WeeklyStat
	h := newRouter(nil, nil, nil, &mockStatsServicer{
		recordWeek: func(_ context.Context, stat domain.WeeklyStat) (domain.WeeklyStat, error) {
			recorded = stat
			return stat, nil
		},
	})

	payload := map[string]any{
		"week_start":   "2025-02-17",
		"sandwiches":   512,
		"volunteers":   35,
		"hosts_active": 12,
	}
	req := httptest.NewRequest(http.MethodPost, "/api/stats/weekly", jsonBody(t, payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 512, recorded.Sandwiches)
	assert.Equal(t, time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), recorded.WeekStart)
}

func TestRecordWeeklyStats_BadDate(t *testing.T) {
	h := newRouter(nil, nil, nil, &mockStatsServicer{})

	payload := map[string]any{"week_start": "17/02/2025", "sandwiches": 512}
	req := httptest.NewRequest(http.MethodPost, "/api/stats/weekly", jsonBody(t, payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Contains(t, body.Error.Message, "week_start")
}

func TestRecordWeeklyStats_ValidationError(t *testing.T) {
	h := newRouter(nil, nil, nil, &mockStatsServicer{
		recordWeek: func(_ context.Context, _ domain.WeeklyStat) (domain.WeeklyStat, error) {
			return domain.WeeklyStat{}, fmt.Errorf("%w: counts must not be negative", domain.ErrValidation)
		},
	})

	payload := map[string]any{"week_start": "2025-02-17", "sandwiches": -1}
	req := httptest.NewRequest(http.MethodPost, "/api/stats/weekly", jsonBody(t, payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
}

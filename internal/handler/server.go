// Package handler implements the HTTP handlers for the host locator API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (host.go, locator.go, calendar.go, stats.go, health.go) but all share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/service"
)

// HostServicer defines the admin business operations the host handler depends
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type HostServicer interface {
	Create(ctx context.Context, host domain.Host, actor string) (domain.Host, error)
	GetByID(ctx context.Context, id int64) (domain.Host, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Host, int64, error)
	Update(ctx context.Context, host domain.Host, actor string) (domain.Host, error)
	Delete(ctx context.Context, id int64, actor string) error
	Changes(ctx context.Context, hostID int64) ([]domain.HostChange, error)
}

// LocatorServicer defines the volunteer-facing search operation.
type LocatorServicer interface {
	Search(ctx context.Context, c service.SearchCriteria) ([]domain.Host, error)
}

// CalendarServicer builds the downloadable event for a host.
type CalendarServicer interface {
	EventForHost(ctx context.Context, hostID int64, baseDate time.Time) (domain.CalendarEvent, error)
}

// StatsServicer serves the analytics dashboard data.
type StatsServicer interface {
	Weekly(ctx context.Context) ([]domain.WeeklyStat, error)
	RecordWeek(ctx context.Context, stat domain.WeeklyStat) (domain.WeeklyStat, error)
}

// Server holds the service dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	hosts    HostServicer
	locator  LocatorServicer
	calendar CalendarServicer
	stats    StatsServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(hosts HostServicer, locator LocatorServicer, calendar CalendarServicer, stats StatsServicer) *Server {
	return &Server{hosts: hosts, locator: locator, calendar: calendar, stats: stats}
}

// Routes mounts every endpoint on a fresh chi router. Middleware is applied
// by the caller (main.go) so tests can exercise routes without it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hosts", s.SearchHosts)
		r.Post("/hosts", s.CreateHost)
		r.Get("/hosts/all", s.ListHosts)
		r.Get("/hosts/{id}", s.GetHost)
		r.Put("/hosts/{id}", s.UpdateHost)
		r.Delete("/hosts/{id}", s.DeleteHost)
		r.Get("/hosts/{id}/changes", s.ListHostChanges)
		r.Get("/hosts/{id}/event.ics", s.DownloadHostEvent)
		r.Get("/stats/weekly", s.GetWeeklyStats)
		r.Post("/stats/weekly", s.RecordWeeklyStats)
	})

	return r
}

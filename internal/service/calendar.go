package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/repo"
	"github.com/sandwichproject/host-locator/internal/schedule"
)

// CalendarService builds downloadable calendar events for hosts.
type CalendarService struct {
	hosts    repo.HostRepo
	timezone string
	now      func() time.Time
}

// NewCalendarService constructs a CalendarService. An empty timezone selects
// schedule.DefaultTimezone; a nil now selects time.Now — tests inject a fixed
// clock there.
func NewCalendarService(hosts repo.HostRepo, timezone string, now func() time.Time) *CalendarService {
	if timezone == "" {
		timezone = schedule.DefaultTimezone
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarService{hosts: hosts, timezone: timezone, now: now}
}

// EventForHost loads the host and builds its calendar event. A zero baseDate
// means "next Wednesday from now".
// Returns domain.ErrNotFound if the host does not exist.
func (s *CalendarService) EventForHost(ctx context.Context, hostID int64, baseDate time.Time) (domain.CalendarEvent, error) {
	host, err := s.hosts.GetByID(ctx, hostID)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.CalendarService.EventForHost: %w", err)
	}

	ev, err := schedule.BuildCalendarEvent(&host, schedule.Options{
		BaseDate: baseDate,
		Timezone: s.timezone,
		Now:      s.now,
	})
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("service.CalendarService.EventForHost: %w", err)
	}
	return ev, nil
}

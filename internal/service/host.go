// Package service contains the business logic for the host locator API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/geo"
	"github.com/sandwichproject/host-locator/internal/repo"
)

// hhmmPattern matches the "HH:MM" 24-hour strings accepted on the admin
// write path. Read paths never reject malformed times; they degrade instead.
var hhmmPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// HostService implements business logic for Host admin operations.
// It holds the change repo as well so every mutation leaves an audit entry.
type HostService struct {
	hosts   repo.HostRepo
	changes repo.ChangeRepo
}

// NewHostService constructs a HostService backed by the provided repos.
func NewHostService(hosts repo.HostRepo, changes repo.ChangeRepo) *HostService {
	return &HostService{hosts: hosts, changes: changes}
}

// Create validates and persists a new host, recording an audit entry.
// Returns domain.ErrValidation if input violates business rules.
func (s *HostService) Create(ctx context.Context, host domain.Host, actor string) (domain.Host, error) {
	if err := validateHost(host); err != nil {
		return domain.Host{}, err
	}
	result, err := s.hosts.Create(ctx, host)
	if err != nil {
		return domain.Host{}, fmt.Errorf("service.HostService.Create: %w", err)
	}
	s.record(ctx, result.ID, domain.ChangeCreated, actor)
	return result, nil
}

// GetByID returns a single host by ID.
// Returns domain.ErrNotFound if no host with that ID exists.
func (s *HostService) GetByID(ctx context.Context, id int64) (domain.Host, error) {
	result, err := s.hosts.GetByID(ctx, id)
	if err != nil {
		return domain.Host{}, fmt.Errorf("service.HostService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of hosts and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *HostService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Host, int64, error) {
	hosts, total, err := s.hosts.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.HostService.ListPaged: %w", err)
	}
	if hosts == nil {
		hosts = []domain.Host{}
	}
	return hosts, total, nil
}

// Update validates and persists changes to an existing host, recording an
// audit entry. Returns domain.ErrValidation for invalid input,
// domain.ErrNotFound if the host does not exist.
func (s *HostService) Update(ctx context.Context, host domain.Host, actor string) (domain.Host, error) {
	if err := validateHost(host); err != nil {
		return domain.Host{}, err
	}
	result, err := s.hosts.Update(ctx, host)
	if err != nil {
		return domain.Host{}, fmt.Errorf("service.HostService.Update: %w", err)
	}
	s.record(ctx, result.ID, domain.ChangeUpdated, actor)
	return result, nil
}

// Delete removes a host by ID, recording an audit entry.
// Returns domain.ErrNotFound if the host does not exist.
func (s *HostService) Delete(ctx context.Context, id int64, actor string) error {
	if err := s.hosts.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.HostService.Delete: %w", err)
	}
	s.record(ctx, id, domain.ChangeDeleted, actor)
	return nil
}

// Changes returns the audit trail for a host, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *HostService) Changes(ctx context.Context, hostID int64) ([]domain.HostChange, error) {
	changes, err := s.changes.ListByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("service.HostService.Changes: %w", err)
	}
	if changes == nil {
		changes = []domain.HostChange{}
	}
	return changes, nil
}

// record appends an audit entry. Audit failures are swallowed: the host
// mutation already committed and must not be reported as failed.
func (s *HostService) record(ctx context.Context, hostID int64, action, actor string) {
	if actor == "" {
		actor = "admin"
	}
	_, _ = s.changes.Record(ctx, domain.HostChange{HostID: hostID, Action: action, Actor: actor})
}

// validateHost enforces business rules common to both Create and Update.
//   - Name and Area must be non-empty (whitespace-only values are rejected).
//   - Coordinates must fall in the WGS84 ranges. The read-side geo utilities
//     never validate, so this is the only gate keeping garbage out of ranking.
//   - Scheduling fields, when present, must be "HH:MM".
func validateHost(host domain.Host) error {
	if strings.TrimSpace(host.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(host.Area) == "" {
		return fmt.Errorf("%w: area is required", domain.ErrValidation)
	}
	if !geo.ValidLatLng(host.Lat, host.Lng) {
		return fmt.Errorf("%w: lat must be in [-90, 90] and lng in [-180, 180]", domain.ErrValidation)
	}
	for field, value := range map[string]string{
		"open_time":           host.OpenTime,
		"close_time":          host.CloseTime,
		"thursday_open_time":  host.ThursdayOpenTime,
		"thursday_close_time": host.ThursdayCloseTime,
	} {
		if value != "" && !hhmmPattern.MatchString(value) {
			return fmt.Errorf("%w: %s must be HH:MM", domain.ErrValidation, field)
		}
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/sandwichproject/host-locator/internal/domain"
	"github.com/sandwichproject/host-locator/internal/geo"
	"github.com/sandwichproject/host-locator/internal/repo"
)

// Geocoder resolves a free-text address to coordinates. Defined here, in the
// consumer package, so locator tests can inject a fake without running an
// HTTP round trip.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lng float64, err error)
}

// SearchCriteria carries the volunteer's locator query.
// When Lat/Lng are nil and Address is non-empty, the address is geocoded.
// With neither, results are unranked (no distance annotation).
type SearchCriteria struct {
	Lat                *float64
	Lng                *float64
	Address            string
	Area               string
	Query              string
	IncludeUnavailable bool
}

// LocatorService produces the ranked, filtered host view volunteers see.
type LocatorService struct {
	hosts    repo.HostRepo
	geocoder Geocoder
}

// NewLocatorService constructs a LocatorService. geocoder may be nil when
// address search is not wired (coordinate search still works).
func NewLocatorService(hosts repo.HostRepo, geocoder Geocoder) *LocatorService {
	return &LocatorService{hosts: hosts, geocoder: geocoder}
}

// Search loads the host collection and applies the filters in a fixed order:
// availability, then area, then proximity ranking, then text search last.
// Order matters for which hosts survive combined criteria.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LocatorService) Search(ctx context.Context, c SearchCriteria) ([]domain.Host, error) {
	hosts, err := s.hosts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LocatorService.Search: %w", err)
	}

	hosts = geo.FilterAvailable(hosts, c.IncludeUnavailable)
	hosts = geo.FilterArea(hosts, c.Area)

	lat, lng, ranked, err := s.resolveOrigin(ctx, c)
	if err != nil {
		return nil, err
	}
	if ranked {
		hosts = geo.RankByDistance(hosts, lat, lng)
	}

	hosts = geo.FilterText(hosts, c.Query)

	if hosts == nil {
		hosts = []domain.Host{}
	}
	return hosts, nil
}

// resolveOrigin picks the ranking origin: explicit coordinates win, then a
// geocoded address. ranked is false when the caller supplied neither.
func (s *LocatorService) resolveOrigin(ctx context.Context, c SearchCriteria) (lat, lng float64, ranked bool, err error) {
	if c.Lat != nil && c.Lng != nil {
		return *c.Lat, *c.Lng, true, nil
	}
	if c.Address == "" || s.geocoder == nil {
		return 0, 0, false, nil
	}
	lat, lng, err = s.geocoder.Geocode(ctx, c.Address)
	if err != nil {
		return 0, 0, false, fmt.Errorf("service.LocatorService.Search: geocode: %w", err)
	}
	return lat, lng, true, nil
}

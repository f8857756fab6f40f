// Package geo holds the pure distance and ranking utilities for the host
// locator: great-circle distance between two coordinates and derived
// sorting/filtering of a host collection.
//
// Nothing here validates coordinates — a malformed host yields a numerically
// meaningless but well-typed distance. ValidLatLng documents the accepted
// ranges for callers that do want to enforce them.
package geo

import (
	"math"
	"slices"
	"strings"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// earthRadiusMiles is the spherical Earth radius used by the haversine
// formula. Distances are reported in miles.
const earthRadiusMiles = 3959.0

// AllAreas is the area-filter sentinel that disables area matching.
const AllAreas = "all"

// Distance computes the great-circle distance in miles between two points
// using the haversine formula, rounded to one decimal place.
// It is symmetric and returns 0 for identical points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusMiles*c*10) / 10
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// ValidLatLng reports whether lat and lng are finite and inside the WGS84
// ranges (lat ∈ [-90, 90], lng ∈ [-180, 180]). The distance and ranking
// functions deliberately do not call this; the admin write path does.
func ValidLatLng(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// RankByDistance returns a new slice with every host annotated with its
// distance from the origin, sorted ascending. The sort is stable, so
// equal-distance hosts keep their original relative order. The input slice
// and its records are not modified.
func RankByDistance(hosts []domain.Host, originLat, originLng float64) []domain.Host {
	ranked := make([]domain.Host, len(hosts))
	for i, h := range hosts {
		d := Distance(originLat, originLng, h.Lat, h.Lng)
		h.Distance = &d
		ranked[i] = h
	}
	slices.SortStableFunc(ranked, func(a, b domain.Host) int {
		switch {
		case *a.Distance < *b.Distance:
			return -1
		case *a.Distance > *b.Distance:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// FilterAvailable retains only hosts currently accepting drop-offs.
// Pass includeUnavailable=true to keep paused hosts for forward planning.
func FilterAvailable(hosts []domain.Host, includeUnavailable bool) []domain.Host {
	if includeUnavailable {
		return hosts
	}
	out := []domain.Host{}
	for _, h := range hosts {
		if h.Available {
			out = append(out, h)
		}
	}
	return out
}

// FilterArea retains hosts whose Area matches exactly. The AllAreas sentinel
// (or an empty selector) passes everything through.
func FilterArea(hosts []domain.Host, area string) []domain.Host {
	if area == "" || area == AllAreas {
		return hosts
	}
	out := []domain.Host{}
	for _, h := range hosts {
		if h.Area == area {
			out = append(out, h)
		}
	}
	return out
}

// FilterText retains hosts whose name, area, or neighborhood contains the
// needle, case-insensitively. An empty needle passes everything through.
// When multiple criteria apply, text search runs last in the locator's
// filter composition.
func FilterText(hosts []domain.Host, needle string) []domain.Host {
	if needle == "" {
		return hosts
	}
	needle = strings.ToLower(needle)
	out := []domain.Host{}
	for _, h := range hosts {
		if strings.Contains(strings.ToLower(h.Name), needle) ||
			strings.Contains(strings.ToLower(h.Area), needle) ||
			(h.Neighborhood != "" && strings.Contains(strings.ToLower(h.Neighborhood), needle)) {
			out = append(out, h)
		}
	}
	return out
}

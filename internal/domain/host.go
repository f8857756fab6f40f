// Package domain contains the core data types for the sandwich host locator.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (geo, schedule, repo, service, handler).
package domain

import "time"

// Host represents a drop-off location where volunteers deliver sandwiches
// on a recurring schedule.
//
// Lat is expected to fall in [-90, 90] and Lng in [-180, 180]. The geo
// utilities do not enforce these ranges — a malformed host simply yields a
// nonsensical distance — but the admin write path validates them so bad rows
// never reach the ranking code.
type Host struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Area         string `json:"area"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Phone        string `json:"phone,omitempty"`
	// Hours is a free-text display string (e.g. "Wednesdays 9am-5pm").
	Hours string `json:"hours,omitempty"`
	Notes string `json:"notes,omitempty"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	// OpenTime and CloseTime are "HH:MM" 24-hour strings for the primary
	// collection day. The Thursday fields override them for the secondary day.
	// Malformed values never fail a caller; they fall back to defaults.
	OpenTime          string `json:"open_time,omitempty"`
	CloseTime         string `json:"close_time,omitempty"`
	ThursdayOpenTime  string `json:"thursday_open_time,omitempty"`
	ThursdayCloseTime string `json:"thursday_close_time,omitempty"`

	// Available reports whether the host accepts drop-offs this cycle.
	Available bool `json:"available"`

	// Distance is derived, never stored: miles from a caller-supplied origin,
	// rounded to one decimal. Nil until a ranking operation annotates it.
	Distance *float64 `json:"distance,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

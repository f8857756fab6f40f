package domain

import "time"

// WeeklyStat is one week of collection totals for the analytics dashboard.
// WeekStart is the Monday of the week, date-only.
type WeeklyStat struct {
	WeekStart   time.Time `json:"week_start"`
	Sandwiches  int       `json:"sandwiches"`
	Volunteers  int       `json:"volunteers"`
	HostsActive int       `json:"hosts_active"`
}

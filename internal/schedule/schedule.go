// Package schedule holds the pure date/time utilities for collection-day
// scheduling: next-Wednesday computation, 12-hour display formatting, and
// composing a date with an "HH:MM" time-of-day. All functions are
// deterministic given their inputs; nothing here reads the ambient clock.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// collectionDay is the primary weekly collection day.
const collectionDay = time.Wednesday

// NextWednesday returns the calendar day of the next Wednesday on or after
// ref, truncated to midnight in ref's location. If ref already falls on a
// Wednesday, that same day is returned — not a week forward.
func NextWednesday(ref time.Time) time.Time {
	offset := (int(collectionDay) - int(ref.Weekday()) + 7) % 7
	d := ref.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// FormatTime12h renders a "HH:MM" 24-hour string as a compact 12-hour display
// string: "13:30" → "1:30pm", "09:00" → "9am". The leading zero on the hour
// is dropped and ":00" minutes are elided; the am/pm suffix is lowercase with
// no space.
//
// Anything that does not parse — including the empty string — is returned
// unchanged, signaling "could not format" without ever failing the caller.
func FormatTime12h(t24 string) string {
	hourStr, minStr, ok := strings.Cut(t24, ":")
	if !ok {
		return t24
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return t24
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return t24
	}

	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}

	if minute == 0 {
		return fmt.Sprintf("%d%s", display, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, suffix)
}

// ComposeDateTime combines base's calendar day with the time-of-day parsed
// from hhmm, with seconds and sub-second set to zero. An empty hhmm applies
// defHour/defMin directly. Fallback is per-field: a valid hour with an
// unparsable minute keeps the hour and defaults only the minute.
func ComposeDateTime(base time.Time, hhmm string, defHour, defMin int) time.Time {
	hour, minute := defHour, defMin
	if hhmm != "" {
		hourStr, minStr, _ := strings.Cut(hhmm, ":")
		if h, err := strconv.Atoi(hourStr); err == nil {
			hour = h
		}
		if m, err := strconv.Atoi(minStr); err == nil {
			minute = m
		}
	}
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
}

package domain

import "time"

// CalendarEvent is the ephemeral artifact produced for a host's next
// collection day. It has no identity and is never persisted — it is built
// fresh on each request and handed straight to the caller for download.
type CalendarEvent struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	// Timezone is the IANA identifier the DTSTART/DTEND values are local to.
	Timezone string `json:"timezone"`
	// ICSContent is a literal RFC 5545 text payload with CRLF line endings.
	ICSContent string `json:"ics_content"`
	// FileName is the suggested download name, including the .ics extension.
	FileName string `json:"file_name"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Change actions recorded in the host audit trail.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// HostChange is one entry in the admin audit trail. Entries outlive the host
// they describe — HostID is not a foreign key, so deleting a host keeps its
// history intact.
type HostChange struct {
	ID        uuid.UUID `json:"id"`
	HostID    int64     `json:"host_id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	ChangedAt time.Time `json:"changed_at"`
}

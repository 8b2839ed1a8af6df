package audit

import "time"

// Event is an immutable, append-only record of a load mutation.
//
// Invariants:
// - Events are never updated or deleted.
// - Recording is best-effort; a failed append must not fail the mutation.
type Event struct {
	ID string `json:"id" db:"id"`

	// Action is created, updated or deleted.
	Action string `json:"action" db:"action"`

	// Channel is the write path that caused the mutation (manual or url_api).
	// Empty for deletes, which carry no channel.
	Channel string `json:"channel,omitempty" db:"channel"`

	// ShipmentID is the internal id of the affected load; LoadID the
	// human-facing one at mutation time (loads keep history readable after a
	// rename or delete).
	ShipmentID string `json:"shipment_id" db:"shipment_id"`
	LoadID     string `json:"load_id" db:"load_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package entities

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionBulkDelete Action = "bulk_delete"
)

// AuditLog is one administrative mutation, immutable once written.
// Snapshots are kept as raw JSON so this service stays independent of the
// pledge record shape.
type AuditLog struct {
	ID           string          `json:"id"`
	Action       Action          `json:"action"`
	PledgeID     string          `json:"pledgeId,omitempty"`
	PreviousData json.RawMessage `json:"previousData,omitempty"`
	NewData      json.RawMessage `json:"newData,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

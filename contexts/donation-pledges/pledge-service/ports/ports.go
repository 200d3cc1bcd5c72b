package ports

import (
	"context"
	"time"

	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
)

// PledgeRepository owns the pledges/ and sessions/ key namespaces. No
// caller holds long-lived pledge references; every access re-fetches.
type PledgeRepository interface {
	// Create writes the pledge record and the session index entry in one
	// atomic commit; partial state is never observable.
	Create(ctx context.Context, pledge entities.Pledge) error

	// Save overwrites an existing pledge record. The session index is
	// untouched: updates change record content, not the index.
	Save(ctx context.Context, pledge entities.Pledge) error

	GetByID(ctx context.Context, id string) (entities.Pledge, error)

	// GetBySession resolves the session index and then the record. An
	// orphaned index entry (record missing) reports found=false.
	GetBySession(ctx context.Context, sessionID string) (entities.Pledge, bool, error)

	// ListAll iterates the full pledge namespace. Key order carries no
	// meaning; callers that need ordering sort explicitly.
	ListAll(ctx context.Context) ([]entities.Pledge, error)

	Delete(ctx context.Context, id string) error

	// Purge removes the pledges/ and sessions/ namespaces. The audit
	// namespace belongs to the audit service and survives.
	Purge(ctx context.Context) error
}

// AuditRecorder captures administrative mutations. Snapshots are marshaled
// by the implementation; nil means no snapshot for that side.
type AuditRecorder interface {
	Record(ctx context.Context, action string, pledgeID string, previous, next any) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

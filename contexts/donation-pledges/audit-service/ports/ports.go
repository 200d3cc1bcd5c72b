package ports

import (
	"context"
	"time"

	"pledgewall/contexts/donation-pledges/audit-service/domain/entities"
)

// AuditRepository owns the audit/ key namespace. Entries are append-only;
// there is no update or delete.
type AuditRepository interface {
	Append(ctx context.Context, entry entities.AuditLog) error
	ListAll(ctx context.Context) ([]entities.AuditLog, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

package ports

import (
	"context"

	auditentities "pledgewall/contexts/donation-pledges/audit-service/domain/entities"
	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
)

// PledgeSource is the read-only listing capability the dashboard needs.
type PledgeSource interface {
	ListAll(ctx context.Context) ([]entities.Pledge, error)
}

// AuditSource lists recent audit entries for the dashboard footer.
type AuditSource interface {
	ListRecent(ctx context.Context, limit int) ([]auditentities.AuditLog, error)
}

package queries

import (
	"context"
	"strings"

	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
	"pledgewall/contexts/donation-pledges/pledge-service/ports"
)

// PledgeQueries is the read side of the pledge service.
type PledgeQueries struct {
	Pledges ports.PledgeRepository
}

func (q PledgeQueries) GetBySession(ctx context.Context, sessionID string) (entities.Pledge, bool, error) {
	return q.Pledges.GetBySession(ctx, strings.TrimSpace(sessionID))
}

func (q PledgeQueries) GetByID(ctx context.Context, id string) (entities.Pledge, error) {
	return q.Pledges.GetByID(ctx, strings.TrimSpace(id))
}

func (q PledgeQueries) ListAll(ctx context.Context) ([]entities.Pledge, error) {
	return q.Pledges.ListAll(ctx)
}

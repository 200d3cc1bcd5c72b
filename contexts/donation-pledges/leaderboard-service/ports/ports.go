package ports

import (
	"context"

	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
)

// PledgeSource is the read-only listing capability the leaderboard needs
// from the pledge service. The leaderboard never writes.
type PledgeSource interface {
	ListAll(ctx context.Context) ([]entities.Pledge, error)
}

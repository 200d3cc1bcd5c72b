package application

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"pledgewall/contexts/donation-pledges/leaderboard-service/ports"
	pledgequeries "pledgewall/contexts/donation-pledges/pledge-service/application/queries"
	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
)

// Snapshot is one leaderboard state: the top donors by amount plus the
// campaign total over the whole latest-per-donor set.
type Snapshot struct {
	Pledges     []entities.Pledge `json:"pledges"`
	TotalAmount int64             `json:"totalAmount"`
}

// Feed computes leaderboard snapshots and drives the live stream. Every
// snapshot re-reads the store; no state is cached between ticks.
type Feed struct {
	Pledges  ports.PledgeSource
	Limit    int
	Interval time.Duration
	Logger   *slog.Logger
}

// Snapshot ranks the latest-per-donor set by amount descending. Ties order
// by earlier timestamp, then smaller id, so the output is deterministic for
// a given store state.
func (f Feed) Snapshot(ctx context.Context) (Snapshot, error) {
	all, err := f.Pledges.ListAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	latest := pledgequeries.LatestPerDonor(all)
	sort.Slice(latest, func(i, j int) bool {
		if latest[i].Amount != latest[j].Amount {
			return latest[i].Amount > latest[j].Amount
		}
		if !latest[i].Timestamp.Equal(latest[j].Timestamp) {
			return latest[i].Timestamp.Before(latest[j].Timestamp)
		}
		return latest[i].ID < latest[j].ID
	})

	var total int64
	for _, pledge := range latest {
		total += pledge.Amount
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(latest) > limit {
		latest = latest[:limit]
	}
	return Snapshot{
		Pledges:     latest,
		TotalAmount: total,
	}, nil
}

// Run pushes a snapshot immediately and then once per interval until ctx
// is cancelled (the client disconnected) or push fails (the client write
// broke). The ticker lives and dies with this call; nothing keeps running
// for an abandoned connection. A failed snapshot computation only skips
// that tick.
func (f Feed) Run(ctx context.Context, push func(Snapshot) error) error {
	interval := f.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := f.pushOnce(ctx, push); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := f.pushOnce(ctx, push); err != nil {
				return err
			}
		}
	}
}

func (f Feed) pushOnce(ctx context.Context, push func(Snapshot) error) error {
	snapshot, err := f.Snapshot(ctx)
	if err != nil {
		logger := f.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("leaderboard refresh failed, skipping tick",
			"event", "leaderboard_refresh_failed",
			"module", "donation-pledges/leaderboard-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil
	}
	return push(snapshot)
}

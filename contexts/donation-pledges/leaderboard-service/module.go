package leaderboardservice

import (
	"log/slog"
	"time"

	"pledgewall/contexts/donation-pledges/leaderboard-service/application"
	"pledgewall/contexts/donation-pledges/leaderboard-service/ports"
)

type Module struct {
	Feed application.Feed
}

type Dependencies struct {
	Pledges  ports.PledgeSource
	Limit    int
	Interval time.Duration
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Feed: application.Feed{
			Pledges:  deps.Pledges,
			Limit:    deps.Limit,
			Interval: deps.Interval,
			Logger:   deps.Logger,
		},
	}
}

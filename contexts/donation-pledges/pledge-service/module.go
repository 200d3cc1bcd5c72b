package pledgeservice

import (
	"log/slog"

	kvadapter "pledgewall/contexts/donation-pledges/pledge-service/adapters/kv"
	"pledgewall/contexts/donation-pledges/pledge-service/application/commands"
	"pledgewall/contexts/donation-pledges/pledge-service/application/queries"
	"pledgewall/contexts/donation-pledges/pledge-service/ports"
	"pledgewall/internal/platform/kv"
)

type Module struct {
	Submit  commands.SubmitPledgeUseCase
	Admin   commands.AdminUseCase
	Queries queries.PledgeQueries
	Repo    ports.PledgeRepository
}

type Dependencies struct {
	Pledges ports.PledgeRepository
	Audit   ports.AuditRecorder
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Submit: commands.SubmitPledgeUseCase{
			Pledges: deps.Pledges,
			Clock:   deps.Clock,
			IDGen:   deps.IDGen,
			Logger:  deps.Logger,
		},
		Admin: commands.AdminUseCase{
			Pledges: deps.Pledges,
			Audit:   deps.Audit,
			Clock:   deps.Clock,
			Logger:  deps.Logger,
		},
		Queries: queries.PledgeQueries{
			Pledges: deps.Pledges,
		},
		Repo: deps.Pledges,
	}
}

// NewKVModule wires the module against a kv store with the default clock
// and uuid id generator.
func NewKVModule(store kv.Store, audit ports.AuditRecorder, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Pledges: kvadapter.NewRepository(store, logger),
		Audit:   audit,
		Clock:   kvadapter.SystemClock{},
		IDGen:   kvadapter.UUIDGenerator{},
		Logger:  logger,
	})
}

package auditservice

import (
	"log/slog"

	kvadapter "pledgewall/contexts/donation-pledges/audit-service/adapters/kv"
	"pledgewall/contexts/donation-pledges/audit-service/application"
	"pledgewall/contexts/donation-pledges/audit-service/ports"
	"pledgewall/internal/platform/kv"
)

type Module struct {
	Service application.Service
}

type Dependencies struct {
	Repo   ports.AuditRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{
			Repo:   deps.Repo,
			Clock:  deps.Clock,
			IDGen:  deps.IDGen,
			Logger: deps.Logger,
		},
	}
}

// NewKVModule wires the module against a kv store with the default clock
// and uuid id generator.
func NewKVModule(store kv.Store, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Repo:   kvadapter.NewRepository(store, logger),
		Clock:  kvadapter.SystemClock{},
		IDGen:  kvadapter.UUIDGenerator{},
		Logger: logger,
	})
}

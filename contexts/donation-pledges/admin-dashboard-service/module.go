package admindashboardservice

import (
	"log/slog"

	"pledgewall/contexts/donation-pledges/admin-dashboard-service/application"
	"pledgewall/contexts/donation-pledges/admin-dashboard-service/ports"
)

type Module struct {
	Service application.Service
}

type Dependencies struct {
	Pledges    ports.PledgeSource
	Audit      ports.AuditSource
	AuditLimit int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Service: application.Service{
			Pledges:    deps.Pledges,
			Audit:      deps.Audit,
			AuditLimit: deps.AuditLimit,
			Logger:     deps.Logger,
		},
	}
}

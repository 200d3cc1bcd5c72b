package application

import (
	"context"
	"log/slog"

	"pledgewall/contexts/donation-pledges/admin-dashboard-service/ports"
	auditentities "pledgewall/contexts/donation-pledges/audit-service/domain/entities"
)

// Dashboard is everything the admin page renders in one pass.
type Dashboard struct {
	Report
	AuditLogs []auditentities.AuditLog
}

// Service assembles the admin dashboard. Read failures degrade to an
// empty section rather than failing the whole page: a broken audit trail
// must not hide the pledge table and vice versa.
type Service struct {
	Pledges    ports.PledgeSource
	Audit      ports.AuditSource
	AuditLimit int
	Logger     *slog.Logger
}

func (s Service) Dashboard(ctx context.Context, filter Filter) Dashboard {
	dashboard := Dashboard{}

	all, err := s.Pledges.ListAll(ctx)
	if err != nil {
		s.logError("admin_pledge_list_failed", err)
		all = nil
	}
	dashboard.Report = BuildReport(all, filter)

	logs, err := s.Audit.ListRecent(ctx, s.AuditLimit)
	if err != nil {
		s.logError("admin_audit_list_failed", err)
		logs = nil
	}
	dashboard.AuditLogs = logs

	return dashboard
}

func (s Service) logError(event string, err error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("admin dashboard read degraded",
		"event", event,
		"module", "donation-pledges/admin-dashboard-service",
		"layer", "application",
		"error", err.Error(),
	)
}

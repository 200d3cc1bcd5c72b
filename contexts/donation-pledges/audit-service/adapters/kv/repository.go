package kvadapter

import (
	"context"
	"encoding/json"
	"log/slog"

	"pledgewall/contexts/donation-pledges/audit-service/domain/entities"
	"pledgewall/contexts/donation-pledges/audit-service/ports"
	"pledgewall/internal/platform/kv"
)

const auditPrefix = "audit/"

type Repository struct {
	store  kv.Store
	logger *slog.Logger
}

func NewRepository(store kv.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		store:  store,
		logger: logger,
	}
}

func (r *Repository) Append(ctx context.Context, entry entities.AuditLog) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return r.logError("audit_repo_append_marshal_failed", err, "audit_id", entry.ID)
	}
	if err := r.store.Set(ctx, kv.Key("audit", entry.ID), payload); err != nil {
		return r.logError("audit_repo_append_failed", err, "audit_id", entry.ID)
	}
	return nil
}

func (r *Repository) ListAll(ctx context.Context) ([]entities.AuditLog, error) {
	rows, err := r.store.List(ctx, auditPrefix)
	if err != nil {
		return nil, r.logError("audit_repo_list_failed", err)
	}
	items := make([]entities.AuditLog, 0, len(rows))
	for _, row := range rows {
		var entry entities.AuditLog
		if err := json.Unmarshal(row.Value, &entry); err != nil {
			r.logger.Warn("skipping undecodable audit record",
				"event", "audit_repo_list_decode_skipped",
				"module", "donation-pledges/audit-service",
				"layer", "adapter",
				"key", row.Key,
				"error", err.Error(),
			)
			continue
		}
		items = append(items, entry)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "donation-pledges/audit-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("audit repository operation failed", fields...)
	return err
}

var _ ports.AuditRepository = (*Repository)(nil)

package kvadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
	domainerrors "pledgewall/contexts/donation-pledges/pledge-service/domain/errors"
	"pledgewall/contexts/donation-pledges/pledge-service/ports"
	"pledgewall/internal/platform/kv"
)

const (
	pledgePrefix  = "pledges/"
	sessionPrefix = "sessions/"
)

// Repository stores pledge records and the session index as JSON values in
// the kv store, under pledges/{id} and sessions/{sessionId}.
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

func (r *Repository) Create(ctx context.Context, pledge entities.Pledge) error {
	payload, err := json.Marshal(pledge)
	if err != nil {
		return r.logError("pledge_repo_create_marshal_failed", err, "pledge_id", pledge.ID)
	}
	ops := []kv.Op{
		kv.SetOp(pledgeKey(pledge.ID), payload),
		kv.SetOp(sessionKey(pledge.SessionID), []byte(pledge.ID)),
	}
	if err := r.store.Commit(ctx, ops); err != nil {
		return r.logError("pledge_repo_create_commit_failed", err,
			"pledge_id", pledge.ID,
			"session_id", pledge.SessionID,
		)
	}
	return nil
}

func (r *Repository) Save(ctx context.Context, pledge entities.Pledge) error {
	payload, err := json.Marshal(pledge)
	if err != nil {
		return r.logError("pledge_repo_save_marshal_failed", err, "pledge_id", pledge.ID)
	}
	if err := r.store.Set(ctx, pledgeKey(pledge.ID), payload); err != nil {
		return r.logError("pledge_repo_save_failed", err, "pledge_id", pledge.ID)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (entities.Pledge, error) {
	value, found, err := r.store.Get(ctx, pledgeKey(strings.TrimSpace(id)))
	if err != nil {
		return entities.Pledge{}, r.logError("pledge_repo_get_failed", err, "pledge_id", id)
	}
	if !found {
		return entities.Pledge{}, domainerrors.ErrPledgeNotFound
	}
	var pledge entities.Pledge
	if err := json.Unmarshal(value, &pledge); err != nil {
		return entities.Pledge{}, r.logError("pledge_repo_get_decode_failed", err, "pledge_id", id)
	}
	return pledge, nil
}

func (r *Repository) GetBySession(ctx context.Context, sessionID string) (entities.Pledge, bool, error) {
	value, found, err := r.store.Get(ctx, sessionKey(strings.TrimSpace(sessionID)))
	if err != nil {
		return entities.Pledge{}, false, r.logError("pledge_repo_session_lookup_failed", err,
			"session_id", sessionID,
		)
	}
	if !found {
		return entities.Pledge{}, false, nil
	}

	pledge, err := r.GetByID(ctx, string(value))
	if err != nil {
		// Orphaned index entries count as absent, not as failures.
		if err == domainerrors.ErrPledgeNotFound {
			return entities.Pledge{}, false, nil
		}
		return entities.Pledge{}, false, err
	}
	return pledge, true, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]entities.Pledge, error) {
	rows, err := r.store.List(ctx, pledgePrefix)
	if err != nil {
		return nil, r.logError("pledge_repo_list_failed", err)
	}
	items := make([]entities.Pledge, 0, len(rows))
	for _, row := range rows {
		var pledge entities.Pledge
		if err := json.Unmarshal(row.Value, &pledge); err != nil {
			// A single corrupt record must not take down aggregation.
			r.logger.Warn("skipping undecodable pledge record",
				"event", "pledge_repo_list_decode_skipped",
				"module", "donation-pledges/pledge-service",
				"layer", "adapter",
				"key", row.Key,
				"error", err.Error(),
			)
			continue
		}
		items = append(items, pledge)
	}
	return items, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, pledgeKey(strings.TrimSpace(id))); err != nil {
		return r.logError("pledge_repo_delete_failed", err, "pledge_id", id)
	}
	return nil
}

func (r *Repository) Purge(ctx context.Context) error {
	for _, prefix := range []string{pledgePrefix, sessionPrefix} {
		rows, err := r.store.List(ctx, prefix)
		if err != nil {
			return r.logError("pledge_repo_purge_list_failed", err, "prefix", prefix)
		}
		if len(rows) == 0 {
			continue
		}
		ops := make([]kv.Op, 0, len(rows))
		for _, row := range rows {
			ops = append(ops, kv.DeleteOp(row.Key))
		}
		if err := r.store.Commit(ctx, ops); err != nil {
			return r.logError("pledge_repo_purge_commit_failed", err, "prefix", prefix)
		}
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "donation-pledges/pledge-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("pledge repository operation failed", fields...)
	return err
}

func pledgeKey(id string) string {
	return kv.Key("pledges", id)
}

func sessionKey(sessionID string) string {
	return kv.Key("sessions", sessionID)
}

var _ ports.PledgeRepository = (*Repository)(nil)

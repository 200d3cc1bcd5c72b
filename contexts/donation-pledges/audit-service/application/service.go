package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"pledgewall/contexts/donation-pledges/audit-service/domain/entities"
	"pledgewall/contexts/donation-pledges/audit-service/ports"
)

// Service records administrative mutations and lists recent ones.
type Service struct {
	Repo   ports.AuditRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Record appends one audit entry. previous/next snapshots may be nil (a
// bulk operation has neither, a delete has no next state). The append is a
// single-key write; durability is fire-and-forget relative to the pledge
// mutation it describes.
func (s Service) Record(ctx context.Context, action string, pledgeID string, previous, next any) error {
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	entry := entities.AuditLog{
		ID:        id,
		Action:    entities.Action(strings.TrimSpace(action)),
		PledgeID:  strings.TrimSpace(pledgeID),
		Timestamp: s.Clock.Now().UTC(),
	}
	if entry.PreviousData, err = marshalSnapshot(previous); err != nil {
		return err
	}
	if entry.NewData, err = marshalSnapshot(next); err != nil {
		return err
	}

	if err := s.Repo.Append(ctx, entry); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("audit entry recorded",
			"event", "audit_entry_recorded",
			"module", "donation-pledges/audit-service",
			"layer", "application",
			"audit_id", entry.ID,
			"action", string(entry.Action),
			"pledge_id", entry.PledgeID,
		)
	}
	return nil
}

// ListRecent returns entries sorted newest first, truncated to limit
// (default 100). A full-namespace scan is fine at campaign data volume.
func (s Service) ListRecent(ctx context.Context, limit int) ([]entities.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	items, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].ID < items[j].ID
		}
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func marshalSnapshot(value any) (json.RawMessage, error) {
	if value == nil {
		return nil, nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

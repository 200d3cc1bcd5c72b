package commands

import (
	"context"
	"log/slog"
	"strings"

	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
	domainerrors "pledgewall/contexts/donation-pledges/pledge-service/domain/errors"
	"pledgewall/contexts/donation-pledges/pledge-service/ports"
)

const (
	auditActionUpdate     = "update"
	auditActionDelete     = "delete"
	auditActionBulkDelete = "bulk_delete"
)

// UpdatePledgeCommand is the admin edit input. Phone and email stay
// immutable here too; only name, organization and amount are editable.
type UpdatePledgeCommand struct {
	PledgeID     string
	Name         string
	Organization string
	Amount       int64
}

// AdminUseCase performs administrative mutations. Each mutation fetches the
// prior record for the audit snapshot, applies the change, then records an
// audit entry. The pledge write and the audit append are two independent
// operations; a crash between them can lose the audit row, an accepted
// window at this data volume.
type AdminUseCase struct {
	Pledges ports.PledgeRepository
	Audit   ports.AuditRecorder
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (uc AdminUseCase) Update(ctx context.Context, cmd UpdatePledgeCommand) (entities.Pledge, error) {
	logger := resolveLogger(uc.Logger)

	id := strings.TrimSpace(cmd.PledgeID)
	name := strings.TrimSpace(cmd.Name)
	if id == "" || name == "" || cmd.Amount <= 0 {
		return entities.Pledge{}, domainerrors.ErrInvalidPledgeInput
	}

	previous, err := uc.Pledges.GetByID(ctx, id)
	if err != nil {
		return entities.Pledge{}, err
	}

	updated := previous
	updated.Name = name
	updated.Organization = strings.TrimSpace(cmd.Organization)
	if cmd.Amount != previous.Amount {
		// Keep the amount/history invariant intact on admin edits as well.
		updated.AppendAmount(cmd.Amount, uc.Clock.Now())
	}

	if err := uc.Pledges.Save(ctx, updated); err != nil {
		return entities.Pledge{}, err
	}
	if err := uc.Audit.Record(ctx, auditActionUpdate, id, previous, updated); err != nil {
		return entities.Pledge{}, err
	}
	logger.Info("pledge updated by admin",
		"event", "pledge_admin_updated",
		"module", "donation-pledges/pledge-service",
		"layer", "application",
		"pledge_id", id,
		"amount", updated.Amount,
	)
	return updated, nil
}

func (uc AdminUseCase) Delete(ctx context.Context, pledgeID string) error {
	logger := resolveLogger(uc.Logger)

	id := strings.TrimSpace(pledgeID)
	if id == "" {
		return domainerrors.ErrInvalidPledgeInput
	}

	previous, err := uc.Pledges.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Pledges.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.Audit.Record(ctx, auditActionDelete, id, previous, nil); err != nil {
		return err
	}
	logger.Info("pledge deleted by admin",
		"event", "pledge_admin_deleted",
		"module", "donation-pledges/pledge-service",
		"layer", "application",
		"pledge_id", id,
	)
	return nil
}

// PurgeAll wipes the pledge and session namespaces. Audit entries survive;
// the wipe itself is recorded as a bulk_delete.
func (uc AdminUseCase) PurgeAll(ctx context.Context) error {
	logger := resolveLogger(uc.Logger)

	if err := uc.Pledges.Purge(ctx); err != nil {
		return err
	}
	if err := uc.Audit.Record(ctx, auditActionBulkDelete, "", nil, nil); err != nil {
		return err
	}
	logger.Info("pledge data purged",
		"event", "pledge_data_purged",
		"module", "donation-pledges/pledge-service",
		"layer", "application",
	)
	return nil
}

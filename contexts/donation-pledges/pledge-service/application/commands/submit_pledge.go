package commands

import (
	"context"
	"log/slog"
	"strings"

	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
	domainerrors "pledgewall/contexts/donation-pledges/pledge-service/domain/errors"
	"pledgewall/contexts/donation-pledges/pledge-service/ports"
)

// SubmitPledgeCommand is the write-model input for the public pledge form.
type SubmitPledgeCommand struct {
	SessionID    string
	Name         string
	Organization string
	Amount       int64
	Phone        string
	Email        string
}

// SubmitPledgeResult carries the final record plus a created/amended marker
// that the transport layer maps to user-facing messaging.
type SubmitPledgeResult struct {
	Pledge  entities.Pledge
	Created bool
}

// SubmitPledgeUseCase creates a session's first pledge or amends its
// existing one. Creation commits the record and the session index
// atomically; amendment appends the new amount to history and never
// touches phone/email, which are the durable donor identity.
type SubmitPledgeUseCase struct {
	Pledges ports.PledgeRepository
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (uc SubmitPledgeUseCase) Submit(ctx context.Context, cmd SubmitPledgeCommand) (SubmitPledgeResult, error) {
	logger := resolveLogger(uc.Logger)

	sessionID := strings.TrimSpace(cmd.SessionID)
	name := strings.TrimSpace(cmd.Name)
	phone := strings.TrimSpace(cmd.Phone)
	email := strings.TrimSpace(cmd.Email)

	if sessionID == "" || name == "" || phone == "" || email == "" || cmd.Amount <= 0 {
		logger.Warn("pledge submit validation failed",
			"event", "pledge_submit_validation_failed",
			"module", "donation-pledges/pledge-service",
			"layer", "application",
			"session_id", sessionID,
		)
		return SubmitPledgeResult{}, domainerrors.ErrInvalidPledgeInput
	}

	now := uc.Clock.Now().UTC()

	existing, found, err := uc.Pledges.GetBySession(ctx, sessionID)
	if err != nil {
		return SubmitPledgeResult{}, err
	}
	if found {
		existing.Name = name
		existing.Organization = strings.TrimSpace(cmd.Organization)
		existing.Timestamp = now
		existing.AppendAmount(cmd.Amount, now)
		if err := uc.Pledges.Save(ctx, existing); err != nil {
			return SubmitPledgeResult{}, err
		}
		logger.Info("pledge amended",
			"event", "pledge_amended",
			"module", "donation-pledges/pledge-service",
			"layer", "application",
			"pledge_id", existing.ID,
			"session_id", sessionID,
			"amount", cmd.Amount,
			"history_len", len(existing.History),
		)
		return SubmitPledgeResult{Pledge: existing}, nil
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitPledgeResult{}, err
	}
	pledge := entities.Pledge{
		ID:           id,
		Name:         name,
		Organization: strings.TrimSpace(cmd.Organization),
		Phone:        phone,
		Email:        email,
		SessionID:    sessionID,
		Timestamp:    now,
	}
	pledge.AppendAmount(cmd.Amount, now)

	if err := uc.Pledges.Create(ctx, pledge); err != nil {
		return SubmitPledgeResult{}, err
	}
	logger.Info("pledge created",
		"event", "pledge_created",
		"module", "donation-pledges/pledge-service",
		"layer", "application",
		"pledge_id", pledge.ID,
		"session_id", sessionID,
		"amount", cmd.Amount,
	)
	return SubmitPledgeResult{Pledge: pledge, Created: true}, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

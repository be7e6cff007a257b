package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
)

// ledgerProjectStore is the slice of the project repository the ledger needs.
type ledgerProjectStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ChangeStatus(ctx context.Context, project *models.Project, entry *models.StatusHistoryEntry) error
}

type ledgerHistoryStore interface {
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.StatusHistoryEntry, error)
}

// Ledger records every status transition of a project as an immutable fact
// and keeps the project's current status consistent with the latest fact.
type Ledger struct {
	projects ledgerProjectStore
	history  ledgerHistoryStore
	now      func() time.Time
	logger   zerolog.Logger
}

func NewLedger(projects ledgerProjectStore, history ledgerHistoryStore) *Ledger {
	return &Ledger{
		projects: projects,
		history:  history,
		now:      time.Now,
		logger:   log.With().Str("service", "ledger").Logger(),
	}
}

// ChangeStatus appends a history entry capturing the transition and mirrors
// the new status (and its observation) onto the project record. Both writes
// happen in one transaction, which also finalizes PreviousStatus from the
// locked project row. Two coordinators racing on the same project both get
// their entry into the ledger and the later one chains off the earlier; the
// project row keeps the status of whichever transaction committed last.
func (l *Ledger) ChangeStatus(ctx context.Context, projectID uuid.UUID, newStatus models.Status, observation string, actorID uuid.UUID) (*models.StatusHistoryEntry, error) {
	if !newStatus.Valid() {
		return nil, errs.NewValidationError("nuevoEstado", "must be one of the five project statuses")
	}
	if observation == "" {
		return nil, errs.NewValidationError("observacion", "observation is required")
	}

	project, err := l.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	entry := &models.StatusHistoryEntry{
		ID:             uuid.New(),
		ProjectID:      project.ID,
		PreviousStatus: project.Status,
		NewStatus:      newStatus,
		Observation:    observation,
		ChangedAt:      l.now(),
		ActorID:        actorID,
	}

	if err := l.projects.ChangeStatus(ctx, project, entry); err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("projectID", project.ID.String()).
		Str("from", string(entry.PreviousStatus)).
		Str("to", string(entry.NewStatus)).
		Str("actorID", actorID.String()).
		Msg("project status changed")

	return entry, nil
}

// ListHistory returns the ledger for a project, most recent first. The
// result is a finite snapshot; callers re-fetch rather than subscribe.
func (l *Ledger) ListHistory(ctx context.Context, projectID uuid.UUID) ([]*models.StatusHistoryEntry, error) {
	if _, err := l.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return l.history.FindByProject(ctx, projectID)
}

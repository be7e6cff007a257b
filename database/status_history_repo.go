package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokaque/proyecto-final-backend/models"
)

// StatusHistoryRepo reads a project's status ledger. The ledger is
// append-only: entries are written through ProjectRepo.ChangeStatus and no
// update or delete method exists.
type StatusHistoryRepo struct {
	db *gorm.DB
}

func NewStatusHistoryRepo(db *gorm.DB) *StatusHistoryRepo {
	return &StatusHistoryRepo{db}
}

// FindByProject returns the ledger for a project, most recent first. The id
// column breaks timestamp ties so the ordering is deterministic across
// re-fetches.
func (r *StatusHistoryRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.StatusHistoryEntry, error) {
	var entries []*models.StatusHistoryEntry
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("changed_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

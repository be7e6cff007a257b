package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
)

type MilestoneRepo struct {
	db *gorm.DB
}

func NewMilestoneRepo(db *gorm.DB) *MilestoneRepo {
	return &MilestoneRepo{db}
}

// FindByProject returns all milestones whose parent reference equals the
// given project id, in insertion order of the backing store.
func (r *MilestoneRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Milestone, error) {
	var milestones []*models.Milestone
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&milestones).Error
	return milestones, err
}

// FindByID returns a milestone by its ID
func (r *MilestoneRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	var milestone models.Milestone
	err := r.db.WithContext(ctx).First(&milestone, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError("milestone")
	}
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// Add inserts a new milestone into the database
func (r *MilestoneRepo) Add(ctx context.Context, milestone *models.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

// Update replaces an existing milestone record
func (r *MilestoneRepo) Update(ctx context.Context, milestone *models.Milestone) error {
	return r.db.WithContext(ctx).Save(milestone).Error
}

// Delete removes a milestone record. Evidence files in object storage are
// left behind; reclamation is out of scope.
func (r *MilestoneRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Milestone{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError("milestone")
	}
	return nil
}

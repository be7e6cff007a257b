package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
)

type milestoneStore interface {
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Milestone, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Milestone, error)
	Add(ctx context.Context, milestone *models.Milestone) error
	Update(ctx context.Context, milestone *models.Milestone) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type milestoneProjectStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// EvidenceFile is an evidence attachment supplied with a milestone create
// or edit.
type EvidenceFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Milestones manages a project's progress entries ("hitos") and their
// uploaded evidence.
type Milestones struct {
	store    milestoneStore
	projects milestoneProjectStore
	uploader Uploader
	logger   zerolog.Logger
}

func NewMilestones(store milestoneStore, projects milestoneProjectStore, uploader Uploader) *Milestones {
	return &Milestones{
		store:    store,
		projects: projects,
		uploader: uploader,
		logger:   log.With().Str("service", "milestones").Logger(),
	}
}

// uploadEvidence stores every file and returns the URLs in input order. The
// uploads run concurrently; the first failure aborts the whole batch. Files
// already stored when a sibling fails stay behind in object storage as
// orphans, which is accepted.
func (m *Milestones) uploadEvidence(ctx context.Context, files []EvidenceFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			key := fmt.Sprintf("hitos/%s-%s", uuid.New(), f.Name)
			url, err := m.uploader.Upload(gctx, key, f.ContentType, f.Content)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// Add uploads the evidence files first and only then writes the milestone
// record referencing every resulting URL. If any upload fails nothing is
// written, so a milestone never ends up with partial evidence.
func (m *Milestones) Add(ctx context.Context, projectID uuid.UUID, title, description string, date time.Time, files []EvidenceFile, ownerID uuid.UUID) (*models.Milestone, error) {
	if title == "" {
		return nil, errs.NewValidationError("titulo", "title is required")
	}
	if description == "" {
		return nil, errs.NewValidationError("descripcion", "description is required")
	}
	if date.IsZero() {
		return nil, errs.NewValidationError("fecha", "date is required")
	}

	project, err := m.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	urls, err := m.uploadEvidence(ctx, files)
	if err != nil {
		return nil, err
	}

	milestone := &models.Milestone{
		ID:           uuid.New(),
		ProjectID:    project.ID,
		Title:        title,
		Description:  description,
		Date:         date,
		EvidenceURLs: datatypes.NewJSONSlice(urls),
		OwnerID:      ownerID,
	}
	if err := m.store.Add(ctx, milestone); err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("milestoneID", milestone.ID.String()).
		Str("projectID", project.ID.String()).
		Int("evidenceCount", len(urls)).
		Msg("milestone created")

	return milestone, nil
}

// Get returns a single milestone by id.
func (m *Milestones) Get(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	return m.store.FindByID(ctx, id)
}

// Edit replaces title, description, date and the evidence list. Newly
// supplied files are uploaded and their URLs appended to the supplied list.
// Previously stored URLs survive unless the caller hands in a reduced list;
// superseded files are never deleted from storage.
func (m *Milestones) Edit(ctx context.Context, id uuid.UUID, title, description string, date time.Time, evidenceURLs []string, newFiles []EvidenceFile) (*models.Milestone, error) {
	if title == "" {
		return nil, errs.NewValidationError("titulo", "title is required")
	}
	if description == "" {
		return nil, errs.NewValidationError("descripcion", "description is required")
	}
	if date.IsZero() {
		return nil, errs.NewValidationError("fecha", "date is required")
	}

	milestone, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uploaded, err := m.uploadEvidence(ctx, newFiles)
	if err != nil {
		return nil, err
	}

	milestone.Title = title
	milestone.Description = description
	milestone.Date = date
	milestone.EvidenceURLs = datatypes.NewJSONSlice(append(evidenceURLs, uploaded...))

	if err := m.store.Update(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// Delete removes the milestone record only; evidence files stay in object
// storage. Deleting an id twice fails the second time with a not-found
// error.
func (m *Milestones) Delete(ctx context.Context, id uuid.UUID) error {
	return m.store.Delete(ctx, id)
}

// ListForProject returns all milestones whose parent reference equals the
// project id, in backing-store insertion order (not sorted by the date
// field).
func (m *Milestones) ListForProject(ctx context.Context, projectID uuid.UUID) ([]*models.Milestone, error) {
	if _, err := m.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return m.store.FindByProject(ctx, projectID)
}

package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
)

// In-memory stand-ins for the database repositories. They keep insertion
// order so list assertions stay deterministic.

type fakeProjectStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
	order    []uuid.UUID
	history  []*models.StatusHistoryEntry

	changeErr    error
	beforeChange func()
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[uuid.UUID]*models.Project{}}
}

func (s *fakeProjectStore) FindAll(ctx context.Context) ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.projects[id])
	}
	return out, nil
}

func (s *fakeProjectStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Project, 0)
	for _, id := range s.order {
		if s.projects[id].OwnerID == ownerID {
			out = append(out, s.projects[id])
		}
	}
	return out, nil
}

func (s *fakeProjectStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, errs.NewNotFoundError("project")
	}
	return project, nil
}

func (s *fakeProjectStore) Add(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = project
	s.order = append(s.order, project.ID)
	return nil
}

func (s *fakeProjectStore) Update(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return errs.NewNotFoundError("project")
	}
	s.projects[project.ID] = project
	return nil
}

func (s *fakeProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return errs.NewNotFoundError("project")
	}
	delete(s.projects, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ChangeStatus mirrors the repository contract: PreviousStatus is finalized
// from the stored row inside the "transaction", not from the caller's
// snapshot. beforeChange lets tests interleave a competing write.
func (s *fakeProjectStore) ChangeStatus(ctx context.Context, project *models.Project, entry *models.StatusHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.changeErr != nil {
		return s.changeErr
	}
	if s.beforeChange != nil {
		s.beforeChange()
	}
	current, ok := s.projects[project.ID]
	if !ok {
		return errs.NewNotFoundError("project")
	}
	entry.PreviousStatus = current.Status
	s.history = append(s.history, entry)
	current.Status = entry.NewStatus
	current.LastStatusObservation = entry.Observation
	return nil
}

// fakeHistoryStore reads the ledger entries the project store recorded,
// newest first like the real repository.
type fakeHistoryStore struct {
	projects *fakeProjectStore
}

func (s *fakeHistoryStore) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.StatusHistoryEntry, error) {
	s.projects.mu.Lock()
	defer s.projects.mu.Unlock()
	out := make([]*models.StatusHistoryEntry, 0)
	for _, entry := range s.projects.history {
		if entry.ProjectID == projectID {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChangedAt.After(out[j].ChangedAt)
	})
	return out, nil
}

type fakeMilestoneStore struct {
	mu         sync.Mutex
	milestones map[uuid.UUID]*models.Milestone
	order      []uuid.UUID
}

func newFakeMilestoneStore() *fakeMilestoneStore {
	return &fakeMilestoneStore{milestones: map[uuid.UUID]*models.Milestone{}}
}

func (s *fakeMilestoneStore) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Milestone, 0)
	for _, id := range s.order {
		if s.milestones[id].ProjectID == projectID {
			out = append(out, s.milestones[id])
		}
	}
	return out, nil
}

func (s *fakeMilestoneStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	milestone, ok := s.milestones[id]
	if !ok {
		return nil, errs.NewNotFoundError("milestone")
	}
	return milestone, nil
}

func (s *fakeMilestoneStore) Add(ctx context.Context, milestone *models.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.milestones[milestone.ID] = milestone
	s.order = append(s.order, milestone.ID)
	return nil
}

func (s *fakeMilestoneStore) Update(ctx context.Context, milestone *models.Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.milestones[milestone.ID]; !ok {
		return errs.NewNotFoundError("milestone")
	}
	s.milestones[milestone.ID] = milestone
	return nil
}

func (s *fakeMilestoneStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.milestones[id]; !ok {
		return errs.NewNotFoundError("milestone")
	}
	delete(s.milestones, id)
	for i, mid := range s.order {
		if mid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.User{}}
}

func (s *fakeUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errs.NewNotFoundError("user")
	}
	return user, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Add(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return errs.NewNotFoundError("user")
	}
	s.users[user.ID] = user
	return nil
}

// fakeUploader records uploaded keys and mints S3-shaped URLs. failAfter
// makes every upload past the first n fail, to exercise batch aborts.
type fakeUploader struct {
	mu        sync.Mutex
	keys      []string
	failAfter int
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{failAfter: -1}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failAfter >= 0 && len(u.keys) >= u.failAfter {
		return "", errs.NewUploadError(key, fmt.Errorf("storage unavailable"))
	}
	u.keys = append(u.keys, key)
	return "https://proyectos.s3.us-east-1.amazonaws.com/" + key, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
)

type projectStore interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Projects enforces the role visibility rules server-side: teachers see and
// mutate their own projects, students read the projects they are assigned
// to, coordinators see everything.
type Projects struct {
	store    projectStore
	uploader Uploader
	logger   zerolog.Logger
}

func NewProjects(store projectStore, uploader Uploader) *Projects {
	return &Projects{
		store:    store,
		uploader: uploader,
		logger:   log.With().Str("service", "projects").Logger(),
	}
}

// ProjectFilter narrows a project listing. Name and Institution match as
// case-insensitive substrings, KnowledgeArea and Status exactly; zero values
// match everything.
type ProjectFilter struct {
	Name          string
	KnowledgeArea models.KnowledgeArea
	Status        models.Status
	Institution   string
}

func (f ProjectFilter) matches(p *models.Project) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.KnowledgeArea != "" && p.KnowledgeArea != f.KnowledgeArea {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Institution != "" && !strings.Contains(strings.ToLower(p.Institution), strings.ToLower(f.Institution)) {
		return false
	}
	return true
}

// ListVisible returns the projects the actor is allowed to see, narrowed by
// the filter. A student who appears in no member list gets an empty slice.
func (p *Projects) ListVisible(ctx context.Context, actor *models.User, filter ProjectFilter) ([]*models.Project, error) {
	var visible []*models.Project
	var err error

	switch actor.Role {
	case models.RoleCoordinator:
		visible, err = p.store.FindAll(ctx)
	case models.RoleTeacher:
		visible, err = p.store.FindByOwner(ctx, actor.ID)
	case models.RoleStudent:
		all, listErr := p.store.FindAll(ctx)
		if listErr != nil {
			return nil, listErr
		}
		visible = make([]*models.Project, 0)
		for _, project := range all {
			if project.HasMember(actor.ID.String()) {
				visible = append(visible, project)
			}
		}
	default:
		return nil, errs.NewForbiddenError("unknown role")
	}
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Project, 0, len(visible))
	for _, project := range visible {
		if filter.matches(project) {
			matched = append(matched, project)
		}
	}
	return matched, nil
}

// Get returns a single project if the actor may see it.
func (p *Projects) Get(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Project, error) {
	project, err := p.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, project) {
		return nil, errs.NewForbiddenError("project is not visible to this user")
	}
	return project, nil
}

func canView(actor *models.User, project *models.Project) bool {
	switch actor.Role {
	case models.RoleCoordinator:
		return true
	case models.RoleTeacher:
		return project.OwnerID == actor.ID
	case models.RoleStudent:
		return project.HasMember(actor.ID.String())
	}
	return false
}

// ProjectInput carries the teacher-editable content fields of a project.
// The JSON names mirror the wire contract models.Project serializes with.
type ProjectInput struct {
	Name          string               `json:"nombreProyecto"`
	Description   string               `json:"descripcion"`
	Objectives    string               `json:"objetivos"`
	Institution   string               `json:"institucion"`
	Budget        string               `json:"presupuesto"`
	Observations  string               `json:"observaciones"`
	KnowledgeArea models.KnowledgeArea `json:"areaConocimiento"`
	StartDate     string               `json:"fechaInicio"` // YYYY-MM-DD
	Members       []models.Member      `json:"integrantes"`
}

func (in *ProjectInput) validate() (time.Time, error) {
	if in.Name == "" {
		return time.Time{}, errs.NewValidationError("nombreProyecto", "name is required")
	}
	if in.Description == "" {
		return time.Time{}, errs.NewValidationError("descripcion", "description is required")
	}
	if in.Objectives == "" {
		return time.Time{}, errs.NewValidationError("objetivos", "objectives are required")
	}
	if in.Institution == "" {
		return time.Time{}, errs.NewValidationError("institucion", "institution is required")
	}
	if !in.KnowledgeArea.Valid() {
		return time.Time{}, errs.NewValidationError("areaConocimiento", "must be one of the four knowledge areas")
	}
	startDate, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return time.Time{}, errs.NewValidationError("fechaInicio", "start date must be YYYY-MM-DD")
	}
	return startDate, nil
}

// Create makes a new project owned by the acting teacher. An optional
// schedule file is uploaded first and its URL stored on the record. New
// projects start in the Inactivo state until a coordinator moves them.
func (p *Projects) Create(ctx context.Context, actor *models.User, in ProjectInput, schedule *EvidenceFile) (*models.Project, error) {
	if actor.Role != models.RoleTeacher {
		return nil, errs.NewForbiddenError("only teachers create projects")
	}

	startDate, err := in.validate()
	if err != nil {
		return nil, err
	}

	scheduleURL := ""
	if schedule != nil {
		key := fmt.Sprintf("cronogramas/%s-%s", uuid.New(), schedule.Name)
		scheduleURL, err = p.uploader.Upload(ctx, key, schedule.ContentType, schedule.Content)
		if err != nil {
			return nil, err
		}
	}

	project := &models.Project{
		ID:            uuid.New(),
		Name:          in.Name,
		Description:   in.Description,
		Objectives:    in.Objectives,
		Institution:   in.Institution,
		Budget:        in.Budget,
		ScheduleURL:   scheduleURL,
		Observations:  in.Observations,
		KnowledgeArea: in.KnowledgeArea,
		StartDate:     startDate,
		Status:        models.StatusInactive,
		OwnerID:       actor.ID,
		Members:       in.Members,
	}
	if err := p.store.Add(ctx, project); err != nil {
		return nil, err
	}

	p.logger.Info().
		Str("projectID", project.ID.String()).
		Str("ownerID", actor.ID.String()).
		Msg("project created")

	return project, nil
}

// Update replaces the content fields of a project the actor owns. Owner,
// status and the last status observation are not touchable here: the owner
// is immutable and status flows only through the ledger.
func (p *Projects) Update(ctx context.Context, actor *models.User, id uuid.UUID, in ProjectInput, schedule *EvidenceFile) (*models.Project, error) {
	project, err := p.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleTeacher || project.OwnerID != actor.ID {
		return nil, errs.NewForbiddenError("only the owning teacher edits a project")
	}

	startDate, err := in.validate()
	if err != nil {
		return nil, err
	}

	if schedule != nil {
		key := fmt.Sprintf("cronogramas/%s-%s", uuid.New(), schedule.Name)
		url, err := p.uploader.Upload(ctx, key, schedule.ContentType, schedule.Content)
		if err != nil {
			return nil, err
		}
		project.ScheduleURL = url
	}

	project.Name = in.Name
	project.Description = in.Description
	project.Objectives = in.Objectives
	project.Institution = in.Institution
	project.Budget = in.Budget
	project.Observations = in.Observations
	project.KnowledgeArea = in.KnowledgeArea
	project.StartDate = startDate
	project.Members = in.Members

	if err := p.store.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project the actor owns.
func (p *Projects) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	project, err := p.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleTeacher || project.OwnerID != actor.ID {
		return errs.NewForbiddenError("only the owning teacher deletes a project")
	}
	return p.store.Delete(ctx, id)
}

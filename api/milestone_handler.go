package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
	"github.com/pokaque/proyecto-final-backend/services"
)

type milestoneHandler struct {
	responder  Responder
	logger     zerolog.Logger
	milestones *services.Milestones
	projects   *services.Projects
}

func newMilestoneHandler(milestones *services.Milestones, projects *services.Projects) milestoneHandler {
	logger := log.With().Str("handlerName", "milestoneHandler").Logger()

	return milestoneHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		milestones: milestones,
		projects:   projects,
	}
}

type milestonePayload struct {
	Title        string   `json:"titulo"`
	Description  string   `json:"descripcion"`
	Date         string   `json:"fecha"`
	EvidenceURLs []string `json:"evidenciaURLs"`
}

func (p milestonePayload) parseDate() (time.Time, error) {
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return time.Time{}, errs.NewValidationError("fecha", "must be a YYYY-MM-DD date")
	}
	return date, nil
}

// parseMilestonePayload reads the milestone fields either as plain JSON or
// as a multipart form with a "datos" JSON field plus "evidencias" files.
func parseMilestonePayload(r *http.Request) (milestonePayload, []services.EvidenceFile, error) {
	var payload milestonePayload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return payload, nil, errs.NewBadRequestError("malformed multipart form")
		}
		if err := json.Unmarshal([]byte(r.FormValue("datos")), &payload); err != nil {
			return payload, nil, errs.NewBadRequestError("malformed datos field")
		}

		var files []services.EvidenceFile
		if r.MultipartForm != nil {
			for _, header := range r.MultipartForm.File["evidencias"] {
				file, err := header.Open()
				if err != nil {
					return payload, nil, errs.NewBadRequestError("unreadable evidencias file")
				}
				files = append(files, *evidenceFromPart(file, header))
			}
		}
		return payload, files, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, nil, errs.NewBadRequestError("malformed request body")
	}
	return payload, nil, nil
}

// requireProjectOwner loads the project and rejects actors other than the
// owning teacher. Coordinators can read milestones but not change them.
func (h milestoneHandler) requireProjectOwner(r *http.Request) (*models.User, error) {
	actor, err := ctxGetActor(r.Context())
	if err != nil {
		return nil, errs.NewAuthError("not signed in")
	}

	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		return nil, err
	}

	project, err := h.projects.Get(r.Context(), actor, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actor.ID {
		return nil, errs.NewForbiddenError("only the project owner can manage milestones")
	}
	return actor, nil
}

// requireMilestoneOwner resolves the milestone from the URL and checks the
// actor owns its parent project.
func (h milestoneHandler) requireMilestoneOwner(r *http.Request) (*models.Milestone, error) {
	actor, err := ctxGetActor(r.Context())
	if err != nil {
		return nil, errs.NewAuthError("not signed in")
	}

	milestoneID, err := urlParamUUID(r, "milestoneID")
	if err != nil {
		return nil, err
	}

	milestone, err := h.milestones.Get(r.Context(), milestoneID)
	if err != nil {
		return nil, err
	}

	project, err := h.projects.Get(r.Context(), actor, milestone.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actor.ID {
		return nil, errs.NewForbiddenError("only the project owner can manage milestones")
	}
	return milestone, nil
}

// MilestoneCollection lists a project's milestones in insertion order
type MilestoneCollection struct {
	Milestones []*models.Milestone `json:"hitos"`
	Total      int                 `json:"total"`
}

// listMilestones retrieves a project's milestones
func (h milestoneHandler) listMilestones() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := ctxGetActor(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewAuthError("not signed in"))
			return
		}

		projectID, err := urlParamUUID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// visibility check happens through the project lookup
		if _, err := h.projects.Get(r.Context(), actor, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		milestones, err := h.milestones.ListForProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, MilestoneCollection{Milestones: milestones, Total: len(milestones)})
	}
}

// createMilestone records a new milestone with its evidence files
func (h milestoneHandler) createMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := h.requireProjectOwner(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := urlParamUUID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload, files, err := parseMilestonePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		date, err := payload.parseDate()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		milestone, err := h.milestones.Add(r.Context(), projectID, payload.Title, payload.Description, date, files, actor.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, milestone)
	}
}

// updateMilestone replaces a milestone's fields and appends new evidence
func (h milestoneHandler) updateMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.requireMilestoneOwner(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		payload, files, err := parseMilestonePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		date, err := payload.parseDate()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		milestone, err := h.milestones.Edit(r.Context(), existing.ID, payload.Title, payload.Description, date, payload.EvidenceURLs, files)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, milestone)
	}
}

// deleteMilestone removes a milestone record. Evidence files stay in storage.
func (h milestoneHandler) deleteMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.requireMilestoneOwner(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.milestones.Delete(r.Context(), existing.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "milestone deleted successfully",
		})
	}
}

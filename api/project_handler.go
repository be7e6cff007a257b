package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
	"github.com/pokaque/proyecto-final-backend/services"
)

const maxUploadMemory = 32 << 20 // 32MB

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.Projects
	ledger    *services.Ledger
}

func newProjectHandler(projects *services.Projects, ledger *services.Ledger) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		ledger:    ledger,
	}
}

// ProjectCollection represents the projects visible to the requester
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

func urlParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// parseProjectInput reads the project payload either as plain JSON or as a
// multipart form carrying a "datos" JSON field plus an optional
// "cronograma" schedule file.
func parseProjectInput(r *http.Request) (services.ProjectInput, *services.EvidenceFile, error) {
	var in services.ProjectInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return in, nil, errs.NewBadRequestError("malformed multipart form")
		}
		if err := json.Unmarshal([]byte(r.FormValue("datos")), &in); err != nil {
			return in, nil, errs.NewBadRequestError("malformed datos field")
		}

		file, header, err := r.FormFile("cronograma")
		if err == http.ErrMissingFile || header == nil {
			return in, nil, nil
		}
		if err != nil {
			return in, nil, errs.NewBadRequestError("unreadable cronograma file")
		}
		return in, evidenceFromPart(file, header), nil
	}

	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, nil, errs.NewBadRequestError("malformed request body")
	}
	return in, nil, nil
}

func evidenceFromPart(file multipart.File, header *multipart.FileHeader) *services.EvidenceFile {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &services.EvidenceFile{
		Name:        header.Filename,
		ContentType: contentType,
		Content:     file,
	}
}

// listProjects retrieves the projects the requester may see, optionally
// narrowed by nombre, area, estado and institucion query parameters
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := ctxGetActor(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewAuthError("not signed in"))
			return
		}

		q := r.URL.Query()
		filter := services.ProjectFilter{
			Name:          q.Get("nombre"),
			KnowledgeArea: models.KnowledgeArea(q.Get("area")),
			Status:        models.Status(q.Get("estado")),
			Institution:   q.Get("institucion"),
		}

		projects, err := h.projects.ListVisible(r.Context(), actor, filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

// getProject retrieves a specific project by ID
func (h projectHandler) getProject() http.HandlerFunc {
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

		project, err := h.projects.Get(r.Context(), actor, projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project owned by the acting teacher
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := ctxGetActor(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewAuthError("not signed in"))
			return
		}

		in, schedule, err := parseProjectInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Create(r.Context(), actor, in, schedule)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject replaces the content fields of an owned project
func (h projectHandler) updateProject() http.HandlerFunc {
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

		in, schedule, err := parseProjectInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Update(r.Context(), actor, projectID, in, schedule)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes an owned project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
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

		if err := h.projects.Delete(r.Context(), actor, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

type changeStatusRequest struct {
	NewStatus   models.Status `json:"nuevoEstado"`
	Observation string        `json:"observacion"`
}

// changeStatus appends a ledger entry and updates the project's status
func (h projectHandler) changeStatus() http.HandlerFunc {
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

		var req changeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		entry, err := h.ledger.ChangeStatus(r.Context(), projectID, req.NewStatus, req.Observation, actor.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, entry)
	}
}

// HistoryCollection is a project's status ledger, most recent first
type HistoryCollection struct {
	History []*models.StatusHistoryEntry `json:"historial"`
	Total   int                          `json:"total"`
}

// getHistory lists a project's status ledger
func (h projectHandler) getHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := urlParamUUID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		entries, err := h.ledger.ListHistory(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, HistoryCollection{History: entries, Total: len(entries)})
	}
}

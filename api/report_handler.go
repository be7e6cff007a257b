package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/services"
)

type reportHandler struct {
	responder  Responder
	logger     zerolog.Logger
	projects   *services.Projects
	milestones *services.Milestones
	reports    *services.Reports
}

func newReportHandler(projects *services.Projects, milestones *services.Milestones, reports *services.Reports) reportHandler {
	logger := log.With().Str("handlerName", "reportHandler").Logger()

	return reportHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		projects:   projects,
		milestones: milestones,
		reports:    reports,
	}
}

// projectReport renders a single project's PDF report
func (h reportHandler) projectReport() http.HandlerFunc {
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

		milestones, err := h.milestones.ListForProject(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		pdf, err := h.reports.ProjectReport(project, milestones)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePDF(w, fmt.Sprintf("informe-%s.pdf", projectID), pdf)
	}
}

// summaryReport renders the all-projects PDF overview
func (h reportHandler) summaryReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := ctxGetActor(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewAuthError("not signed in"))
			return
		}

		projects, err := h.projects.ListVisible(r.Context(), actor, services.ProjectFilter{})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		pdf, err := h.reports.SummaryReport(projects)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WritePDF(w, "reporte-general.pdf", pdf)
	}
}

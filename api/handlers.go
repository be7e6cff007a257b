package api

import (
	"github.com/pokaque/proyecto-final-backend/database"
	"github.com/pokaque/proyecto-final-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, uploader services.Uploader, auth *services.Auth) *routeHandlers {
	projects := services.NewProjects(db.ProjectRepo(), uploader)
	ledger := services.NewLedger(db.ProjectRepo(), db.StatusHistoryRepo())
	milestones := services.NewMilestones(db.MilestoneRepo(), db.ProjectRepo(), uploader)
	reports := services.NewReports()

	return &routeHandlers{
		authHandler:      newAuthHandler(auth, db.UserRepo()),
		projectHandler:   newProjectHandler(projects, ledger),
		milestoneHandler: newMilestoneHandler(milestones, projects),
		userHandler:      newUserHandler(db.UserRepo(), auth),
		reportHandler:    newReportHandler(projects, milestones, reports),
	}
}

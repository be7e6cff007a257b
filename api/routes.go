package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pokaque/proyecto-final-backend/models"
)

// setupRoutes wires all endpoints. Everything outside the auth group is
// reachable without a token.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public auth endpoints
	r.Post("/auth/register", handlers.authHandler.register())
	r.Post("/auth/login", handlers.authHandler.login())
	r.Get("/auth/google/login", handlers.authHandler.googleLogin())
	r.Get("/auth/google/callback", handlers.authHandler.googleCallback())

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/auth/me", handlers.authHandler.me())
		r.Post("/auth/complete", handlers.authHandler.completeRegistration())

		// Project endpoints, visibility enforced per role in the service
		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/project/{projectID}/report", handlers.reportHandler.projectReport())
		r.Get("/projects/report", handlers.reportHandler.summaryReport())

		// Milestone endpoints
		r.Get("/project/{projectID}/milestones", handlers.milestoneHandler.listMilestones())

		// Teacher endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireRole(models.RoleTeacher))

			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/project/{projectID}/milestone", handlers.milestoneHandler.createMilestone())
			r.Put("/milestone/{milestoneID}", handlers.milestoneHandler.updateMilestone())
			r.Delete("/milestone/{milestoneID}", handlers.milestoneHandler.deleteMilestone())
		})

		// Coordinator endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireRole(models.RoleCoordinator))

			r.Put("/project/{projectID}/status", handlers.projectHandler.changeStatus())
			r.Get("/project/{projectID}/history", handlers.projectHandler.getHistory())

			r.Get("/users", handlers.userHandler.listUsers())
			r.Post("/user", handlers.userHandler.createUser())
			r.Put("/user/{userID}", handlers.userHandler.updateUser())
			r.Delete("/user/{userID}", handlers.userHandler.deleteUser())
		})
	})
}

package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"pitchapi/internal/service"
)

// RegisterRoutes attaches the HTTP routes to app. Submission and analysis
// endpoints live under /api.
func RegisterRoutes(app *fiber.App, db *sql.DB, subSvc service.SubmissionService, anaSvc service.AnalysisService) {
	app.Get("/", Root())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())

	api := app.Group("/api")
	api.Post("/submit-startup", SubmitStartup(subSvc))
	api.Get("/submissions", ListSubmissions(subSvc))
	api.Get("/submissions/:submission_id", GetSubmission(subSvc))
	api.Get("/submissions/:submission_id/files/:file_id/url", GetSubmissionFileURL(subSvc))
	api.Get("/stats", GetStats(subSvc))
	api.Get("/analyze/:startup_name", AnalyzeStartup(anaSvc))
	api.Get("/startups/search/:query", SearchStartups(subSvc))
	api.Post("/test/test-validation", ValidateDocuments(subSvc))
}

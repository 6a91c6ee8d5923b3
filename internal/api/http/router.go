package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docrequest-service/internal/api/http/handlers"
	"github.com/spec-kit/docrequest-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Requests       *handlers.RequestsHandler
	Employees      *handlers.EmployeesHandler
	Uploads        *handlers.UploadsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	// Roster endpoint intentionally has no session check.
	app.Get("/employees", cfg.Employees.ListEmployees)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/requests", cfg.Requests.ListRequests)
	protected.Post("/requests", cfg.Requests.CreateRequest)
	protected.Get("/requests/:id", cfg.Requests.GetRequest)
	protected.Patch("/requests/:id/status", cfg.Requests.UpdateStatus)

	protected.Post("/upload/presigned", cfg.Uploads.PresignUpload)
	protected.Get("/files/download", cfg.Uploads.ResolveDownload)
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"realestateapi/internal/health"
	"realestateapi/internal/service"
	"realestateapi/internal/validation"
)

// Dependencies are the collaborators injected into the HTTP handlers.
type Dependencies struct {
	Properties service.PropertyService
	Owners     service.OwnerService
	Validator  *validation.Validator
	Health     *health.Checker
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers return plain data; the Envelope middleware wraps it.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.Health))
	app.Get("/health/ready", ReadinessCheck(deps.Health))
	app.Get("/health/live", LivenessProbe())

	api := app.Group("/api")
	api.Get("/health", HealthCheck(deps.Health))
	api.Get("/health/ready", ReadinessCheck(deps.Health))

	api.Get("/properties", ListProperties(deps.Properties, deps.Validator))
	api.Post("/properties", CreateProperty(deps.Properties, deps.Validator))
	api.Get("/properties/:id", GetProperty(deps.Properties))
	api.Put("/properties/:id", UpdateProperty(deps.Properties, deps.Validator))
	api.Delete("/properties/:id", DeleteProperty(deps.Properties))
	api.Post("/properties/:id/images", AddPropertyImage(deps.Properties))
	api.Get("/properties/:id/traces", ListTraces(deps.Properties))
	api.Post("/properties/:id/traces", AddTrace(deps.Properties, deps.Validator))

	api.Get("/owners", ListOwners(deps.Owners))
	api.Get("/owners/:id", GetOwner(deps.Owners))
}

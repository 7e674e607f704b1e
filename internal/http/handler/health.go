package handler

import (
	"github.com/gofiber/fiber/v2"

	"realestateapi/internal/health"
	"realestateapi/internal/model"
)

// writeReport answers 200 with a successful envelope whatever the outcome;
// the report status says whether the system is usable.
func writeReport(c *fiber.Ctx, report health.Report) error {
	return c.JSON(model.OK(report, "System is "+string(report.Status)))
}

// HealthCheck godoc
// @Summary  Run every health check
// @Tags     health
// @Produce  json
// @Success  200  {object}  model.Envelope[health.Report]
// @Router   /health [get]
func HealthCheck(checker *health.Checker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return writeReport(c, checker.Run(c.UserContext(), ""))
	}
}

// ReadinessCheck runs only the checks tagged ready (the document store) and
// reports Ready or Not Ready.
func ReadinessCheck(checker *health.Checker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return writeReport(c, checker.Run(c.UserContext(), health.TagReady).Readiness())
	}
}

// LivenessProbe reports the process as alive without touching dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return writeReport(c, health.Live())
	}
}

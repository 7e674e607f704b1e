package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"realestateapi/internal/http/middleware"
	"realestateapi/internal/model"
)

// writeError writes a failed envelope with the given status.
//
// Parameters:
// - status: HTTP status code to return
// - message: human-readable summary of what failed
// - errText: detail placed in the envelope's error field
func writeError(c *fiber.Ctx, status int, message, errText string) error {
	return c.Status(status).JSON(model.Fail(message, errText))
}

// writeNotFound reports an absent entity. The HTTP status stays 200 and the
// envelope carries the outcome.
func writeNotFound(c *fiber.Ctx, entity string) error {
	return writeError(c, fiber.StatusOK, entity+" not found", "not found")
}

// writeStoreError reports a persistence failure with the raw error text.
func writeStoreError(c *fiber.Ctx, message string, err error) error {
	middleware.LoggerFrom(c).ErrorContext(c.UserContext(), "store_error",
		"path", c.Path(),
		"error", err.Error(),
	)
	return writeError(c, fiber.StatusOK, message, err.Error())
}

// ErrorHandler returns a Fiber global error handler that renders framework
// errors as envelopes.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		errText := err.Error()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			errText = fe.Message
		}

		if rid := middleware.RequestIDFrom(c); rid != "" {
			c.Set(middleware.RequestIDHeader, rid)
		}
		return writeError(c, status, middleware.StatusMessage(status), errText)
	}
}

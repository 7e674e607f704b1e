package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"realestateapi/internal/model"
)

// UnexpectedErrorMessage is returned to clients when a fault escapes the pipeline.
const UnexpectedErrorMessage = "an unexpected error occurred, please try again later"

// Recover is the outermost middleware. Panics and plain errors escaping the
// inner chain become a 500 envelope. *fiber.Error values are left to the
// application's ErrorHandler.
func Recover(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := nextRecovered(c)
		if err == nil {
			return nil
		}
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return err
		}

		log.ErrorContext(c.UserContext(), "unhandled_error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		return writeEnvelope(c, fiber.StatusInternalServerError, model.Fail(UnexpectedErrorMessage, err.Error()))
	}
}

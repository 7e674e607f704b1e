package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"realestateapi/internal/model"
)

// Paths that serve non-API content and are never wrapped.
var envelopeSkipPrefixes = []string{"/metrics", "/swagger"}

// StatusMessage is the envelope message used for a failed response with the given status.
func StatusMessage(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not found"
	case fiber.StatusInternalServerError:
		return "internal error"
	default:
		return "request failed"
	}
}

// Envelope wraps every response body produced by the inner handlers into
// model.Envelope, so clients always receive {success, data, message, error}.
//
// Behavior:
// - 2xx: the body becomes data (parsed JSON, raw text, or {} when empty). 204 becomes 200 with {}.
// - non-2xx: success=false, message keyed by status, error is the raw body.
// - a body that already is an envelope is left untouched.
// - returned *fiber.Error values are rendered with their code and message.
// - any other returned error or panic becomes a 500 envelope.
func Envelope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, p := range envelopeSkipPrefixes {
			if strings.HasPrefix(path, p) {
				return c.Next()
			}
		}

		if err := nextRecovered(c); err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return writeEnvelope(c, fe.Code, model.Fail(StatusMessage(fe.Code), fe.Message))
			}
			return writeEnvelope(c, fiber.StatusInternalServerError, model.Fail(StatusMessage(fiber.StatusInternalServerError), err.Error()))
		}

		status := c.Response().StatusCode()
		body := c.Response().Body()

		if isEnvelope(body) {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return nil
		}

		if status >= 200 && status < 300 {
			if status == fiber.StatusNoContent {
				// SendStatus(204) leaves the status text as the body.
				status = fiber.StatusOK
				body = nil
			}
			return writeEnvelope(c, status, model.OK(dataFromBody(body), ""))
		}

		errText := strings.TrimSpace(string(body))
		if errText == "" {
			errText = utils.StatusMessage(status)
		}
		return writeEnvelope(c, status, model.Fail(StatusMessage(status), errText))
	}
}

// nextRecovered runs the rest of the chain, turning a panic into an error.
func nextRecovered(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return c.Next()
}

func panicError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return fmt.Errorf("%v", r)
}

func dataFromBody(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return json.RawMessage(`{}`)
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return string(body)
}

// isEnvelope reports whether body is a JSON object with exactly the envelope keys.
func isEnvelope(body []byte) bool {
	if len(body) == 0 || body[0] != '{' {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) != 4 {
		return false
	}
	for _, k := range []string{"success", "data", "message", "error"} {
		if _, ok := fields[k]; !ok {
			return false
		}
	}
	var success bool
	return json.Unmarshal(fields["success"], &success) == nil
}

func writeEnvelope[T any](c *fiber.Ctx, status int, env model.Envelope[T]) error {
	c.Response().ResetBody()
	c.Response().Header.Del(fiber.HeaderContentLength)
	return c.Status(status).JSON(env)
}

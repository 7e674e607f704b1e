package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggerLocalKey is the key holding the request-scoped *slog.Logger in Fiber's context locals.
const LoggerLocalKey = "logger"

// Logger is a middleware that logs each HTTP request as one structured record.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
//
// A logger carrying request_id is stored in locals for handlers, see LoggerFrom.
func Logger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid := RequestIDFrom(c)
		reqLog := log.With("request_id", rid)
		c.Locals(LoggerLocalKey, reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		level := slog.LevelInfo
		switch {
		case status >= fiber.StatusInternalServerError:
			level = slog.LevelError
		case status >= fiber.StatusBadRequest:
			level = slog.LevelWarn
		}

		reqLog.LogAttrs(c.UserContext(), level, "http_request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		)

		return err
	}
}

// LoggerFrom returns the request-scoped logger, or slog.Default outside the Logger middleware.
func LoggerFrom(c *fiber.Ctx) *slog.Logger {
	if l, ok := c.Locals(LoggerLocalKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

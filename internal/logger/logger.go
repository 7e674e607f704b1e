// Package logger builds the application's slog.Logger from configuration.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"

	"realestateapi/internal/config"
)

// TimeKey replaces slog's default "time" key in JSON and text output.
const TimeKey = "ts"

// New returns a logger writing to w in the configured format. When a Fluentd host is
// configured, every record is also forwarded there. The returned close func flushes the forwarder.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, nil, fmt.Errorf("load log timezone %q: %w", cfg.TimeZone, err)
	}

	handler := newConsoleHandler(cfg.Format, w, level, loc)
	closeFn := func() error { return nil }

	if cfg.FluentHost != "" {
		client, err := fluent.New(fluent.Config{
			FluentHost: cfg.FluentHost,
			FluentPort: cfg.FluentPort,
			TagPrefix:  cfg.FluentTag,
			Async:      true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create fluentd logger: %w", err)
		}
		handler = NewMultiHandler(handler, NewFluentHandler(client, level, loc))
		closeFn = client.Close
	}

	return slog.New(handler), closeFn, nil
}

// ParseLevel accepts debug, info, warn and error (case-insensitive). Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything. Handy for tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newConsoleHandler(format string, w io.Writer, level slog.Level, loc *time.Location) slog.Handler {
	if format == "tint" {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					a.Value = slog.TimeValue(a.Value.Time().In(loc))
				}
				return a
			},
		})
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(TimeKey, a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

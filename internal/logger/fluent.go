package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// poster is the subset of *fluent.Fluent the handler needs.
type poster interface {
	Post(tag string, message interface{}) error
}

// FluentHandler is a slog.Handler that forwards records to Fluentd.
// Records are tagged with their lowercase level; the client adds the service prefix.
type FluentHandler struct {
	client poster
	level  slog.Leveler
	loc    *time.Location
	attrs  map[string]any
	prefix string
}

func NewFluentHandler(client poster, level slog.Leveler, loc *time.Location) *FluentHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &FluentHandler{client: client, level: level, loc: loc, attrs: map[string]any{}}
}

func (h *FluentHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *FluentHandler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]any, len(h.attrs)+r.NumAttrs()+3)
	for k, v := range h.attrs {
		data[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(data, h.prefix, a)
		return true
	})

	level := strings.ToLower(r.Level.String())
	data["level"] = level
	data["msg"] = r.Message
	data[TimeKey] = r.Time.In(h.loc).Format(time.RFC3339Nano)

	return h.client.Post(level, data)
}

func (h *FluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		addAttr(next.attrs, next.prefix, a)
	}
	return next
}

func (h *FluentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *FluentHandler) clone() *FluentHandler {
	attrs := make(map[string]any, len(h.attrs))
	for k, v := range h.attrs {
		attrs[k] = v
	}
	return &FluentHandler{client: h.client, level: h.level, loc: h.loc, attrs: attrs, prefix: h.prefix}
}

// addAttr flattens groups into dotted keys and reduces values to msgpack-friendly types.
func addAttr(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range v.Group() {
			addAttr(dst, p, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}

	key := prefix + a.Key
	switch v.Kind() {
	case slog.KindString:
		dst[key] = v.String()
	case slog.KindInt64:
		dst[key] = v.Int64()
	case slog.KindUint64:
		dst[key] = v.Uint64()
	case slog.KindFloat64:
		dst[key] = v.Float64()
	case slog.KindBool:
		dst[key] = v.Bool()
	case slog.KindDuration:
		dst[key] = v.Duration().String()
	case slog.KindTime:
		dst[key] = v.Time().Format(time.RFC3339Nano)
	default:
		switch x := v.Any().(type) {
		case error:
			dst[key] = x.Error()
		case fmt.Stringer:
			dst[key] = x.String()
		default:
			dst[key] = fmt.Sprintf("%+v", x)
		}
	}
}

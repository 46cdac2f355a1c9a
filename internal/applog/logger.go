// Package applog sets up structured logging and keeps the recent entries in
// a ring that parents can read from the settings screen.
package applog

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a JSON logger writing to w. When ring is not nil every
// record at Info or above is also kept there.
func NewLogger(w io.Writer, level slog.Level, ring *Ring) *slog.Logger {
	var h slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	if ring != nil {
		h = &ringHandler{next: h, ring: ring}
	}
	return slog.New(h)
}

// ParseLevel maps LOG_LEVEL values; anything unknown is Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

type ringHandler struct {
	next   slog.Handler
	ring   *Ring
	attrs  []slog.Attr
	prefix string // group path
}

func (h *ringHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= slog.LevelInfo || h.next.Enabled(ctx, l)
}

func (h *ringHandler) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level >= slog.LevelInfo {
		details := map[string]any{}
		for _, a := range h.attrs {
			details[a.Key] = detailValue(a.Value)
		}
		rec.Attrs(func(a slog.Attr) bool {
			details[h.prefix+a.Key] = detailValue(a.Value)
			return true
		})
		if len(details) == 0 {
			details = nil
		}
		h.ring.Add(levelOf(rec.Level), rec.Message, details)
	}
	if !h.next.Enabled(ctx, rec.Level) {
		return nil
	}
	return h.next.Handle(ctx, rec)
}

func (h *ringHandler) WithAttrs(as []slog.Attr) slog.Handler {
	c := *h
	c.next = h.next.WithAttrs(as)
	c.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range as {
		c.attrs = append(c.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &c
}

func (h *ringHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.next = h.next.WithGroup(name)
	c.prefix = h.prefix + name + "."
	return &c
}

// detailValue turns an attribute into something that survives JSON
// encoding: errors keep their text and durations their readable form.
func detailValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	case slog.KindDuration:
		return v.String()
	case slog.KindGroup:
		m := make(map[string]any, len(v.Group()))
		for _, a := range v.Group() {
			m[a.Key] = detailValue(a.Value)
		}
		return m
	}
	return v.Any()
}

func levelOf(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarn
	}
	return LevelInfo
}

// Package log sets up structured logging and keeps the most recent records
// around for the log view.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// DefaultRingSize is how many records a RingHandler keeps.
const DefaultRingSize = 50

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Setup creates a logger writing to w in the given format ("text" or "json")
// and installs it as the slog default. The returned handler also keeps the
// latest records in memory.
func Setup(w io.Writer, level slog.Level, format string) (*slog.Logger, *RingHandler, error) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("invalid log format %q", format)
	}

	ring := NewRingHandler(handler, DefaultRingSize)
	logger := slog.New(ring)
	slog.SetDefault(logger)
	return logger, ring, nil
}

type ring struct {
	mu   sync.Mutex
	size int
	logs []slog.Record
}

// RingHandler is a slog.Handler that remembers the last records it handled
// before passing them on.
type RingHandler struct {
	slog.Handler
	ring *ring
}

// NewRingHandler wraps handler, keeping up to size records.
func NewRingHandler(handler slog.Handler, size int) *RingHandler {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingHandler{
		Handler: handler,
		ring:    &ring{size: size},
	}
}

// Handle stores the record and passes it to the wrapped handler.
func (h *RingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.ring.mu.Lock()
	h.ring.logs = append(h.ring.logs, r.Clone())
	if len(h.ring.logs) > h.ring.size {
		h.ring.logs = h.ring.logs[1:]
	}
	h.ring.mu.Unlock()

	return h.Handler.Handle(ctx, r)
}

func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RingHandler{Handler: h.Handler.WithAttrs(attrs), ring: h.ring}
}

func (h *RingHandler) WithGroup(name string) slog.Handler {
	return &RingHandler{Handler: h.Handler.WithGroup(name), ring: h.ring}
}

// Logs returns a copy of the stored records, oldest first.
func (h *RingHandler) Logs() []slog.Record {
	h.ring.mu.Lock()
	defer h.ring.mu.Unlock()
	logs := make([]slog.Record, len(h.ring.logs))
	copy(logs, h.ring.logs)
	return logs
}

package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg carries a slog record into the model for the status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// statusFadeMsg clears the status line if nothing newer replaced it.
type statusFadeMsg struct{ seq int }

const statusFadeDelay = 5 * time.Second

// StatusHandler is a slog.Handler that shows records in the TUI status line.
// Records at or above its level are sent to the program; every record the
// optional next handler accepts is also passed on (e.g. a JSON log file).
//
// Records arriving before SetProgram are only passed to next. Handlers
// derived via WithAttrs/WithGroup share the program pointer.
type StatusHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	next    slog.Handler
}

func NewStatusHandler(level slog.Level, next slog.Handler) *StatusHandler {
	return &StatusHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
		next:    next,
	}
}

func (h *StatusHandler) SetProgram(p *tea.Program) {
	h.program.Store(p)
}

func (h *StatusHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

func (h *StatusHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	if h.next != nil && h.next.Enabled(ctx, record.Level) {
		err = h.next.Handle(ctx, record)
	}
	if record.Level < h.level {
		return err
	}
	p := h.program.Load()
	if p == nil {
		return err
	}

	parts := make([]string, 0, len(h.attrs)+record.NumAttrs())
	for _, a := range h.attrs {
		parts = append(parts, a.Key+"="+a.Value.String())
	}
	record.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.Key+"="+a.Value.String())
		return true
	})
	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	// Send blocks until the event loop receives the message, and records can be
	// emitted from inside Update.
	msg := logRecordMsg{Summary: summary, Level: record.Level}
	go p.Send(msg)
	return err
}

func (h *StatusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := &StatusHandler{
		level:   h.level,
		program: h.program,
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
	if h.next != nil {
		out.next = h.next.WithAttrs(attrs)
	}
	return out
}

// WithGroup only affects the next handler; status line summaries stay flat.
func (h *StatusHandler) WithGroup(name string) slog.Handler {
	out := &StatusHandler{
		level:   h.level,
		program: h.program,
		attrs:   append([]slog.Attr(nil), h.attrs...),
	}
	if h.next != nil {
		out.next = h.next.WithGroup(name)
	}
	return out
}

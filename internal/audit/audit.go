package audit

import (
	"context"
	"log/slog"
)

// Event represents an audit entry for a tool execution.
type Event struct {
	// Type describes the event kind.
	Type string
	// Tool is the tool identifier.
	Tool string
	// CorrelationID links related events.
	CorrelationID string
	// Status is the execution status, when known.
	Status string
	// Detail provides redacted output or a denial reason.
	Detail string
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.InfoContext(ctx, "audit",
		"type", event.Type,
		"tool", event.Tool,
		"correlation_id", event.CorrelationID,
		"status", event.Status,
		"detail", event.Detail,
	)
}

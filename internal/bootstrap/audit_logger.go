package bootstrap

import (
	"context"

	"go-hris-console/internal/audit"
)

// AuditLog is a process-level event (startup, shutdown), as opposed to the
// operator actions recorded by the audit package.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// RecorderAuditLogger writes to stdout and forwards the entry to the audit
// outbox so it reaches the same Kafka topic as operator actions.
type RecorderAuditLogger struct {
	stdout   *StdoutAuditLogger
	recorder audit.Recorder
	action   map[string]string
}

func NewRecorderAuditLogger(recorder audit.Recorder) *RecorderAuditLogger {
	if recorder == nil {
		recorder = audit.NopRecorder()
	}
	return &RecorderAuditLogger{
		stdout:   NewStdoutAuditLogger(),
		recorder: recorder,
		action: map[string]string{
			"SERVER_SHUTDOWN": audit.ActionServerShutdown,
		},
	}
}

func (l *RecorderAuditLogger) Log(ctx context.Context, entry AuditLog) {
	l.stdout.Log(ctx, entry)

	action, ok := l.action[entry.Action]
	if !ok {
		return
	}

	meta := map[string]any{"message": entry.Message}
	for k, v := range entry.Meta {
		meta[k] = v
	}
	l.recorder.Record(ctx, audit.Event{
		Action:     action,
		EntityType: audit.EntityConsole,
		EntityID:   "api",
		ActorID:    "system",
		Meta:       meta,
	})
}

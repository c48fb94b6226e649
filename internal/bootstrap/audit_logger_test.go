package bootstrap

import (
	"context"
	"testing"

	"go-hris-console/internal/audit"

	"github.com/stretchr/testify/assert"
)

type captureRecorder struct {
	events []audit.Event
}

func (c *captureRecorder) Record(ctx context.Context, e audit.Event) {
	c.events = append(c.events, e)
}

func TestRecorderAuditLogger(t *testing.T) {
	t.Run("shutdown is forwarded to the audit outbox", func(t *testing.T) {
		rec := &captureRecorder{}
		l := NewRecorderAuditLogger(rec)

		l.Log(context.Background(), AuditLog{
			Action:  "SERVER_SHUTDOWN",
			Message: "Server is shutting down",
			Meta:    map[string]any{"signal": "terminated"},
		})

		if assert.Len(t, rec.events, 1) {
			e := rec.events[0]
			assert.Equal(t, audit.ActionServerShutdown, e.Action)
			assert.Equal(t, audit.EntityConsole, e.EntityType)
			assert.Equal(t, "terminated", e.Meta["signal"])
			assert.Equal(t, "Server is shutting down", e.Meta["message"])
		}
	})

	t.Run("unknown actions stay on stdout", func(t *testing.T) {
		rec := &captureRecorder{}
		l := NewRecorderAuditLogger(rec)

		l.Log(context.Background(), AuditLog{Action: "CACHE_WARMED"})

		assert.Empty(t, rec.events)
	})
}

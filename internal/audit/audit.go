// Package audit records an append-only trail of mutating operations.
// Events are emitted through a dedicated zap logger so deployments can
// route the trail separately from application logs.
package audit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Trail writes audit events.
type Trail struct {
	log *zap.Logger
}

// NewTrail creates a Trail that emits events through logger.
func NewTrail(logger *zap.Logger) *Trail {
	return &Trail{log: logger.Named("audit")}
}

// Record emits one audit event. actor is the caller identity (client IP or
// admin), action is the operation performed, resource identifies the target.
func (t *Trail) Record(actor, action, resource string) {
	t.log.Info("audit event",
		zap.String("event_id", uuid.NewString()),
		zap.String("actor", actor),
		zap.String("action", action),
		zap.String("resource", resource),
	)
}

package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/credexa/creditline-api/internal/audit"
)

func TestTrail_Record(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	trail := audit.NewTrail(zap.New(core))

	trail.Record("192.0.2.1", "credit_line.create", "cl-123")

	entries := logs.All()
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "audit event", e.Message)
	assert.Equal(t, "audit", e.LoggerName)

	fields := e.ContextMap()
	assert.Equal(t, "192.0.2.1", fields["actor"])
	assert.Equal(t, "credit_line.create", fields["action"])
	assert.Equal(t, "cl-123", fields["resource"])
	assert.NotEmpty(t, fields["event_id"])
}

func TestTrail_UniqueEventIDs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	trail := audit.NewTrail(zap.New(core))

	trail.Record("admin", "rate_limit.reset", "key-a")
	trail.Record("admin", "rate_limit.reset", "key-a")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ContextMap()["event_id"], entries[1].ContextMap()["event_id"])
}

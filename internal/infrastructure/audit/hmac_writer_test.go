package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/constants"
)

type captureSink struct {
	events []*models.AuditEvent
}

func (c *captureSink) LogEvent(_ context.Context, event *models.AuditEvent) error {
	c.events = append(c.events, event)
	return nil
}

func TestSignAuditEvent(t *testing.T) {
	event := models.NewAuditEvent(constants.AuditEventTieringRun, "credit-model-1", "tiering run completed")

	signature, err := SignAuditEvent(event, "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, signature)

	// Deterministic for the same content and key.
	again, err := SignAuditEvent(event, "secret")
	require.NoError(t, err)
	assert.Equal(t, signature, again)

	// A different key yields a different signature.
	other, err := SignAuditEvent(event, "other-secret")
	require.NoError(t, err)
	assert.NotEqual(t, signature, other)
}

func TestSigningAuditService(t *testing.T) {
	sink := &captureSink{}
	svc := NewSigningAuditService(sink, "secret")

	event := models.NewAuditEvent(constants.AuditEventModelRegistered, "credit-model-1", "model registered").
		WithActor("risk-lead-1")
	require.NoError(t, svc.LogEvent(context.Background(), event))

	require.Len(t, sink.events, 1)
	logged := sink.events[0]
	assert.NotEmpty(t, logged.Signature)
	assert.True(t, VerifyAuditEvent(logged, "secret"))
	assert.False(t, VerifyAuditEvent(logged, "wrong-key"))
}

func TestVerifyAuditEventDetectsTampering(t *testing.T) {
	event := models.NewAuditEvent(constants.AuditEventRubricReplaced, "rubric", "rubric replaced")
	signature, err := SignAuditEvent(event, "secret")
	require.NoError(t, err)
	event.Signature = signature

	event.Actor = "attacker"
	assert.False(t, VerifyAuditEvent(event, "secret"))
}

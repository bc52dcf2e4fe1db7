package pgsql

import (
	"testing"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransitionStampColumn(t *testing.T) {
	assert.Equal(t, "accepted_at", transitionStampColumn(domain.AssignmentAccepted))
	assert.Equal(t, "started_at", transitionStampColumn(domain.AssignmentPickedUp))
	assert.Equal(t, "completed_at", transitionStampColumn(domain.AssignmentDelivered))

	// Re-entering transit on a retry must not re-stamp the pickup time.
	assert.Equal(t, "", transitionStampColumn(domain.AssignmentInTransit))
	assert.Equal(t, "", transitionStampColumn(domain.AssignmentFailed))
	assert.Equal(t, "", transitionStampColumn(domain.AssignmentCancelled))
}

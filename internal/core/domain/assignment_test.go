package domain_test

import (
	"testing"

	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentStatusAccept(t *testing.T) {
	next, err := domain.AssignmentAssigned.Accept()
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentAccepted, next)

	for _, s := range []domain.AssignmentStatus{
		domain.AssignmentAccepted,
		domain.AssignmentPickedUp,
		domain.AssignmentInTransit,
		domain.AssignmentDelivered,
		domain.AssignmentFailed,
		domain.AssignmentCancelled,
	} {
		_, err := s.Accept()
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "accept from %q", s)
	}
}

func TestAssignmentStatusStartPickup(t *testing.T) {
	next, err := domain.AssignmentAccepted.StartPickup()
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentPickedUp, next)

	_, err = domain.AssignmentAssigned.StartPickup()
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestAssignmentStatusMarkInTransit(t *testing.T) {
	for _, s := range []domain.AssignmentStatus{
		domain.AssignmentAccepted,
		domain.AssignmentPickedUp,
		domain.AssignmentFailed, // retry after a failed attempt
	} {
		next, err := s.MarkInTransit()
		require.NoError(t, err, "from %q", s)
		assert.Equal(t, domain.AssignmentInTransit, next)
	}

	for _, s := range []domain.AssignmentStatus{
		domain.AssignmentAssigned,
		domain.AssignmentDelivered,
		domain.AssignmentCancelled,
	} {
		_, err := s.MarkInTransit()
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "from %q", s)
	}
}

func TestAssignmentStatusMarkDelivered(t *testing.T) {
	for _, s := range []domain.AssignmentStatus{
		domain.AssignmentAssigned,
		domain.AssignmentAccepted,
		domain.AssignmentPickedUp,
		domain.AssignmentInTransit,
		domain.AssignmentFailed,
	} {
		next, err := s.MarkDelivered()
		require.NoError(t, err, "from %q", s)
		assert.Equal(t, domain.AssignmentDelivered, next)
	}

	// Repeating the terminal success is a settled no-op, not a violation.
	_, err := domain.AssignmentDelivered.MarkDelivered()
	assert.ErrorIs(t, err, apperrors.ErrAlreadySettled)

	_, err = domain.AssignmentCancelled.MarkDelivered()
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = domain.AssignmentRejected.MarkDelivered()
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestAssignmentStatusMarkFailed(t *testing.T) {
	next, err := domain.AssignmentInTransit.MarkFailed()
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentFailed, next)

	_, err = domain.AssignmentDelivered.MarkFailed()
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestAssignmentStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.AssignmentDelivered.IsTerminal())
	assert.True(t, domain.AssignmentRejected.IsTerminal())
	assert.True(t, domain.AssignmentCancelled.IsTerminal())
	assert.False(t, domain.AssignmentFailed.IsTerminal())
	assert.False(t, domain.AssignmentInTransit.IsTerminal())
}

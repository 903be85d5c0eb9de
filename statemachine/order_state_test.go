package statemachine

import (
	"testing"

	"chucks-kitchen-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusOutForDelivery,
	models.StatusCompleted,
	models.StatusCancelled,
}

// allowed mirrors the transition table independently so a typo in the
// production table cannot hide in a shared fixture.
var allowed = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.StatusPending:        {models.StatusConfirmed: true, models.StatusCancelled: true},
	models.StatusConfirmed:      {models.StatusPreparing: true, models.StatusCancelled: true},
	models.StatusPreparing:      {models.StatusOutForDelivery: true},
	models.StatusOutForDelivery: {models.StatusCompleted: true},
	models.StatusCompleted:      {},
	models.StatusCancelled:      {},
}

func TestCanTransition_AllPairs(t *testing.T) {
	t.Parallel()

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := CanTransition(from, to)
			if allowed[from][to] {
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
			} else {
				assert.Error(t, err, "%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestCanTransition_NoSelfLoops(t *testing.T) {
	t.Parallel()

	for _, s := range allStatuses {
		assert.Error(t, CanTransition(s, s), "%s -> %s must fail", s, s)
	}
}

func TestCanTransition_NothingLeavesTerminalStates(t *testing.T) {
	t.Parallel()

	for _, terminal := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		for _, to := range allStatuses {
			assert.Error(t, CanTransition(terminal, to))
		}
	}
}

func TestCanTransition_ErrorEnumeratesValidNextStates(t *testing.T) {
	t.Parallel()

	err := CanTransition(models.StatusPending, models.StatusCompleted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmed")
	assert.Contains(t, err.Error(), "cancelled")

	err = CanTransition(models.StatusCompleted, models.StatusPending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestCanTransition_UnknownTargetRejected(t *testing.T) {
	t.Parallel()

	assert.Error(t, CanTransition(models.StatusPending, models.OrderStatus("shipped")))
}

func TestCanCancel(t *testing.T) {
	t.Parallel()

	assert.True(t, CanCancel(models.StatusPending))
	assert.True(t, CanCancel(models.StatusConfirmed))
	assert.False(t, CanCancel(models.StatusPreparing))
	assert.False(t, CanCancel(models.StatusOutForDelivery))
	assert.False(t, CanCancel(models.StatusCompleted))
	assert.False(t, CanCancel(models.StatusCancelled))
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTerminal(models.StatusCompleted))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.OrderStatus("bogus")))
}

func TestIsValidStatus(t *testing.T) {
	t.Parallel()

	for _, s := range allStatuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus(models.OrderStatus("shipped")))
}

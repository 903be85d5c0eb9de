package statemachine

import (
	"errors"

	"chucks-kitchen-api/models"
)

// orderTransitions is the authoritative state machine definition.
// Terminal states map to an empty set.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:        {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:      {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusOutForDelivery},
	models.StatusOutForDelivery: {models.StatusCompleted},
	models.StatusCompleted:      {},
	models.StatusCancelled:      {},
}

// cancellableStatuses are the only states a customer may cancel from.
// Once preparation starts the order is committed.
var cancellableStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s models.OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidNextStates returns all states reachable from the given state.
func ValidNextStates(from models.OrderStatus) []models.OrderStatus {
	return orderTransitions[from]
}

// CanTransition checks whether an order may move from one state to another.
// The error message enumerates the valid next states.
func CanTransition(from, to models.OrderStatus) error {
	for _, next := range orderTransitions[from] {
		if next == to {
			return nil
		}
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from '" + string(from) + "' are: " + describeValidFrom(from),
	)
}

// CanCancel reports whether an order in the given state may still be cancelled.
func CanCancel(status models.OrderStatus) bool {
	for _, s := range cancellableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a state has no outgoing transitions.
func IsTerminal(status models.OrderStatus) bool {
	return IsValidStatus(status) && len(orderTransitions[status]) == 0
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidNextStates(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllTransitions returns the full state machine for documentation
func AllTransitions() map[models.OrderStatus][]models.OrderStatus {
	out := make(map[models.OrderStatus][]models.OrderStatus, len(orderTransitions))
	for from, tos := range orderTransitions {
		out[from] = append([]models.OrderStatus(nil), tos...)
	}
	return out
}

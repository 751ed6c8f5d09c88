// Package kot derives the aggregate status of a kitchen order ticket
// from the statuses of its line items. The functions here are pure;
// reading the items and persisting the result belong to the caller.
package kot

import "github.com/ochiengk/dineqr-api/internal/domain/enum"

// ComputeStatus reduces per-item kitchen statuses into one ticket
// status. A ticket is only as done as its least-progressed item: any
// placed item keeps the whole ticket placed, and served requires
// every item to be served so partial completion never hides
// outstanding work. Empty input and unrecognized statuses fall back
// to placed.
func ComputeStatus(statuses []enum.ItemStatus) enum.ItemStatus {
	if len(statuses) == 0 {
		return enum.ItemStatusPlaced
	}

	var anyPreparing, anyReady bool
	served := 0
	for _, s := range statuses {
		switch s {
		case enum.ItemStatusPlaced:
			return enum.ItemStatusPlaced
		case enum.ItemStatusPreparing:
			anyPreparing = true
		case enum.ItemStatusReady:
			anyReady = true
		case enum.ItemStatusServed:
			served++
		default:
			return enum.ItemStatusPlaced
		}
	}

	if anyPreparing {
		return enum.ItemStatusPreparing
	}
	if anyReady {
		return enum.ItemStatusReady
	}
	if served == len(statuses) {
		return enum.ItemStatusServed
	}
	return enum.ItemStatusPlaced
}

// CanTransition reports whether an item may move from one status to
// another. Transitions are monotonic: an item never regresses.
func CanTransition(from, to enum.ItemStatus) bool {
	if !to.Valid() {
		return false
	}
	return to.Rank() >= from.Rank()
}

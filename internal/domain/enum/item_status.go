package enum

// ItemStatus tracks a single order item through the kitchen.
type ItemStatus string

const (
	ItemStatusPlaced    ItemStatus = "placed"
	ItemStatusPreparing ItemStatus = "preparing"
	ItemStatusReady     ItemStatus = "ready"
	ItemStatusServed    ItemStatus = "served"
)

// Rank orders statuses by kitchen progress. Unknown values rank
// alongside placed so a ticket of unknown state is never reported
// further along than it is.
func (s ItemStatus) Rank() int {
	switch s {
	case ItemStatusPreparing:
		return 1
	case ItemStatusReady:
		return 2
	case ItemStatusServed:
		return 3
	default:
		return 0
	}
}

// Valid reports whether s is one of the known kitchen statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPlaced, ItemStatusPreparing, ItemStatusReady, ItemStatusServed:
		return true
	}
	return false
}

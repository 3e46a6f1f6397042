package order

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPreOrder   Status = "PRE_ORDER"
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusOnHold     Status = "ON_HOLD"
)

// transitions is the allowed status graph. The graph is data checked in
// one place, not conditionals scattered across callers. ON_HOLD lists
// both resumable states here; the aggregate narrows the resume target to
// the exact state the order was paused from.
var transitions = map[Status][]Status{
	StatusPreOrder:   {StatusPending},
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusOnHold},
	StatusShipped:    {StatusDelivered, StatusOnHold},
	StatusOnHold:     {StatusProcessing, StatusShipped},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from this status
func (s Status) AllowedTransitions() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// AllStatuses returns every known status, for filters and validation
func AllStatuses() []Status {
	return []Status{
		StatusPreOrder,
		StatusPending,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
		StatusOnHold,
	}
}

package orders

import "herbsera/models"

// CanCancel reports whether a user-initiated cancellation is legal from
// the given status. Only pending and processing orders may be cancelled;
// every other status is past the point where stock can be handed back.
func CanCancel(status string) bool {
	return status == models.OrderPending || status == models.OrderProcessing
}

// IsValidStatus reports whether s is one of the defined order statuses.
// Admin updates accept any defined status without a transition-legality
// check: administrators may force any transition.
func IsValidStatus(s string) bool {
	return models.OrderStatuses[s]
}

package domain

import "time"

// Transition moves a suggested order to a new status, stamping the matching
// timestamp. Unknown statuses are rejected by ParseOrderStatus before this is
// called.
func (o *SuggestedOrder) Transition(status OrderStatus, now time.Time) {
	o.Status = status
	o.UpdatedAt = now

	switch status {
	case OrderStatusAccepted:
		o.AcceptedAt = &now
	case OrderStatusOrdered:
		o.OrderedAt = &now
	case OrderStatusSkipped:
		o.SkippedAt = &now
	case OrderStatusPending:
		// returning to pending clears nothing; the history stays
	}
}

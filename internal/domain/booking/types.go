package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive reports whether a booking in this status still holds availability.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(statusTransitions[s]) == 0
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentFailed        PaymentStatus = "failed"
)

// refunded is reachable only after money was actually taken
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:        {PaymentPartiallyPaid, PaymentPaid, PaymentFailed},
	PaymentPartiallyPaid: {PaymentPaid, PaymentRefunded, PaymentFailed},
	PaymentPaid:          {PaymentRefunded},
	PaymentFailed:        {PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid},
}

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	default:
		return false
	}
}

func (p PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, next := range paymentTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}

// HasCollected reports whether any money has been taken from the customer.
func (p PaymentStatus) HasCollected() bool {
	return p == PaymentPaid || p == PaymentPartiallyPaid
}

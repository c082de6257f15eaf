package domain

import "time"

type RegistrationStatus string

const (
	RegistrationPendingPayment RegistrationStatus = "pending_payment"
	RegistrationPaid           RegistrationStatus = "paid"
)

// Registration is one attendee tied to a payment transaction through
// ReferencePago. Attendee details are copied in at creation time and are
// never re-derived from anywhere else.
type Registration struct {
	ID            string
	ReferencePago string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DocumentID    string
	Status        RegistrationStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *Registration) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

package domain

import (
	"fmt"
	"time"
)

type TransactionStatus string

const (
	StatusPending        TransactionStatus = "pending"
	StatusApproved       TransactionStatus = "approved"
	StatusDeclined       TransactionStatus = "declined"
	StatusFailed         TransactionStatus = "failed"
	StatusProcessorError TransactionStatus = "processor_error"
)

// IsTerminal reports whether no further webhook-driven transition is expected.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusDeclined, StatusFailed:
		return true
	}
	return false
}

type Transaction struct {
	ID                     string
	Reference              string
	EventID                string
	Jurisdiction           string
	ContactEmail           string
	AmountTotal            float64
	Currency               string
	Status                 TransactionStatus
	ExternalLinkID         string
	ProcessorTransactionID string
	RawResponse            string
	PersonCount            int32
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// BuildReference composes the correlation key used to match webhook
// callbacks back to a transaction. Uniqueness comes from the millisecond
// timestamp; the store enforces it with a unique index as a backstop.
func BuildReference(eventID string, now time.Time) string {
	return fmt.Sprintf("EV-%s-%d", eventID, now.UnixMilli())
}

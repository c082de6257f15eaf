package domain

import "time"

// PaymentEvent is published on every terminal transaction transition so
// downstream consumers (mailing, reporting) can react without polling.
type PaymentEvent struct {
	TransactionID string    `json:"transaction_id"`
	Reference     string    `json:"reference"`
	EventID       string    `json:"event_id"`
	Jurisdiction  string    `json:"jurisdiction"`
	Status        string    `json:"status"`
	AmountTotal   float64   `json:"amount_total"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type PaymentEventPublisher interface {
	PublishPayment(event PaymentEvent) error
}

package domain

import (
	"context"
	"time"
)

type TransactionFilters struct {
	Status   TransactionStatus
	EventID  string
	DateFrom time.Time
	DateTo   time.Time
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
	// UpdateLink records the processor-assigned link id and the raw response
	// after a successful link creation.
	UpdateLink(ctx context.Context, reference, externalLinkID, rawResponse string) error
	// UpdateStatus applies a single write keyed by reference. Re-applying the
	// same status must succeed without error.
	UpdateStatus(ctx context.Context, reference string, status TransactionStatus, processorTransactionID string) error
	// MarkProcessorError records a failed or timed-out link request together
	// with the processor's raw error body.
	MarkProcessorError(ctx context.Context, reference, rawResponse string) error
	List(ctx context.Context, filters TransactionFilters, page, limit int64) ([]*Transaction, int64, error)
}

type RegistrationRepository interface {
	CreateBatch(ctx context.Context, registrations []*Registration) error
	GetByReference(ctx context.Context, reference string) ([]*Registration, error)
	// MarkPaidByReference moves every registration with the given
	// reference_pago to paid and returns how many rows matched. Zero matches
	// is a valid outcome.
	MarkPaidByReference(ctx context.Context, reference string) (int64, error)
}

package models

import (
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
)

type TransactionModel struct {
	ID                     string                   `gorm:"primaryKey;type:uuid"`
	Reference              string                   `gorm:"uniqueIndex:idx_reference;not null"`
	EventID                string                   `gorm:"index:idx_event_id"`
	Jurisdiction           string
	ContactEmail           string
	AmountTotal            float64
	Currency               string
	Status                 domain.TransactionStatus `gorm:"index:idx_status"`
	ExternalLinkID         string
	ProcessorTransactionID string
	RawResponse            string                   `gorm:"type:text"`
	PersonCount            int32
	CreatedAt              time.Time                `gorm:"index:idx_created_at"`
	UpdatedAt              time.Time
}

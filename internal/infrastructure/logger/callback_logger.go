package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CallbackReceivedEvent is an append-only audit row written for every
// webhook delivery, including rejected ones. It answers "what did the
// processor actually send us" when a payment is disputed.
type CallbackReceivedEvent struct {
	ID                     uint `gorm:"primaryKey"`
	Reference              string
	ProcessorTransactionID string
	ProcessorStatus        string
	MappedStatus           string
	AmountInMinorUnits     int64
	SignatureValid         bool
	Timestamp              time.Time
}

type CallbackLogger interface {
	LogCallback(ctx context.Context, event CallbackReceivedEvent) error
}

type PGCallbackLogger struct {
	db *gorm.DB
}

func NewPGCallbackLogger(db *gorm.DB) *PGCallbackLogger {
	return &PGCallbackLogger{db: db}
}

func (l *PGCallbackLogger) LogCallback(ctx context.Context, event CallbackReceivedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	DB *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{DB: db}
}

func (r *DefaultTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	transactionModel := mappers.ToGORMTransaction(transaction)
	if err := r.DB.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return &domain.PersistenceError{Op: "transaction create", Err: err}
	}
	return nil
}

func (r *DefaultTransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	var transaction models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&transaction, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, &domain.PersistenceError{Op: "transaction lookup", Err: err}
	}

	return mappers.ToDomainTransaction(&transaction), nil
}

func (r *DefaultTransactionRepository) UpdateLink(ctx context.Context, reference, externalLinkID, rawResponse string) error {
	err := r.DB.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("reference = ?", reference).
		Updates(map[string]any{
			"external_link_id": externalLinkID,
			"raw_response":     rawResponse,
			"updated_at":       time.Now(),
		}).Error
	if err != nil {
		return &domain.PersistenceError{Op: "transaction link update", Err: err}
	}
	return nil
}

// UpdateStatus is a single unconditional write keyed by the unique
// reference. Concurrent duplicate deliveries of the same status converge to
// the same row state, which is what makes webhook redelivery safe.
func (r *DefaultTransactionRepository) UpdateStatus(ctx context.Context, reference string, status domain.TransactionStatus, processorTransactionID string) error {
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if processorTransactionID != "" {
		updates["processor_transaction_id"] = processorTransactionID
	}

	err := r.DB.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("reference = ?", reference).
		Updates(updates).Error
	if err != nil {
		return &domain.PersistenceError{Op: "transaction status update", Err: err}
	}
	return nil
}

func (r *DefaultTransactionRepository) MarkProcessorError(ctx context.Context, reference, rawResponse string) error {
	err := r.DB.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("reference = ?", reference).
		Updates(map[string]any{
			"status":       domain.StatusProcessorError,
			"raw_response": rawResponse,
			"updated_at":   time.Now(),
		}).Error
	if err != nil {
		return &domain.PersistenceError{Op: "transaction processor error update", Err: err}
	}
	return nil
}

func (r *DefaultTransactionRepository) List(
	ctx context.Context,
	filters domain.TransactionFilters,
	page, limit int64,
) ([]*domain.Transaction, int64, error) {
	var transactionModels []models.TransactionModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.TransactionModel{})

	if filters.Status != "" {
		baseQuery = baseQuery.Where("status = ?", filters.Status)
	}

	if filters.EventID != "" {
		baseQuery = baseQuery.Where("event_id = ?", filters.EventID)
	}

	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}

	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&transactionModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*domain.Transaction, len(transactionModels))
	for i, transactionModel := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&transactionModel)
	}

	return transactions, total, nil
}

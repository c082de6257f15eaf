package repository

import (
	"context"
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRegistrationRepository struct {
	DB *gorm.DB
}

func NewDefaultRegistrationRepository(db *gorm.DB) *DefaultRegistrationRepository {
	return &DefaultRegistrationRepository{DB: db}
}

func (r *DefaultRegistrationRepository) CreateBatch(ctx context.Context, registrations []*domain.Registration) error {
	registrationModels := make([]*models.RegistrationModel, len(registrations))
	for i, registration := range registrations {
		registrationModels[i] = mappers.ToGORMRegistration(registration)
	}

	if err := r.DB.WithContext(ctx).Create(&registrationModels).Error; err != nil {
		return &domain.PersistenceError{Op: "registration batch create", Err: err}
	}
	return nil
}

func (r *DefaultRegistrationRepository) GetByReference(ctx context.Context, reference string) ([]*domain.Registration, error) {
	var registrationModels []models.RegistrationModel
	err := r.DB.WithContext(ctx).
		Where("reference_pago = ?", reference).
		Find(&registrationModels).Error
	if err != nil {
		return nil, &domain.PersistenceError{Op: "registration lookup", Err: err}
	}

	registrations := make([]*domain.Registration, len(registrationModels))
	for i, registrationModel := range registrationModels {
		registrations[i] = mappers.ToDomainRegistration(&registrationModel)
	}

	return registrations, nil
}

func (r *DefaultRegistrationRepository) MarkPaidByReference(ctx context.Context, reference string) (int64, error) {
	result := r.DB.WithContext(ctx).
		Model(&models.RegistrationModel{}).
		Where("reference_pago = ?", reference).
		Updates(map[string]any{
			"status":     domain.RegistrationPaid,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, &domain.PersistenceError{Op: "registration paid update", Err: result.Error}
	}

	return result.RowsAffected, nil
}

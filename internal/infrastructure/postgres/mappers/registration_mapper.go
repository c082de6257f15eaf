package mappers

import (
	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainRegistration(model *models.RegistrationModel) *domain.Registration {
	return &domain.Registration{
		ID:            model.ID,
		ReferencePago: model.ReferencePago,
		FirstName:     model.FirstName,
		LastName:      model.LastName,
		Email:         model.Email,
		Phone:         model.Phone,
		DocumentID:    model.DocumentID,
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMRegistration(registration *domain.Registration) *models.RegistrationModel {
	return &models.RegistrationModel{
		ID:            registration.ID,
		ReferencePago: registration.ReferencePago,
		FirstName:     registration.FirstName,
		LastName:      registration.LastName,
		Email:         registration.Email,
		Phone:         registration.Phone,
		DocumentID:    registration.DocumentID,
		Status:        registration.Status,
		CreatedAt:     registration.CreatedAt,
		UpdatedAt:     registration.UpdatedAt,
	}
}

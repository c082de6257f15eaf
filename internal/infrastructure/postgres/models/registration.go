package models

import (
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
)

type RegistrationModel struct {
	ID            string                    `gorm:"primaryKey"`
	ReferencePago string                    `gorm:"index:idx_reference_pago;not null"`
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DocumentID    string
	Status        domain.RegistrationStatus `gorm:"index:idx_registration_status"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

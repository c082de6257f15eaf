package mappers

import (
	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:                     model.ID,
		Reference:              model.Reference,
		EventID:                model.EventID,
		Jurisdiction:           model.Jurisdiction,
		ContactEmail:           model.ContactEmail,
		AmountTotal:            model.AmountTotal,
		Currency:               model.Currency,
		Status:                 model.Status,
		ExternalLinkID:         model.ExternalLinkID,
		ProcessorTransactionID: model.ProcessorTransactionID,
		RawResponse:            model.RawResponse,
		PersonCount:            model.PersonCount,
		CreatedAt:              model.CreatedAt,
		UpdatedAt:              model.UpdatedAt,
	}
}

func ToGORMTransaction(transaction *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:                     transaction.ID,
		Reference:              transaction.Reference,
		EventID:                transaction.EventID,
		Jurisdiction:           transaction.Jurisdiction,
		ContactEmail:           transaction.ContactEmail,
		AmountTotal:            transaction.AmountTotal,
		Currency:               transaction.Currency,
		Status:                 transaction.Status,
		ExternalLinkID:         transaction.ExternalLinkID,
		ProcessorTransactionID: transaction.ProcessorTransactionID,
		RawResponse:            transaction.RawResponse,
		PersonCount:            transaction.PersonCount,
		CreatedAt:              transaction.CreatedAt,
		UpdatedAt:              transaction.UpdatedAt,
	}
}

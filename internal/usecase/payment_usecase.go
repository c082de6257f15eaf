package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/metrics"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/wompi"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/rs/zerolog"
)

type RegistrationInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	DocumentID string
}

type CreatePaymentLinkInput struct {
	EventID       string
	Jurisdiction  string
	Registrations []RegistrationInput
	TotalAmount   float64
	ContactEmail  string
}

type CreatePaymentLinkOutput struct {
	LinkURL       string
	TransactionID string
	Reference     string
}

// PaymentLinkClient is the slice of the processor client the initiator needs.
type PaymentLinkClient interface {
	CreatePaymentLink(ctx context.Context, request *wompi.PaymentLinkRequest) (linkID string, rawBody string, err error)
	CheckoutURL(linkID string) string
	Currency() string
	RedirectURL() string
}

type PaymentUsecase interface {
	CreatePaymentLink(ctx context.Context, input *CreatePaymentLinkInput) (*CreatePaymentLinkOutput, error)
	GetTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, []*domain.Registration, error)
	ListTransactions(ctx context.Context, filters domain.TransactionFilters, page, limit int64) ([]*domain.Transaction, int64, error)
}

type DefaultPaymentUsecase struct {
	TransactionRepo  domain.TransactionRepository
	RegistrationRepo domain.RegistrationRepository
	Wompi            PaymentLinkClient
	Metrics          *metrics.PaymentMetrics
	Log              zerolog.Logger
}

func NewDefaultPaymentUsecase(
	transactionRepo domain.TransactionRepository,
	registrationRepo domain.RegistrationRepository,
	wompiClient PaymentLinkClient,
	paymentMetrics *metrics.PaymentMetrics,
	log zerolog.Logger,
) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		TransactionRepo:  transactionRepo,
		RegistrationRepo: registrationRepo,
		Wompi:            wompiClient,
		Metrics:          paymentMetrics,
		Log:              log,
	}
}

// CreatePaymentLink persists a pending transaction with its registrations,
// requests a hosted payment link from the processor and returns the checkout
// URL. The flow is not retried internally; a resubmission by the caller
// always produces a fresh reference.
func (uc *DefaultPaymentUsecase) CreatePaymentLink(ctx context.Context, input *CreatePaymentLinkInput) (*CreatePaymentLinkOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	reference := domain.BuildReference(input.EventID, now)

	transaction := &domain.Transaction{
		ID:           uuid.New().String(),
		Reference:    reference,
		EventID:      input.EventID,
		Jurisdiction: input.Jurisdiction,
		ContactEmail: input.ContactEmail,
		AmountTotal:  input.TotalAmount,
		Currency:     uc.Wompi.Currency(),
		Status:       domain.StatusPending,
		PersonCount:  int32(len(input.Registrations)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.TransactionRepo.Create(ctx, transaction); err != nil {
		uc.Log.Error().Err(err).Str("reference", reference).Msg("failed to persist pending transaction")
		return nil, err
	}

	registrations, err := buildRegistrations(input.Registrations, reference, now)
	if err != nil {
		return nil, err
	}

	// A failure here leaves the transaction pending with zero registrations.
	// The reconciler tolerates that on webhook arrival, so no rollback.
	if err := uc.RegistrationRepo.CreateBatch(ctx, registrations); err != nil {
		uc.Log.Error().Err(err).Str("reference", reference).Msg("failed to persist registrations")
		return nil, err
	}

	linkRequest := uc.buildLinkRequest(transaction, registrations[0])

	linkID, rawBody, err := uc.Wompi.CreatePaymentLink(ctx, linkRequest)
	if err != nil {
		uc.Log.Error().Err(err).Str("reference", reference).Msg("payment link creation rejected by processor")
		uc.Metrics.RecordProcessorError(input.EventID)

		var processorErr *domain.ProcessorError
		if errors.As(err, &processorErr) {
			// Registrations stay pending_payment so a manual retry can reuse
			// the recorded attempt.
			if markErr := uc.TransactionRepo.MarkProcessorError(ctx, reference, processorErr.RawBody); markErr != nil {
				uc.Log.Error().Err(markErr).Str("reference", reference).Msg("failed to record processor error")
			}
		}
		return nil, err
	}

	if err := uc.TransactionRepo.UpdateLink(ctx, reference, linkID, rawBody); err != nil {
		uc.Log.Error().Err(err).Str("reference", reference).Msg("failed to store processor link id")
		return nil, err
	}

	uc.Metrics.RecordLinkCreated(input.EventID, input.Jurisdiction, transaction.Currency, input.TotalAmount)
	uc.Log.Info().
		Str("reference", reference).
		Str("link_id", linkID).
		Int("registrations", len(registrations)).
		Msg("payment link created")

	return &CreatePaymentLinkOutput{
		LinkURL:       uc.Wompi.CheckoutURL(linkID),
		TransactionID: transaction.ID,
		Reference:     reference,
	}, nil
}

func (uc *DefaultPaymentUsecase) GetTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, []*domain.Registration, error) {
	transaction, err := uc.TransactionRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, nil, err
	}

	registrations, err := uc.RegistrationRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, nil, err
	}

	return transaction, registrations, nil
}

func (uc *DefaultPaymentUsecase) ListTransactions(ctx context.Context, filters domain.TransactionFilters, page, limit int64) ([]*domain.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.TransactionRepo.List(ctx, filters, page, limit)
}

func validateInput(input *CreatePaymentLinkInput) error {
	if input.EventID == "" {
		return &domain.ValidationError{Field: "evento_id"}
	}
	if input.Jurisdiction == "" {
		return &domain.ValidationError{Field: "diocesis"}
	}
	if len(input.Registrations) == 0 {
		return &domain.ValidationError{Field: "inscripciones"}
	}
	if input.TotalAmount <= 0 {
		return &domain.ValidationError{Field: "total"}
	}
	return nil
}

func buildRegistrations(inputs []RegistrationInput, reference string, now time.Time) ([]*domain.Registration, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}

	registrations := make([]*domain.Registration, len(inputs))
	for i, in := range inputs {
		registrations[i] = &domain.Registration{
			ID:            idGenerator(),
			ReferencePago: reference,
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			Email:         in.Email,
			Phone:         in.Phone,
			DocumentID:    in.DocumentID,
			Status:        domain.RegistrationPendingPayment,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	return registrations, nil
}

func (uc *DefaultPaymentUsecase) buildLinkRequest(transaction *domain.Transaction, first *domain.Registration) *wompi.PaymentLinkRequest {
	customerEmail := first.Email
	if customerEmail == "" {
		customerEmail = transaction.ContactEmail
	}

	return &wompi.PaymentLinkRequest{
		Name:            fmt.Sprintf("Inscripción evento %s - %s", transaction.EventID, transaction.Jurisdiction),
		Description:     fmt.Sprintf("%d inscripción(es), %s", transaction.PersonCount, transaction.Jurisdiction),
		SingleUse:       true,
		Currency:        transaction.Currency,
		AmountInCents:   ToMinorUnits(transaction.AmountTotal),
		CollectShipping: false,
		Reference:       transaction.Reference,
		RedirectURL:     uc.Wompi.RedirectURL(),
		CustomerData: wompi.CustomerData{
			FullName:    first.FullName(),
			Email:       customerEmail,
			PhoneNumber: first.Phone,
		},
		MetaData: wompi.MetaData{
			EventoID:         transaction.EventID,
			Diocesis:         transaction.Jurisdiction,
			TransaccionID:    transaction.ID,
			CantidadPersonas: transaction.PersonCount,
		},
	}
}

// ToMinorUnits converts the event-currency amount to the integer cents the
// processor expects. Round half up; no fractional units ever go on the wire.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

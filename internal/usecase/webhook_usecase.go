package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	auditlog "github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/logger"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/metrics"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/wompi"
	"github.com/rs/zerolog"
)

// ApprovalMailer sends the confirmation mail once a payment is approved.
type ApprovalMailer interface {
	SendPaymentApproved(recipient, reference string, amountTotal float64, currency string) error
}

type WebhookUsecase interface {
	HandleCallback(ctx context.Context, rawBody []byte) error
}

type DefaultWebhookUsecase struct {
	TransactionRepo  domain.TransactionRepository
	RegistrationRepo domain.RegistrationRepository
	Publisher        domain.PaymentEventPublisher
	Mailer           ApprovalMailer
	AuditLog         auditlog.CallbackLogger
	EventsSecret     string
	Metrics          *metrics.PaymentMetrics
	Log              zerolog.Logger
}

func NewDefaultWebhookUsecase(
	transactionRepo domain.TransactionRepository,
	registrationRepo domain.RegistrationRepository,
	publisher domain.PaymentEventPublisher,
	approvalMailer ApprovalMailer,
	callbackLogger auditlog.CallbackLogger,
	eventsSecret string,
	paymentMetrics *metrics.PaymentMetrics,
	log zerolog.Logger,
) *DefaultWebhookUsecase {

	return &DefaultWebhookUsecase{
		TransactionRepo:  transactionRepo,
		RegistrationRepo: registrationRepo,
		Publisher:        publisher,
		Mailer:           approvalMailer,
		AuditLog:         callbackLogger,
		EventsSecret:     eventsSecret,
		Metrics:          paymentMetrics,
		Log:              log,
	}
}

// HandleCallback verifies and applies one processor callback. Every write is
// keyed by the unique reference and re-applying the same payload converges
// to the same state, so processor redelivery is always safe.
func (uc *DefaultWebhookUsecase) HandleCallback(ctx context.Context, rawBody []byte) error {
	started := time.Now()

	var event wompi.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		uc.Log.Warn().Err(err).Msg("unparseable webhook body")
		return &domain.ValidationError{Field: "body"}
	}

	callbackTransaction := event.Data.Transaction

	// Primary trust boundary: the endpoint is otherwise unauthenticated.
	valid := wompi.VerifyChecksum(
		callbackTransaction.ID,
		callbackTransaction.Status,
		callbackTransaction.AmountInMinorUnits,
		event.Timestamp,
		uc.EventsSecret,
		event.Signature.Checksum,
	)
	uc.audit(ctx, callbackTransaction, valid)

	if !valid {
		uc.Metrics.RecordInvalidSignature()
		uc.Log.Warn().
			Str("processor_transaction_id", callbackTransaction.ID).
			Str("reference", callbackTransaction.Reference).
			Msg("webhook checksum mismatch, possible forgery")
		return domain.ErrInvalidSignature
	}

	if event.Event != wompi.EventTransactionUpdated {
		uc.Log.Debug().Str("event", event.Event).Msg("ignoring unknown webhook event kind")
		return nil
	}

	status := mapProcessorStatus(callbackTransaction.Status)

	if err := uc.TransactionRepo.UpdateStatus(ctx, callbackTransaction.Reference, status, callbackTransaction.ID); err != nil {
		uc.Log.Error().Err(err).Str("reference", callbackTransaction.Reference).Msg("failed to update transaction from webhook")
		return err
	}

	if status == domain.StatusApproved {
		// Zero matching registrations is a tolerated inconsistency from a
		// partially written link creation, not an error.
		paid, err := uc.RegistrationRepo.MarkPaidByReference(ctx, callbackTransaction.Reference)
		if err != nil {
			uc.Log.Error().Err(err).Str("reference", callbackTransaction.Reference).Msg("failed to mark registrations paid")
			return err
		}
		uc.Metrics.RecordRegistrationsPaid(paid)
		uc.Log.Info().
			Str("reference", callbackTransaction.Reference).
			Int64("registrations_paid", paid).
			Msg("payment approved")
	}

	if status.IsTerminal() {
		uc.notifyTerminal(ctx, callbackTransaction.Reference, status)
	}

	uc.Metrics.RecordCallback(string(status), time.Since(started).Seconds())
	return nil
}

// mapProcessorStatus translates the processor vocabulary into local
// transaction states. Unrecognized statuses (VOIDED included) keep the
// transaction pending rather than failing the callback.
func mapProcessorStatus(processorStatus string) domain.TransactionStatus {
	switch processorStatus {
	case wompi.StatusApproved:
		return domain.StatusApproved
	case wompi.StatusDeclined:
		return domain.StatusDeclined
	case wompi.StatusError:
		return domain.StatusFailed
	default:
		return domain.StatusPending
	}
}

// audit is best effort: losing an audit row must never fail a callback.
func (uc *DefaultWebhookUsecase) audit(ctx context.Context, callbackTransaction wompi.WebhookTransaction, signatureValid bool) {
	if uc.AuditLog == nil {
		return
	}
	err := uc.AuditLog.LogCallback(ctx, auditlog.CallbackReceivedEvent{
		Reference:              callbackTransaction.Reference,
		ProcessorTransactionID: callbackTransaction.ID,
		ProcessorStatus:        callbackTransaction.Status,
		MappedStatus:           string(mapProcessorStatus(callbackTransaction.Status)),
		AmountInMinorUnits:     callbackTransaction.AmountInMinorUnits,
		SignatureValid:         signatureValid,
		Timestamp:              time.Now(),
	})
	if err != nil {
		uc.Log.Warn().Err(err).Str("reference", callbackTransaction.Reference).Msg("failed to write callback audit row")
	}
}

func (uc *DefaultWebhookUsecase) notifyTerminal(ctx context.Context, reference string, status domain.TransactionStatus) {
	transaction, err := uc.TransactionRepo.GetByReference(ctx, reference)
	if err != nil {
		uc.Log.Warn().Err(err).Str("reference", reference).Msg("webhook for unknown transaction reference")
		return
	}

	if uc.Publisher != nil {
		go func(event domain.PaymentEvent) {
			if err := uc.Publisher.PublishPayment(event); err != nil {
				uc.Log.Error().Err(err).Str("reference", event.Reference).Msg("failed to publish payment event")
			}
		}(domain.PaymentEvent{
			TransactionID: transaction.ID,
			Reference:     transaction.Reference,
			EventID:       transaction.EventID,
			Jurisdiction:  transaction.Jurisdiction,
			Status:        string(status),
			AmountTotal:   transaction.AmountTotal,
			Currency:      transaction.Currency,
			OccurredAt:    time.Now(),
		})
	}

	if uc.Mailer != nil && status == domain.StatusApproved && transaction.ContactEmail != "" {
		go func(recipient, ref string, amount float64, currency string) {
			if err := uc.Mailer.SendPaymentApproved(recipient, ref, amount, currency); err != nil {
				uc.Log.Warn().Err(err).Str("reference", ref).Msg("confirmation mail not delivered")
			}
		}(transaction.ContactEmail, transaction.Reference, transaction.AmountTotal, transaction.Currency)
	}
}

package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/rs/zerolog"
)

func newPaymentUsecase(
	transactionRepo *MockTransactionRepository,
	registrationRepo *MockRegistrationRepository,
	client *MockLinkClient,
) *DefaultPaymentUsecase {
	return NewDefaultPaymentUsecase(transactionRepo, registrationRepo, client, testMetrics, zerolog.Nop())
}

func validInput() *CreatePaymentLinkInput {
	return &CreatePaymentLinkInput{
		EventID:      "10",
		Jurisdiction: "Bogotá",
		TotalAmount:  50000,
		ContactEmail: "contacto@diocesis.co",
		Registrations: []RegistrationInput{
			{FirstName: "Ana", LastName: "Ruiz", Email: "a@x.co", Phone: "3001234567"},
			{FirstName: "Luis", LastName: "Mora"},
		},
	}
}

func TestCreatePaymentLink_Success(t *testing.T) {
	ctx := context.Background()
	transactionRepo := NewMockTransactionRepository()
	registrationRepo := NewMockRegistrationRepository()
	client := &MockLinkClient{LinkID: "link_abc123", RawBody: `{"data":{"id":"link_abc123"}}`}

	uc := newPaymentUsecase(transactionRepo, registrationRepo, client)

	output, err := uc.CreatePaymentLink(ctx, validInput())
	if err != nil {
		t.Fatalf("CreatePaymentLink failed: %v", err)
	}

	if matched, _ := regexp.MatchString(`^EV-10-\d+$`, output.Reference); !matched {
		t.Errorf("reference %q does not match EV-10-<epoch_ms>", output.Reference)
	}

	if !strings.Contains(output.LinkURL, "link_abc123") {
		t.Errorf("link URL %q does not contain the processor link id", output.LinkURL)
	}

	transaction, ok := transactionRepo.Transactions[output.Reference]
	if !ok {
		t.Fatalf("transaction not persisted under reference %q", output.Reference)
	}
	if transaction.Status != domain.StatusPending {
		t.Errorf("expected status pending, got %s", transaction.Status)
	}
	if transaction.AmountTotal != 50000 {
		t.Errorf("expected amount 50000, got %f", transaction.AmountTotal)
	}
	if transaction.ExternalLinkID != "link_abc123" {
		t.Errorf("processor link id not stored, got %q", transaction.ExternalLinkID)
	}

	if len(registrationRepo.Registrations) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(registrationRepo.Registrations))
	}
	for _, registration := range registrationRepo.Registrations {
		if registration.Status != domain.RegistrationPendingPayment {
			t.Errorf("registration %s: expected pending_payment, got %s", registration.ID, registration.Status)
		}
		if registration.ReferencePago != output.Reference {
			t.Errorf("registration %s not linked to reference", registration.ID)
		}
	}
}

func TestCreatePaymentLink_PendingBeforeExternalCall(t *testing.T) {
	ctx := context.Background()
	transactionRepo := NewMockTransactionRepository()
	registrationRepo := NewMockRegistrationRepository()

	var observed domain.TransactionStatus
	var observedRegistrations int
	client := &MockLinkClient{LinkID: "link_1"}
	client.OnCreate = func() {
		for _, transaction := range transactionRepo.Transactions {
			observed = transaction.Status
		}
		observedRegistrations = len(registrationRepo.Registrations)
	}

	uc := newPaymentUsecase(transactionRepo, registrationRepo, client)

	if _, err := uc.CreatePaymentLink(ctx, validInput()); err != nil {
		t.Fatalf("CreatePaymentLink failed: %v", err)
	}

	if observed != domain.StatusPending {
		t.Errorf("transaction was %q at the moment of the processor call, want pending", observed)
	}
	if observedRegistrations != 2 {
		t.Errorf("registrations not persisted before the processor call, got %d", observedRegistrations)
	}
}

func TestCreatePaymentLink_MinorUnitsConversion(t *testing.T) {
	ctx := context.Background()
	transactionRepo := NewMockTransactionRepository()
	registrationRepo := NewMockRegistrationRepository()
	client := &MockLinkClient{LinkID: "link_1"}

	uc := newPaymentUsecase(transactionRepo, registrationRepo, client)

	if _, err := uc.CreatePaymentLink(ctx, validInput()); err != nil {
		t.Fatalf("CreatePaymentLink failed: %v", err)
	}

	if client.LastRequest.AmountInCents != 5000000 {
		t.Errorf("expected 5000000 cents for total 50000, got %d", client.LastRequest.AmountInCents)
	}
	if !client.LastRequest.SingleUse {
		t.Error("payment link must be single use")
	}
	if client.LastRequest.Currency != "COP" {
		t.Errorf("expected COP, got %s", client.LastRequest.Currency)
	}
	if client.LastRequest.CustomerData.FullName != "Ana Ruiz" {
		t.Errorf("customer data not drawn from first registration, got %q", client.LastRequest.CustomerData.FullName)
	}
	if client.LastRequest.CustomerData.Email != "a@x.co" {
		t.Errorf("expected first registration email, got %q", client.LastRequest.CustomerData.Email)
	}
}

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{50000, 5000000},
		{0.01, 1},
		{123.455, 12346},
		{99.994, 9999},
	}
	for _, tc := range cases {
		if got := ToMinorUnits(tc.amount); got != tc.want {
			t.Errorf("ToMinorUnits(%f) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestCreatePaymentLink_ContactEmailFallback(t *testing.T) {
	ctx := context.Background()
	transactionRepo := NewMockTransactionRepository()
	registrationRepo := NewMockRegistrationRepository()
	client := &MockLinkClient{LinkID: "link_1"}

	uc := newPaymentUsecase(transactionRepo, registrationRepo, client)

	input := validInput()
	input.Registrations[0].Email = ""

	if _, err := uc.CreatePaymentLink(ctx, input); err != nil {
		t.Fatalf("CreatePaymentLink failed: %v", err)
	}

	if client.LastRequest.CustomerData.Email != "contacto@diocesis.co" {
		t.Errorf("expected contact email fallback, got %q", client.LastRequest.CustomerData.Email)
	}
}

func TestCreatePaymentLink_Validation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreatePaymentLinkInput)
	}{
		{"missing event id", func(in *CreatePaymentLinkInput) { in.EventID = "" }},
		{"missing jurisdiction", func(in *CreatePaymentLinkInput) { in.Jurisdiction = "" }},
		{"no registrations", func(in *CreatePaymentLinkInput) { in.Registrations = nil }},
		{"zero total", func(in *CreatePaymentLinkInput) { in.TotalAmount = 0 }},
		{"negative total", func(in *CreatePaymentLinkInput) { in.TotalAmount = -100 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transactionRepo := NewMockTransactionRepository()
			registrationRepo := NewMockRegistrationRepository()
			uc := newPaymentUsecase(transactionRepo, registrationRepo, &MockLinkClient{LinkID: "link_1"})

			input := validInput()
			tc.mutate(input)

			_, err := uc.CreatePaymentLink(ctx, input)

			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(transactionRepo.Transactions) != 0 {
				t.Error("nothing must be persisted on validation failure")
			}
		})
	}
}

func TestCreatePaymentLink_ProcessorFailure(t *testing.T) {
	ctx := context.Background()
	transactionRepo := NewMockTransactionRepository()
	registrationRepo := NewMockRegistrationRepository()
	client := &MockLinkClient{
		RawBody: `{"error":{"type":"INVALID_ACCESS_TOKEN"}}`,
		Err:     &domain.ProcessorError{StatusCode: 401, RawBody: `{"error":{"type":"INVALID_ACCESS_TOKEN"}}`},
	}

	uc := newPaymentUsecase(transactionRepo, registrationRepo, client)

	_, err := uc.CreatePaymentLink(ctx, validInput())

	var processorErr *domain.ProcessorError
	if !errors.As(err, &processorErr) {
		t.Fatalf("expected ProcessorError, got %v", err)
	}

	if len(transactionRepo.Transactions) != 1 {
		t.Fatal("transaction must stay persisted after processor failure")
	}
	for _, transaction := range transactionRepo.Transactions {
		if transaction.Status != domain.StatusProcessorError {
			t.Errorf("expected processor_error, got %s", transaction.Status)
		}
		if !strings.Contains(transaction.RawResponse, "INVALID_ACCESS_TOKEN") {
			t.Error("raw processor response not preserved")
		}
	}

	// Registrations are deliberately not rolled back.
	for _, registration := range registrationRepo.Registrations {
		if registration.Status != domain.RegistrationPendingPayment {
			t.Errorf("registration %s must remain pending_payment", registration.ID)
		}
	}
}

func TestCreatePaymentLink_RegistrationInsertFailure(t *testing.T) {
	ctx := context.Background()
	transactionRepo := NewMockTransactionRepository()
	registrationRepo := NewMockRegistrationRepository()
	registrationRepo.CreateErr = &domain.PersistenceError{Op: "registration batch create", Err: errors.New("connection reset")}
	client := &MockLinkClient{LinkID: "link_1"}

	uc := newPaymentUsecase(transactionRepo, registrationRepo, client)

	_, err := uc.CreatePaymentLink(ctx, validInput())
	if err == nil {
		t.Fatal("expected error when registrations cannot be persisted")
	}

	if client.LastRequest != nil {
		t.Error("processor must not be called after a registration insert failure")
	}

	// Tolerated inconsistency: the pending transaction stays behind.
	if len(transactionRepo.Transactions) != 1 {
		t.Error("pending transaction should remain for later reconciliation")
	}
}

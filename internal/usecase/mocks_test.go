package usecase

import (
	"context"
	"fmt"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	auditlog "github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/logger"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/metrics"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/wompi"
)

// Metrics register against the default prometheus registry, so the test
// binary builds them exactly once.
var testMetrics = metrics.NewPaymentMetrics()

type MockTransactionRepository struct {
	Transactions map[string]*domain.Transaction

	CreateErr       error
	UpdateStatusErr error
	UpdateLinkErr   error

	StatusUpdates []string
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(_ context.Context, transaction *domain.Transaction) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	copied := *transaction
	m.Transactions[transaction.Reference] = &copied
	return nil
}

func (m *MockTransactionRepository) GetByReference(_ context.Context, reference string) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[reference]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (m *MockTransactionRepository) UpdateLink(_ context.Context, reference, externalLinkID, rawResponse string) error {
	if m.UpdateLinkErr != nil {
		return m.UpdateLinkErr
	}
	if transaction, ok := m.Transactions[reference]; ok {
		transaction.ExternalLinkID = externalLinkID
		transaction.RawResponse = rawResponse
	}
	return nil
}

func (m *MockTransactionRepository) UpdateStatus(_ context.Context, reference string, status domain.TransactionStatus, processorTransactionID string) error {
	if m.UpdateStatusErr != nil {
		return m.UpdateStatusErr
	}
	m.StatusUpdates = append(m.StatusUpdates, fmt.Sprintf("%s:%s", reference, status))
	if transaction, ok := m.Transactions[reference]; ok {
		transaction.Status = status
		if processorTransactionID != "" {
			transaction.ProcessorTransactionID = processorTransactionID
		}
	}
	return nil
}

func (m *MockTransactionRepository) MarkProcessorError(_ context.Context, reference, rawResponse string) error {
	if transaction, ok := m.Transactions[reference]; ok {
		transaction.Status = domain.StatusProcessorError
		transaction.RawResponse = rawResponse
	}
	return nil
}

func (m *MockTransactionRepository) List(_ context.Context, filters domain.TransactionFilters, page, limit int64) ([]*domain.Transaction, int64, error) {
	var result []*domain.Transaction
	for _, transaction := range m.Transactions {
		if filters.Status != "" && transaction.Status != filters.Status {
			continue
		}
		if filters.EventID != "" && transaction.EventID != filters.EventID {
			continue
		}
		copied := *transaction
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

type MockRegistrationRepository struct {
	Registrations []*domain.Registration

	CreateErr   error
	MarkPaidErr error
}

func NewMockRegistrationRepository() *MockRegistrationRepository {
	return &MockRegistrationRepository{}
}

func (m *MockRegistrationRepository) CreateBatch(_ context.Context, registrations []*domain.Registration) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, registration := range registrations {
		copied := *registration
		m.Registrations = append(m.Registrations, &copied)
	}
	return nil
}

func (m *MockRegistrationRepository) GetByReference(_ context.Context, reference string) ([]*domain.Registration, error) {
	var result []*domain.Registration
	for _, registration := range m.Registrations {
		if registration.ReferencePago == reference {
			copied := *registration
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockRegistrationRepository) MarkPaidByReference(_ context.Context, reference string) (int64, error) {
	if m.MarkPaidErr != nil {
		return 0, m.MarkPaidErr
	}
	var affected int64
	for _, registration := range m.Registrations {
		if registration.ReferencePago == reference {
			registration.Status = domain.RegistrationPaid
			affected++
		}
	}
	return affected, nil
}

type MockLinkClient struct {
	LinkID      string
	RawBody     string
	Err         error
	LastRequest *wompi.PaymentLinkRequest

	// OnCreate runs before the canned response is returned, letting tests
	// observe store state at the moment of the external call.
	OnCreate func()
}

func (m *MockLinkClient) CreatePaymentLink(_ context.Context, request *wompi.PaymentLinkRequest) (string, string, error) {
	m.LastRequest = request
	if m.OnCreate != nil {
		m.OnCreate()
	}
	if m.Err != nil {
		return "", m.RawBody, m.Err
	}
	return m.LinkID, m.RawBody, nil
}

func (m *MockLinkClient) CheckoutURL(linkID string) string {
	return "https://checkout.example.co/l/" + linkID
}

func (m *MockLinkClient) Currency() string { return "COP" }

func (m *MockLinkClient) RedirectURL() string { return "https://eventos.example.co/gracias" }

type MockPublisher struct {
	Events chan domain.PaymentEvent
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make(chan domain.PaymentEvent, 8)}
}

func (m *MockPublisher) PublishPayment(event domain.PaymentEvent) error {
	m.Events <- event
	return nil
}

type MockCallbackLogger struct {
	Rows []auditlog.CallbackReceivedEvent
}

func (m *MockCallbackLogger) LogCallback(_ context.Context, event auditlog.CallbackReceivedEvent) error {
	m.Rows = append(m.Rows, event)
	return nil
}

type MockMailer struct {
	Sent chan string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{Sent: make(chan string, 8)}
}

func (m *MockMailer) SendPaymentApproved(recipient, reference string, amountTotal float64, currency string) error {
	m.Sent <- recipient
	return nil
}

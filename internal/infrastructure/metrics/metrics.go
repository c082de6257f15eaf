package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PaymentMetrics struct {
	LinksCreatedTotal       prometheus.CounterVec
	LinksCreatedAmountTotal prometheus.CounterVec
	ProcessorErrorsTotal    prometheus.CounterVec

	WebhookCallbacksTotal        prometheus.CounterVec
	WebhookInvalidSignatureTotal prometheus.Counter
	WebhookProcessingDuration    prometheus.HistogramVec

	RegistrationsPaidTotal prometheus.Counter
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		LinksCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_links_created_total",
				Help: "Total payment links created per event",
			},
			[]string{"event_id", "jurisdiction"},
		),

		LinksCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_links_amount_total",
				Help: "Total amount across created payment links",
			},
			[]string{"event_id", "currency"},
		),

		ProcessorErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_processor_errors_total",
				Help: "Link creation attempts rejected or timed out by the processor",
			},
			[]string{"event_id"},
		),

		WebhookCallbacksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_callbacks_total",
				Help: "Webhook callbacks received, labeled by mapped internal status",
			},
			[]string{"status"},
		),

		WebhookInvalidSignatureTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webhook_invalid_signature_total",
				Help: "Webhook callbacks rejected on checksum mismatch",
			},
		),

		WebhookProcessingDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webhook_processing_duration_seconds",
				Help:    "Webhook handling duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"status"},
		),

		RegistrationsPaidTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "registrations_paid_total",
				Help: "Registrations moved to paid by approved callbacks",
			},
		),
	}
}

func (m *PaymentMetrics) RecordLinkCreated(eventID, jurisdiction, currency string, amountTotal float64) {
	m.LinksCreatedTotal.WithLabelValues(eventID, jurisdiction).Inc()
	m.LinksCreatedAmountTotal.WithLabelValues(eventID, currency).Add(amountTotal)
}

func (m *PaymentMetrics) RecordProcessorError(eventID string) {
	m.ProcessorErrorsTotal.WithLabelValues(eventID).Inc()
}

func (m *PaymentMetrics) RecordCallback(status string, durationSeconds float64) {
	m.WebhookCallbacksTotal.WithLabelValues(status).Inc()
	m.WebhookProcessingDuration.WithLabelValues(status).Observe(durationSeconds)
}

func (m *PaymentMetrics) RecordInvalidSignature() {
	m.WebhookInvalidSignatureTotal.Inc()
}

func (m *PaymentMetrics) RecordRegistrationsPaid(count int64) {
	m.RegistrationsPaidTotal.Add(float64(count))
}

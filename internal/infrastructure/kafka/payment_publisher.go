package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type PaymentEventPublisher struct {
	writer *kafka.Writer
}

func NewPaymentEventPublisher(brokers []string, topic string) *PaymentEventPublisher {
	return &PaymentEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishPayment emits one message per terminal transaction transition,
// keyed by reference so all events for a transaction land on one partition.
func (k *PaymentEventPublisher) PublishPayment(event domain.PaymentEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.Reference),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *PaymentEventPublisher) Close() error {
	return k.writer.Close()
}

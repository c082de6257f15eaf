package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/dmontoya-dev/eventos-payment-service/internal/config"
	"github.com/rs/zerolog"
)

type Mailer struct {
	cfg config.SMTP
	log zerolog.Logger
}

func New(cfg config.SMTP, log zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendPaymentApproved mails the payment confirmation to the transaction
// contact. Failures are logged by the caller; approval state never depends
// on mail delivery.
func (m *Mailer) SendPaymentApproved(recipient, reference string, amountTotal float64, currency string) error {
	subject := "Pago aprobado - inscripción confirmada"
	body := fmt.Sprintf(
		"Hola,\n\nSu pago por %.0f %s fue aprobado y su inscripción quedó confirmada.\nReferencia de pago: %s\n\n¡Nos vemos en el encuentro!",
		amountTotal, currency, reference,
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, recipient, subject, body,
	)

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, []byte(msg)); err != nil {
		m.log.Warn().Str("recipient", recipient).Err(err).Msg("failed to send confirmation email")
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Str("recipient", recipient).Str("reference", reference).Msg("confirmation email sent")
	return nil
}

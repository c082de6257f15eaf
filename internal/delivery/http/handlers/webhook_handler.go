package handlers

import (
	"errors"
	"io"

	"github.com/dmontoya-dev/eventos-payment-service/internal/delivery/http/dto"
	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type WebhookHandler struct {
	Usecase usecase.WebhookUsecase
	Log     zerolog.Logger
}

func NewWebhookHandler(webhookUsecase usecase.WebhookUsecase, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		Usecase: webhookUsecase,
		Log:     log,
	}
}

// HandleCallback is the processor-facing webhook endpoint. A 500 here makes
// the processor redeliver, which the reconciler is built to absorb.
func (h *WebhookHandler) HandleCallback(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.Log.Warn().Err(err).Msg("failed to read webhook body")
		dto.BadResponseError(c, dto.FieldIncorrect, "Unreadable request body")
		return
	}

	if err := h.Usecase.HandleCallback(c.Request.Context(), rawBody); err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			dto.UnauthorizedError(c, "Invalid event signature")
		case errors.As(err, &validationErr):
			dto.BadResponseError(c, dto.FieldIncorrect, validationErr.Error())
		default:
			h.Log.Error().Err(err).Msg("webhook processing failed")
			dto.InternalServerError(c)
		}
		return
	}

	dto.WebhookAck(c)
}

package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/delivery/http/dto"
	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/usecase"
	"github.com/dmontoya-dev/eventos-payment-service/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type PaymentHandler struct {
	Usecase usecase.PaymentUsecase
	Log     zerolog.Logger
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		Usecase: paymentUsecase,
		Log:     log,
	}
}

func (h *PaymentHandler) CreateLink(c *gin.Context) {
	var req dto.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Log.Warn().Err(err).Msg("failed to parse create link request")
		dto.BadResponseError(c, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(c.Request.Context(), req); verr != nil {
		h.Log.Warn().Msgf("validation failed: %v", verr)
		dto.BadResponseError(c, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	input := &usecase.CreatePaymentLinkInput{
		EventID:      req.EventID,
		Jurisdiction: req.Jurisdiction,
		TotalAmount:  req.TotalAmount,
		ContactEmail: req.ContactEmail,
	}
	for _, registration := range req.Registrations {
		input.Registrations = append(input.Registrations, usecase.RegistrationInput{
			FirstName:  registration.FirstName,
			LastName:   registration.LastName,
			Email:      registration.Email,
			Phone:      registration.Phone,
			DocumentID: registration.DocumentID,
		})
	}

	output, err := h.Usecase.CreatePaymentLink(c.Request.Context(), input)
	if err != nil {
		var validationErr *domain.ValidationError
		var processorErr *domain.ProcessorError
		switch {
		case errors.As(err, &validationErr):
			dto.BadResponseError(c, dto.FieldIncorrect, validationErr.Error())
		case errors.As(err, &processorErr):
			dto.ProcessorError(c, processorErr.Error())
		default:
			h.Log.Error().Err(err).Msg("failed to create payment link")
			dto.InternalServerError(c)
		}
		return
	}

	dto.SuccessCreatedResponse(c, dto.CreateLinkResponse{
		LinkURL:       output.LinkURL,
		TransactionID: output.TransactionID,
		Reference:     output.Reference,
	})
}

func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	reference := c.Param("reference")

	transaction, registrations, err := h.Usecase.GetTransactionByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			dto.NotFoundError(c, "Transaction not found")
			return
		}
		h.Log.Error().Err(err).Str("reference", reference).Msg("failed to load transaction")
		dto.InternalServerError(c)
		return
	}

	detail := dto.TransactionDetailResponse{
		Transaction:   toTransactionResponse(transaction),
		Registrations: make([]dto.RegistrationResponse, 0, len(registrations)),
	}
	for _, registration := range registrations {
		detail.Registrations = append(detail.Registrations, dto.RegistrationResponse{
			ID:            registration.ID,
			ReferencePago: registration.ReferencePago,
			FirstName:     registration.FirstName,
			LastName:      registration.LastName,
			Email:         registration.Email,
			Status:        string(registration.Status),
			UpdatedAt:     registration.UpdatedAt,
		})
	}

	dto.SuccessResponse(c, detail)
}

func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	page := parseInt64Query(c, "page", 1)
	limit := parseInt64Query(c, "limit", 20)

	filters := domain.TransactionFilters{
		Status:  domain.TransactionStatus(c.Query("status")),
		EventID: c.Query("event_id"),
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = t
		}
	}

	transactions, total, err := h.Usecase.ListTransactions(c.Request.Context(), filters, page, limit)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list transactions")
		dto.InternalServerError(c)
		return
	}

	list := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(transactions)),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}
	for _, transaction := range transactions {
		list.Transactions = append(list.Transactions, toTransactionResponse(transaction))
	}

	dto.SuccessResponse(c, list)
}

func toTransactionResponse(transaction *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:             transaction.ID,
		Reference:      transaction.Reference,
		EventID:        transaction.EventID,
		Jurisdiction:   transaction.Jurisdiction,
		ContactEmail:   transaction.ContactEmail,
		AmountTotal:    transaction.AmountTotal,
		Currency:       transaction.Currency,
		Status:         string(transaction.Status),
		ExternalLinkID: transaction.ExternalLinkID,
		PersonCount:    transaction.PersonCount,
		CreatedAt:      transaction.CreatedAt,
		UpdatedAt:      transaction.UpdatedAt,
	}
}

func parseInt64Query(c *gin.Context, name string, fallback int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

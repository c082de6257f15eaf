package dto

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	ProcessorRejected  = "PROCESSOR_REJECTED"
	SignatureInvalid   = "SIGNATURE_INVALID"
	NotFound           = "NOT_FOUND"
	InternalError      = "Service is currently unavailable. Please try again later."
)

type RegistrationRequest struct {
	FirstName  string `json:"nombre" validate:"required,min=2,max=255"`
	LastName   string `json:"apellido" validate:"max=255"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"telefono"`
	DocumentID string `json:"documento"`
}

type CreateLinkRequest struct {
	EventID       string                `json:"evento_id" validate:"required"`
	Jurisdiction  string                `json:"diocesis" validate:"required"`
	TotalAmount   float64               `json:"total" validate:"required,gt=0"`
	ContactEmail  string                `json:"email_contacto" validate:"omitempty,email"`
	Registrations []RegistrationRequest `json:"inscripciones" validate:"required,min=1,dive"`
}

type CreateLinkResponse struct {
	LinkURL       string `json:"link_url"`
	TransactionID string `json:"transaction_id"`
	Reference     string `json:"reference"`
}

type TransactionResponse struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	EventID        string    `json:"event_id"`
	Jurisdiction   string    `json:"jurisdiction"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	AmountTotal    float64   `json:"amount_total"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	ExternalLinkID string    `json:"external_link_id,omitempty"`
	PersonCount    int32     `json:"person_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegistrationResponse struct {
	ID            string    `json:"id"`
	ReferencePago string    `json:"reference_pago"`
	FirstName     string    `json:"nombre"`
	LastName      string    `json:"apellido,omitempty"`
	Email         string    `json:"email,omitempty"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TransactionDetailResponse struct {
	Transaction   TransactionResponse    `json:"transaction"`
	Registrations []RegistrationResponse `json:"registrations"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int64                 `json:"page"`
	Limit        int64                 `json:"limit"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *gin.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *gin.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func UnauthorizedError(c *gin.Context, desc string) {
	c.JSON(401, Response{
		Status: "error",
		Error: &Error{
			Code: SignatureInvalid,
			Desc: desc,
		},
	})
}

func ProcessorError(c *gin.Context, desc string) {
	c.JSON(502, Response{
		Status: "error",
		Error: &Error{
			Code: ProcessorRejected,
			Desc: desc,
		},
	})
}

func NotFoundError(c *gin.Context, desc string) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: NotFound,
			Desc: desc,
		},
	})
}

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *gin.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}

// WebhookAck is the body the processor expects on accepted or ignored
// callbacks.
func WebhookAck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "success"})
}

package wompi

// Processor transaction statuses carried in webhook callbacks. Anything
// outside this set keeps the local transaction pending.
const (
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
	StatusError    = "ERROR"
	StatusVoided   = "VOIDED"
)

// EventTransactionUpdated is the only event kind this service reacts to.
// Unknown kinds are acknowledged and ignored for forward compatibility.
const EventTransactionUpdated = "transaction.updated"

type CustomerData struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type MetaData struct {
	EventoID         string `json:"evento_id"`
	Diocesis         string `json:"diocesis"`
	TransaccionID    string `json:"transaccion_id"`
	CantidadPersonas int32  `json:"cantidad_personas"`
}

type PaymentLinkRequest struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	SingleUse       bool         `json:"single_use"`
	Currency        string       `json:"currency"`
	AmountInCents   int64        `json:"amount_in_cents"`
	CollectShipping bool         `json:"collect_shipping"`
	Reference       string       `json:"reference"`
	RedirectURL     string       `json:"redirect_url"`
	CustomerData    CustomerData `json:"customer_data"`
	MetaData        MetaData     `json:"meta_data"`
}

type PaymentLinkResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type WebhookTransaction struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	AmountInMinorUnits int64  `json:"amount_in_minor_units"`
	Reference          string `json:"reference"`
}

type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Transaction WebhookTransaction `json:"transaction"`
	} `json:"data"`
	Signature struct {
		Checksum string `json:"checksum"`
	} `json:"signature"`
	Timestamp int64 `json:"timestamp"`
}

package wompi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmontoya-dev/eventos-payment-service/internal/config"
	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
)

type Client struct {
	baseURL         string
	checkoutBaseURL string
	apiKey          string
	redirectURL     string
	currency        string
	httpClient      *http.Client
}

func NewClient(cfg config.Wompi) *Client {
	return &Client{
		baseURL:         cfg.BaseURL,
		checkoutBaseURL: cfg.CheckoutBaseURL,
		apiKey:          cfg.APIKey,
		redirectURL:     cfg.RedirectURL,
		currency:        cfg.Currency,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) Currency() string { return c.currency }

func (c *Client) RedirectURL() string { return c.redirectURL }

// CheckoutURL composes the hosted payment page URL for a created link.
func (c *Client) CheckoutURL(linkID string) string {
	return fmt.Sprintf("%s/l/%s", c.checkoutBaseURL, linkID)
}

// CreatePaymentLink submits a link creation request to the processor and
// returns the assigned link id together with the raw response body, which is
// persisted for audit. Timeouts and non-2xx responses both come back as a
// ProcessorError.
func (c *Client) CreatePaymentLink(ctx context.Context, request *PaymentLinkRequest) (string, string, error) {
	requestBodyBytes, err := json.Marshal(request)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal payment link request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/v1/payment_links", c.baseURL),
		bytes.NewBuffer(requestBodyBytes),
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment link request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+c.apiKey)

	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return "", "", &domain.ProcessorError{Err: err}
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", "", &domain.ProcessorError{Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", string(responseBodyBytes), &domain.ProcessorError{
			StatusCode: response.StatusCode,
			RawBody:    string(responseBodyBytes),
		}
	}

	var linkResponse PaymentLinkResponse
	if err := json.Unmarshal(responseBodyBytes, &linkResponse); err != nil {
		return "", string(responseBodyBytes), &domain.ProcessorError{
			StatusCode: response.StatusCode,
			RawBody:    string(responseBodyBytes),
			Err:        err,
		}
	}

	if linkResponse.Data.ID == "" {
		return "", string(responseBodyBytes), &domain.ProcessorError{
			StatusCode: response.StatusCode,
			RawBody:    string(responseBodyBytes),
		}
	}

	return linkResponse.Data.ID, string(responseBodyBytes), nil
}

package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stocbot/order-assistant/internal/domain"
)

// InvoiceClient talks to the document service that renders the invoice PDF
// and emails it to the customer.
type InvoiceClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInvoiceClient(baseURL string) *InvoiceClient {
	return &InvoiceClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type issueResponse struct {
	Success    bool    `json:"success"`
	GrossTotal float64 `json:"gross_total"`
}

// Issue renders and delivers the invoice, returning the gross total the
// document service computed.
func (c *InvoiceClient) Issue(ctx context.Context, inv *domain.InvoiceRequest) (float64, error) {
	payload, err := json.Marshal(inv)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal invoice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoices", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to build invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("invoice delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("invoice service returned status %d", resp.StatusCode)
	}

	var result issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode invoice response: %w", err)
	}
	if !result.Success {
		return 0, fmt.Errorf("invoice service reported failure")
	}

	return result.GrossTotal, nil
}

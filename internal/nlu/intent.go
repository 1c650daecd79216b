package nlu

import (
	"encoding/json"
	"errors"
	"strings"
)

// Intent labels the classifier may return.
const (
	IntentCheckStock          = "check_stock"
	IntentAddOrder            = "add_order"
	IntentUnknownProduct      = "unknown_product"
	IntentMissingOrderDetails = "missing_order_details"
	IntentTotalProducts       = "get_total_products"
	IntentTotalStockValue     = "get_total_stock_value"
	IntentNumOrders           = "get_num_orders"
	IntentTotalOrderRevenue   = "get_total_order_revenue"
	IntentLowStockCount       = "get_low_stock_count"
	IntentCapabilities        = "get_capabilities"
)

// ErrMalformedPayload signals output that looked like JSON but failed to parse.
var ErrMalformedPayload = errors.New("malformed intent payload")

type ProductSlot struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// IntentPayload is the structured side of the classifier contract. Only the
// fields belonging to the returned intent are populated.
type IntentPayload struct {
	Intent        string        `json:"intent"`
	ProductID     string        `json:"product_id"`
	Products      []ProductSlot `json:"products"`
	CustomerID    string        `json:"customer_id"`
	CustomerEmail string        `json:"customer_email"`
	Query         string        `json:"query"`
	Message       string        `json:"message"`
	Capabilities  []string      `json:"capabilities"`
}

// ParsePayload interprets the raw classifier output. When the output does not
// look like JSON it is plain conversational text and is returned as-is with a
// nil payload. Output that starts a JSON object but fails to parse, or parses
// without an intent field, yields ErrMalformedPayload.
func ParsePayload(raw string) (*IntentPayload, error) {
	trimmed := strings.TrimSpace(raw)

	// Models occasionally wrap the JSON in a markdown fence.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !strings.HasPrefix(trimmed, "{") {
		return nil, nil
	}

	var payload IntentPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, ErrMalformedPayload
	}
	if payload.Intent == "" {
		return nil, ErrMalformedPayload
	}

	return &payload, nil
}

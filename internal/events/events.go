package events

import (
	"time"
)

// OrderPlacedEvent is published once per completed fulfillment, carrying only
// the lines that were actually processed.
type OrderPlacedEvent struct {
	EventID       string      `json:"event_id"`
	OrderID       string      `json:"order_id"`
	CustomerTaxID string      `json:"customer_tax_id"`
	Items         []OrderItem `json:"items"`
	NetTotal      float64     `json:"net_total"`
	GrossTotal    float64     `json:"gross_total"`
	Timestamp     time.Time   `json:"timestamp"`
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	PriceExVAT  float64 `json:"price_ex_vat"`
}

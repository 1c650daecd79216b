package domain

import "time"

type OrderLineStatus string

const (
	OrderLineStatusPlaced OrderLineStatus = "plasata"
)

// OrderLine is one product+quantity pair inside a (possibly multi-line) order.
// Fields may still be empty while the order is being collected conversationally.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderRecord is one immutable ledger row per (order, product) line.
// Rows sharing an OrderID belong to the same customer transaction.
type OrderRecord struct {
	RecordID       string          `dynamodbav:"record_id" json:"record_id"`
	OrderID        string          `dynamodbav:"order_id" json:"order_id"`
	CustomerTaxID  string          `dynamodbav:"customer_tax_id" json:"customer_tax_id"`
	ProductID      string          `dynamodbav:"product_id" json:"product_id"`
	Quantity       int             `dynamodbav:"quantity" json:"quantity"`
	UnitPriceExVAT float64         `dynamodbav:"unit_price_ex_vat" json:"unit_price_ex_vat"`
	VATValue       float64         `dynamodbav:"vat_value" json:"vat_value"`
	TotalWithVAT   float64         `dynamodbav:"total_with_vat" json:"total_with_vat"`
	OrderDate      time.Time       `dynamodbav:"order_date" json:"order_date"`
	PaymentDueDate time.Time       `dynamodbav:"payment_due_date" json:"payment_due_date"`
	Status         OrderLineStatus `dynamodbav:"status" json:"status"`
}

// CustomerDetails holds the legal details resolved from a tax ID (CUI).
// Email comes from the user, not from the registry.
type CustomerDetails struct {
	LegalName      string `json:"legal_name"`
	TaxID          string `json:"tax_id"`
	RegistryNumber string `json:"registry_number"`
	Address        string `json:"address"`
	Country        string `json:"country"`
	Email          string `json:"email"`
}

package domain

import "time"

type InvoiceLine struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	UnitPriceExVAT float64 `json:"unit_price_ex_vat"`
	VATRate        float64 `json:"vat_rate"`
}

// InvoiceRequest is the payload handed to the document service for rendering
// and delivery. It carries only lines that were actually fulfilled.
type InvoiceRequest struct {
	OrderID        string          `json:"order_id"`
	OrderDate      time.Time       `json:"order_date"`
	PaymentDueDate time.Time       `json:"payment_due_date"`
	Lines          []InvoiceLine   `json:"lines"`
	Customer       CustomerDetails `json:"customer"`
	SellerName     string          `json:"seller_name"`
	SellerTaxID    string          `json:"seller_tax_id"`
	NetTotal       float64         `json:"net_total"`
}

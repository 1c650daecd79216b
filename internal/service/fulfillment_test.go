package service

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/repository"
	"go.uber.org/zap"
)

func testProducts() []*domain.Product {
	return []*domain.Product{
		{
			ProductID:      "P001",
			Name:           "Tricou",
			StockQty:       42,
			SalePriceExVAT: 100,
			VATRate:        0.19,
		},
		{
			ProductID:      "P002",
			Name:           "Bere",
			StockQty:       30,
			SalePriceExVAT: 10,
			VATRate:        0.19,
		},
	}
}

func testCustomer() *domain.CustomerDetails {
	return &domain.CustomerDetails{
		LegalName:      "Test SRL",
		TaxID:          "47315510",
		RegistryNumber: "J40/1234/2020",
		Address:        "Str. Exemplu 1, București",
		Country:        "România",
	}
}

func newTestPipeline(inv *mockInventory, ledger *mockLedger, reg *stubRegistry, issuer *stubIssuer, pub EventPublisher) *FulfillmentPipeline {
	p := NewFulfillmentPipeline(inv, ledger, reg, issuer, pub,
		SellerInfo{Name: "Stocbot SRL", TaxID: "RO11111111"}, zap.NewNop())
	p.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	p.newID = func() string { return "CMD-TEST-1" }
	return p
}

func TestFulfill_SingleLine(t *testing.T) {
	inv := newMockInventory(testProducts()...)
	ledger := newMockLedger()
	reg := &stubRegistry{details: testCustomer()}
	issuer := &stubIssuer{gross: 595}
	pub := &stubPublisher{}

	p := newTestPipeline(inv, ledger, reg, issuer, pub)

	msg := p.Fulfill(context.Background(), []domain.OrderLine{{ProductID: "P001", Quantity: 5}},
		"47315510", "client@test.com")

	if inv.stockOf("P001") != 37 {
		t.Errorf("stock = %d, want 37", inv.stockOf("P001"))
	}
	if len(ledger.records) != 1 {
		t.Fatalf("records = %d, want 1", len(ledger.records))
	}

	rec := ledger.records[0]
	if rec.OrderID != "CMD-TEST-1" {
		t.Errorf("order id = %q, want CMD-TEST-1", rec.OrderID)
	}
	if rec.CustomerTaxID != "47315510" {
		t.Errorf("customer tax id = %q", rec.CustomerTaxID)
	}
	if math.Abs(rec.TotalWithVAT-595) > 1e-9 {
		t.Errorf("total with vat = %v, want 595", rec.TotalWithVAT)
	}
	if got := rec.PaymentDueDate.Sub(rec.OrderDate); got != 30*24*time.Hour {
		t.Errorf("payment term = %v, want 30 days", got)
	}

	if len(issuer.requests) != 1 {
		t.Fatalf("issuer calls = %d, want 1", len(issuer.requests))
	}
	if issuer.requests[0].Customer.Email != "client@test.com" {
		t.Errorf("invoice email = %q", issuer.requests[0].Customer.Email)
	}
	if math.Abs(issuer.requests[0].NetTotal-500) > 1e-9 {
		t.Errorf("invoice net total = %v, want 500", issuer.requests[0].NetTotal)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published events = %d, want 1", len(pub.published))
	}
	if pub.published[0].OrderID != "CMD-TEST-1" {
		t.Errorf("event order id = %q", pub.published[0].OrderID)
	}

	for _, want := range []string{"CMD-TEST-1", "Test SRL", "595.00", "client@test.com"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}

func TestFulfill_RegistryNotFound(t *testing.T) {
	inv := newMockInventory(testProducts()...)
	ledger := newMockLedger()
	reg := &stubRegistry{err: repository.ErrCustomerNotFound}
	issuer := &stubIssuer{}

	p := newTestPipeline(inv, ledger, reg, issuer, nil)

	msg := p.Fulfill(context.Background(), []domain.OrderLine{{ProductID: "P001", Quantity: 5}},
		"99999999", "client@test.com")

	if !strings.Contains(msg, "99999999") {
		t.Errorf("message %q does not name the CUI", msg)
	}
	if len(ledger.records) != 0 {
		t.Errorf("records = %d, want 0", len(ledger.records))
	}
	if inv.stockOf("P001") != 42 {
		t.Errorf("stock = %d, want untouched 42", inv.stockOf("P001"))
	}
	if len(issuer.requests) != 0 {
		t.Errorf("issuer was called %d times", len(issuer.requests))
	}
}

func TestFulfill_PartialLines(t *testing.T) {
	inv := newMockInventory(testProducts()...)
	ledger := newMockLedger()
	reg := &stubRegistry{details: testCustomer()}
	issuer := &stubIssuer{gross: 595}

	p := newTestPipeline(inv, ledger, reg, issuer, nil)

	// Second product vanished between validation and fulfillment.
	inv.getErr["P002"] = repository.ErrProductNotFound

	msg := p.Fulfill(context.Background(), []domain.OrderLine{
		{ProductID: "P001", Quantity: 5},
		{ProductID: "P002", Quantity: 3},
	}, "47315510", "client@test.com")

	if len(ledger.records) != 1 {
		t.Fatalf("records = %d, want 1", len(ledger.records))
	}
	if ledger.records[0].ProductID != "P001" {
		t.Errorf("record product = %q, want P001", ledger.records[0].ProductID)
	}
	if inv.stockOf("P001") != 37 {
		t.Errorf("P001 stock = %d, want 37", inv.stockOf("P001"))
	}
	if inv.stockOf("P002") != 30 {
		t.Errorf("P002 stock = %d, want untouched 30", inv.stockOf("P002"))
	}
	if len(issuer.requests) != 1 || len(issuer.requests[0].Lines) != 1 {
		t.Fatalf("invoice should carry exactly the processed line")
	}
	if !strings.Contains(msg, "1 din 2") {
		t.Errorf("message %q does not report partial fulfillment", msg)
	}
}

func TestFulfill_StockRefusedSkipsLine(t *testing.T) {
	inv := newMockInventory(testProducts()...)
	inv.products["P001"].StockQty = 3
	ledger := newMockLedger()
	reg := &stubRegistry{details: testCustomer()}
	issuer := &stubIssuer{}

	p := newTestPipeline(inv, ledger, reg, issuer, nil)

	msg := p.Fulfill(context.Background(), []domain.OrderLine{{ProductID: "P001", Quantity: 5}},
		"47315510", "client@test.com")

	if inv.stockOf("P001") != 3 {
		t.Errorf("stock = %d, want untouched 3", inv.stockOf("P001"))
	}
	if len(ledger.records) != 0 {
		t.Errorf("records = %d, want 0", len(ledger.records))
	}
	if !strings.Contains(msg, "Nu am putut procesa comanda") {
		t.Errorf("message %q should report total failure", msg)
	}
}

func TestFulfill_LedgerFailureRestoresStock(t *testing.T) {
	inv := newMockInventory(testProducts()...)
	ledger := newMockLedger()
	ledger.appendErr["P001"] = errBoom
	reg := &stubRegistry{details: testCustomer()}
	issuer := &stubIssuer{}

	p := newTestPipeline(inv, ledger, reg, issuer, nil)

	p.Fulfill(context.Background(), []domain.OrderLine{{ProductID: "P001", Quantity: 5}},
		"47315510", "client@test.com")

	if inv.stockOf("P001") != 42 {
		t.Errorf("stock = %d, want restored 42", inv.stockOf("P001"))
	}
	if len(ledger.records) != 0 {
		t.Errorf("records = %d, want 0", len(ledger.records))
	}
	if len(issuer.requests) != 0 {
		t.Errorf("issuer was called for an empty order")
	}
}

func TestFulfill_InvoiceFailureStillPlacesOrder(t *testing.T) {
	inv := newMockInventory(testProducts()...)
	ledger := newMockLedger()
	reg := &stubRegistry{details: testCustomer()}
	issuer := &stubIssuer{err: errBoom}

	p := newTestPipeline(inv, ledger, reg, issuer, nil)

	msg := p.Fulfill(context.Background(), []domain.OrderLine{{ProductID: "P001", Quantity: 5}},
		"47315510", "client@test.com")

	if len(ledger.records) != 1 {
		t.Errorf("records = %d, want 1", len(ledger.records))
	}
	if inv.stockOf("P001") != 37 {
		t.Errorf("stock = %d, want 37", inv.stockOf("P001"))
	}
	if !strings.Contains(msg, "Factura nu a putut fi emisă") {
		t.Errorf("message %q should report the invoice problem", msg)
	}
	if !strings.Contains(msg, "CMD-TEST-1") {
		t.Errorf("message %q should still report the order id", msg)
	}
}

package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stocbot/order-assistant/internal/domain"
)

func TestInvoiceClient_Issue(t *testing.T) {
	var received domain.InvoiceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invoices" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"gross_total":595}`))
	}))
	defer srv.Close()

	client := NewInvoiceClient(srv.URL)

	gross, err := client.Issue(context.Background(), &domain.InvoiceRequest{
		OrderID:  "CMD-TEST-1",
		NetTotal: 500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gross != 595 {
		t.Errorf("gross = %v, want 595", gross)
	}
	if received.OrderID != "CMD-TEST-1" {
		t.Errorf("service received order id %q", received.OrderID)
	}
}

func TestInvoiceClient_IssueReportedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	client := NewInvoiceClient(srv.URL)

	if _, err := client.Issue(context.Background(), &domain.InvoiceRequest{}); err == nil {
		t.Error("expected error when the service reports failure")
	}
}

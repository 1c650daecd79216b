package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegistryClient_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companies/47315510" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"legal_name":"Test SRL","tax_id":"47315510","registry_number":"J40/1234/2020","address":"Str. Exemplu 1","country":"România"}`))
	}))
	defer srv.Close()

	client := NewRegistryClient(srv.URL)

	details, err := client.Resolve(context.Background(), "47315510")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.LegalName != "Test SRL" || details.TaxID != "47315510" {
		t.Errorf("details = %+v", details)
	}

	_, err = client.Resolve(context.Background(), "00000000")
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("err = %v, want ErrCustomerNotFound", err)
	}
}

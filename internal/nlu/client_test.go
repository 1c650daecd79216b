package nlu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stocbot/order-assistant/internal/domain"
	"go.uber.org/zap"
)

func TestBuildSystemPrompt_IncludesCatalog(t *testing.T) {
	prompt := buildSystemPrompt([]domain.Product{
		{ProductID: "P001", Name: "Tricou"},
		{ProductID: "P002", Name: "Bere"},
	})

	for _, want := range []string{`"Tricou"`, `"P001"`, `"Bere"`, `"P002"`, "check_stock", "add_order"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt does not contain %q", want)
		}
	}
}

func TestClient_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"intent\":\"check_stock\",\"product_id\":\"P001\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4o-mini", zap.NewNop())

	answer, err := client.Classify(context.Background(), "câte tricouri am?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "check_stock") {
		t.Errorf("answer = %q", answer)
	}
}

func TestClient_ClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4o-mini", zap.NewNop())

	if _, err := client.Classify(context.Background(), "salut", nil); err == nil {
		t.Error("expected error on non-200 response")
	}
}

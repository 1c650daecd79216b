package service

import (
	"context"

	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/events"
)

// InventoryGateway reads product records and applies atomic stock deltas.
// Implementations must refuse decrements that would drop stock below zero,
// returning repository.ErrInsufficientStock with no effect on the row.
type InventoryGateway interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	AdjustStock(ctx context.Context, productID string, delta int) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CountProducts(ctx context.Context) (int, error)
}

// OrderLedger appends immutable order lines and answers aggregate queries.
type OrderLedger interface {
	AppendLine(ctx context.Context, record *domain.OrderRecord) error
	CountLines(ctx context.Context) (int, error)
	SumField(ctx context.Context, field string) (float64, error)
}

// Registry resolves a tax ID to the customer's legal details.
type Registry interface {
	Resolve(ctx context.Context, taxID string) (*domain.CustomerDetails, error)
}

// InvoiceIssuer renders and delivers an invoice, returning the gross total.
type InvoiceIssuer interface {
	Issue(ctx context.Context, inv *domain.InvoiceRequest) (float64, error)
}

// ConversationStore persists per-user dialogue state between turns.
type ConversationStore interface {
	Set(ctx context.Context, userID string, conv *domain.Conversation) error
	Get(ctx context.Context, userID string) (*domain.Conversation, error)
	Clear(ctx context.Context, userID string) error
}

// IntentClassifier turns free text into either intent JSON or plain Romanian
// conversation, given the current product catalog.
type IntentClassifier interface {
	Classify(ctx context.Context, text string, catalog []domain.Product) (string, error)
}

// EventPublisher emits order events for downstream consumers.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event events.OrderPlacedEvent) error
}

package service

import (
	"context"
	"errors"
	"sort"

	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/events"
	"github.com/stocbot/order-assistant/internal/repository"
)

// Mock InventoryGateway
type mockInventory struct {
	products map[string]*domain.Product
	getErr   map[string]error
}

func newMockInventory(products ...*domain.Product) *mockInventory {
	m := &mockInventory{
		products: make(map[string]*domain.Product),
		getErr:   make(map[string]error),
	}
	for _, p := range products {
		cp := *p
		m.products[p.ProductID] = &cp
	}
	return m
}

func (m *mockInventory) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if err := m.getErr[productID]; err != nil {
		return nil, err
	}
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockInventory) AdjustStock(ctx context.Context, productID string, delta int) error {
	p, ok := m.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	if delta < 0 && p.StockQty < -delta {
		return repository.ErrInsufficientStock
	}
	p.StockQty += delta
	return nil
}

func (m *mockInventory) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ids := make([]string, 0, len(m.products))
	for id := range m.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.products[id])
	}
	return out, nil
}

func (m *mockInventory) CountProducts(ctx context.Context) (int, error) {
	return len(m.products), nil
}

func (m *mockInventory) CreateProduct(ctx context.Context, product *domain.Product) error {
	cp := *product
	m.products[product.ProductID] = &cp
	return nil
}

func (m *mockInventory) stockOf(productID string) int {
	return m.products[productID].StockQty
}

// Mock OrderLedger
type mockLedger struct {
	records   []domain.OrderRecord
	appendErr map[string]error
}

func newMockLedger() *mockLedger {
	return &mockLedger{appendErr: make(map[string]error)}
}

func (m *mockLedger) AppendLine(ctx context.Context, record *domain.OrderRecord) error {
	if err := m.appendErr[record.ProductID]; err != nil {
		return err
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockLedger) CountLines(ctx context.Context) (int, error) {
	return len(m.records), nil
}

func (m *mockLedger) SumField(ctx context.Context, field string) (float64, error) {
	var total float64
	for _, r := range m.records {
		switch field {
		case "total_with_vat":
			total += r.TotalWithVAT
		case "vat_value":
			total += r.VATValue
		}
	}
	return total, nil
}

// Mock ConversationStore
type mockConversations struct {
	state  map[string]*domain.Conversation
	sets   int
	clears int
}

func newMockConversations() *mockConversations {
	return &mockConversations{state: make(map[string]*domain.Conversation)}
}

func (m *mockConversations) Set(ctx context.Context, userID string, conv *domain.Conversation) error {
	cp := *conv
	m.state[userID] = &cp
	m.sets++
	return nil
}

func (m *mockConversations) Get(ctx context.Context, userID string) (*domain.Conversation, error) {
	if conv, ok := m.state[userID]; ok {
		cp := *conv
		return &cp, nil
	}
	return &domain.Conversation{State: domain.StateNone}, nil
}

func (m *mockConversations) Clear(ctx context.Context, userID string) error {
	delete(m.state, userID)
	m.clears++
	return nil
}

// Stub Registry
type stubRegistry struct {
	details *domain.CustomerDetails
	err     error
	calls   int
}

func (s *stubRegistry) Resolve(ctx context.Context, taxID string) (*domain.CustomerDetails, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.details
	cp.TaxID = taxID
	return &cp, nil
}

// Stub InvoiceIssuer
type stubIssuer struct {
	gross    float64
	err      error
	requests []*domain.InvoiceRequest
}

func (s *stubIssuer) Issue(ctx context.Context, inv *domain.InvoiceRequest) (float64, error) {
	s.requests = append(s.requests, inv)
	if s.err != nil {
		return 0, s.err
	}
	return s.gross, nil
}

// Stub IntentClassifier
type stubClassifier struct {
	response string
	err      error
}

func (s *stubClassifier) Classify(ctx context.Context, text string, catalog []domain.Product) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// Stub EventPublisher
type stubPublisher struct {
	published []events.OrderPlacedEvent
}

func (s *stubPublisher) PublishOrderPlaced(ctx context.Context, event events.OrderPlacedEvent) error {
	s.published = append(s.published, event)
	return nil
}

var errBoom = errors.New("boom")

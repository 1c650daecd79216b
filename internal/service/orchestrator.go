package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/nlu"
	"github.com/stocbot/order-assistant/internal/repository"
	"go.uber.org/zap"
)

const (
	msgClarify = "Nu am înțeles ce dorești. Poți să reformulezi? Te pot ajuta cu stocuri, comenzi, facturi și rapoarte."

	msgClassifierDown = "Asistentul nu este disponibil momentan. Încearcă din nou în câteva minute."

	msgInternalError = "A apărut o eroare internă. Încearcă din nou."

	msgAskWhichProduct = "Pentru ce produs vrei să verific stocul?"

	msgMissingOrderDetails = "Pentru a procesa comanda, am nevoie de produs, cantitate, CUI și adresa de email. " +
		"Ex: 'comanda 10 tricouri pentru 47315510 test@email.com'."

	msgAskCustomerDetails = "Am reținut produsele comandate. Mai am nevoie de CUI-ul firmei și adresa de email " +
		"pentru factură. Ex: '47315510 client@email.com'."

	msgResumeReprompt = "Nu am găsit încă toate datele. Trimite CUI-ul și adresa de email într-un singur mesaj. " +
		"Ex: '47315510 client@email.com'."

	msgDraftAbandoned = "Nu am reușit să obțin datele de facturare, așa că am anulat comanda în curs. " +
		"O poți relua oricând cu produsele dorite."
)

var defaultCapabilities = []string{
	"gestionarea stocului",
	"gestionarea comenzilor",
	"facturare automată",
	"indicatori de performanță",
}

// Orchestrator drives one chat turn: it restores per-user state, resumes a
// pending order when one is awaiting customer details, or classifies the
// message and routes it to stock checks, KPI queries or order fulfillment.
type Orchestrator struct {
	classifier    IntentClassifier
	inventory     InventoryGateway
	ledger        OrderLedger
	conversations ConversationStore
	pipeline      *FulfillmentPipeline
	logger        *zap.Logger

	lowStockThreshold int
	taxIDPrefix       string
	maxResumeAttempts int
}

func NewOrchestrator(
	classifier IntentClassifier,
	inventory InventoryGateway,
	ledger OrderLedger,
	conversations ConversationStore,
	pipeline *FulfillmentPipeline,
	logger *zap.Logger,
	lowStockThreshold int,
	taxIDPrefix string,
	maxResumeAttempts int,
) *Orchestrator {
	return &Orchestrator{
		classifier:        classifier,
		inventory:         inventory,
		ledger:            ledger,
		conversations:     conversations,
		pipeline:          pipeline,
		logger:            logger,
		lowStockThreshold: lowStockThreshold,
		taxIDPrefix:       taxIDPrefix,
		maxResumeAttempts: maxResumeAttempts,
	}
}

// HandleMessage processes one user turn. Every failure is converted to a
// user-facing Romanian message; nothing propagates to the transport layer.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, text string) domain.Reply {
	conv, err := o.conversations.Get(ctx, userID)
	if err != nil {
		o.logger.Error("Failed to load conversation state",
			zap.String("user_id", userID),
			zap.Error(err))
		return textReply(msgInternalError)
	}

	if conv.State == domain.StateAwaitingCustomerDetails && conv.Draft != nil {
		return o.resume(ctx, userID, text, conv)
	}

	catalog, err := o.inventory.ListProducts(ctx)
	if err != nil {
		o.logger.Error("Failed to load product catalog", zap.Error(err))
		return textReply(msgInternalError)
	}

	raw, err := o.classifier.Classify(ctx, text, catalog)
	if err != nil {
		o.logger.Error("Intent classification failed", zap.Error(err))
		return textReply(msgClassifierDown)
	}

	payload, err := nlu.ParsePayload(raw)
	if err != nil {
		o.logger.Warn("Unparsable classifier payload", zap.String("raw", raw))
		o.clearState(ctx, userID)
		return textReply(msgClarify)
	}
	if payload == nil {
		// Plain conversational answer, passed straight through. No state change.
		return textReply(raw)
	}

	switch payload.Intent {
	case nlu.IntentCheckStock:
		return o.checkStock(ctx, userID, payload.ProductID)
	case nlu.IntentAddOrder:
		return o.addOrder(ctx, userID, payload)
	case nlu.IntentUnknownProduct:
		return o.unknownProduct(ctx, userID, payload.Query, catalog)
	case nlu.IntentMissingOrderDetails:
		o.clearState(ctx, userID)
		if payload.Message != "" {
			return textReply(payload.Message)
		}
		return textReply(msgMissingOrderDetails)
	case nlu.IntentTotalProducts:
		return o.totalProducts(ctx, userID)
	case nlu.IntentTotalStockValue:
		return o.totalStockValue(ctx, userID, catalog)
	case nlu.IntentNumOrders:
		return o.numOrders(ctx, userID)
	case nlu.IntentTotalOrderRevenue:
		return o.totalOrderRevenue(ctx, userID)
	case nlu.IntentLowStockCount:
		return o.lowStockCount(ctx, userID, catalog)
	case nlu.IntentCapabilities:
		return o.capabilities(ctx, userID, payload.Capabilities)
	default:
		o.logger.Warn("Unrecognized intent",
			zap.String("intent", payload.Intent))
		o.clearState(ctx, userID)
		return textReply(msgClarify)
	}
}

func (o *Orchestrator) checkStock(ctx context.Context, userID, productID string) domain.Reply {
	defer o.clearState(ctx, userID)

	if productID == "" {
		return textReply(msgAskWhichProduct)
	}

	product, err := o.inventory.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return textReply(fmt.Sprintf("Nu am găsit produsul %s în inventar.", productID))
		}
		o.logger.Error("Stock lookup failed",
			zap.String("product_id", productID),
			zap.Error(err))
		return textReply(msgInternalError)
	}

	return textReply(fmt.Sprintf("Avem %d bucăți de %s (%s) în stoc.",
		product.StockQty, product.Name, product.ProductID))
}

// addOrder validates every line before any mutation: one bad line rejects the
// whole intent. Only after validation does it either fulfill immediately or
// park the draft awaiting customer details.
func (o *Orchestrator) addOrder(ctx context.Context, userID string, payload *nlu.IntentPayload) domain.Reply {
	lines := make([]domain.OrderLine, 0, len(payload.Products))
	for _, slot := range payload.Products {
		lines = append(lines, domain.OrderLine{
			ProductID: slot.ProductID,
			Quantity:  slot.Quantity,
		})
	}

	if len(lines) == 0 {
		o.clearState(ctx, userID)
		return textReply(msgMissingOrderDetails)
	}

	if msg := o.validateLines(ctx, lines); msg != "" {
		o.clearState(ctx, userID)
		return textReply(msg)
	}

	if payload.CustomerID != "" && payload.CustomerEmail != "" {
		msg := o.pipeline.Fulfill(ctx, lines, payload.CustomerID, payload.CustomerEmail)
		o.clearState(ctx, userID)
		return textReply(msg)
	}

	conv := &domain.Conversation{
		State: domain.StateAwaitingCustomerDetails,
		Draft: &domain.OrderDraft{
			Lines:         lines,
			CustomerTaxID: payload.CustomerID,
			CustomerEmail: payload.CustomerEmail,
		},
	}
	if err := o.conversations.Set(ctx, userID, conv); err != nil {
		o.logger.Error("Failed to persist order draft",
			zap.String("user_id", userID),
			zap.Error(err))
		return textReply(msgInternalError)
	}

	return textReply(msgAskCustomerDetails)
}

// validateLines checks every line without mutating anything. Returns the
// Romanian rejection message for the first offending line, or "" when all
// lines pass.
func (o *Orchestrator) validateLines(ctx context.Context, lines []domain.OrderLine) string {
	for _, line := range lines {
		if line.ProductID == "" {
			return msgMissingOrderDetails
		}
		if line.Quantity <= 0 {
			return fmt.Sprintf("Cantitatea pentru produsul %s trebuie să fie un număr întreg pozitiv. Comanda nu a fost procesată.", line.ProductID)
		}

		product, err := o.inventory.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return fmt.Sprintf("Produsul %s nu există în inventar. Comanda nu a fost procesată.", line.ProductID)
			}
			o.logger.Error("Validation lookup failed",
				zap.String("product_id", line.ProductID),
				zap.Error(err))
			return msgInternalError
		}

		if product.StockQty < line.Quantity {
			return fmt.Sprintf("Stoc insuficient pentru %s: disponibil %d, cerut %d. Comanda nu a fost procesată.",
				product.Name, product.StockQty, line.Quantity)
		}
	}
	return ""
}

// resume handles a turn while awaiting customer details. State is cleared
// unconditionally once the pipeline runs, whatever it reports; otherwise the
// draft is re-persisted with an incremented attempt counter and abandoned once
// the limit is reached.
func (o *Orchestrator) resume(ctx context.Context, userID, text string, conv *domain.Conversation) domain.Reply {
	draft := conv.Draft

	taxID, email := ParseCustomerDetails(text, o.taxIDPrefix)
	if taxID == "" {
		taxID = draft.CustomerTaxID
	}
	if email == "" {
		email = draft.CustomerEmail
	}

	if taxID != "" && email != "" {
		msg := o.pipeline.Fulfill(ctx, draft.Lines, taxID, email)
		o.clearState(ctx, userID)
		return textReply(msg)
	}

	conv.Attempts++
	if conv.Attempts >= o.maxResumeAttempts {
		o.logger.Info("Abandoning order draft after repeated failed turns",
			zap.String("user_id", userID),
			zap.Int("attempts", conv.Attempts))
		o.clearState(ctx, userID)
		return textReply(msgDraftAbandoned)
	}

	draft.CustomerTaxID = taxID
	draft.CustomerEmail = email
	if err := o.conversations.Set(ctx, userID, conv); err != nil {
		o.logger.Error("Failed to re-persist order draft",
			zap.String("user_id", userID),
			zap.Error(err))
		return textReply(msgInternalError)
	}

	return textReply(msgResumeReprompt)
}

func (o *Orchestrator) unknownProduct(ctx context.Context, userID, query string, catalog []domain.Product) domain.Reply {
	defer o.clearState(ctx, userID)

	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}

	if len(names) == 0 {
		return textReply(fmt.Sprintf("Nu recunosc produsul %q și inventarul este gol momentan.", query))
	}
	return textReply(fmt.Sprintf("Nu recunosc produsul %q. Produsele disponibile sunt: %s.",
		query, strings.Join(names, ", ")))
}

func (o *Orchestrator) totalProducts(ctx context.Context, userID string) domain.Reply {
	defer o.clearState(ctx, userID)

	count, err := o.inventory.CountProducts(ctx)
	if err != nil {
		o.logger.Error("Product count failed", zap.Error(err))
		return textReply(msgInternalError)
	}
	return textReply(fmt.Sprintf("Ai %d produse în inventar.", count))
}

func (o *Orchestrator) totalStockValue(ctx context.Context, userID string, catalog []domain.Product) domain.Reply {
	defer o.clearState(ctx, userID)

	var total float64
	for _, p := range catalog {
		total += float64(p.StockQty) * p.SalePriceExVAT
	}
	return textReply(fmt.Sprintf("Valoarea totală a stocului este %.2f RON (fără TVA).", total))
}

func (o *Orchestrator) numOrders(ctx context.Context, userID string) domain.Reply {
	defer o.clearState(ctx, userID)

	count, err := o.ledger.CountLines(ctx)
	if err != nil {
		o.logger.Error("Order count failed", zap.Error(err))
		return textReply(msgInternalError)
	}
	return textReply(fmt.Sprintf("Ai %d comenzi înregistrate.", count))
}

func (o *Orchestrator) totalOrderRevenue(ctx context.Context, userID string) domain.Reply {
	defer o.clearState(ctx, userID)

	total, err := o.ledger.SumField(ctx, "total_with_vat")
	if err != nil {
		o.logger.Error("Revenue sum failed", zap.Error(err))
		return textReply(msgInternalError)
	}
	return textReply(fmt.Sprintf("Venitul total din comenzi este %.2f RON (cu TVA).", total))
}

func (o *Orchestrator) lowStockCount(ctx context.Context, userID string, catalog []domain.Product) domain.Reply {
	defer o.clearState(ctx, userID)

	var names []string
	for _, p := range catalog {
		if p.StockQty < o.lowStockThreshold {
			names = append(names, p.Name)
		}
	}

	if len(names) == 0 {
		return textReply(fmt.Sprintf("Niciun produs nu are stocul sub %d bucăți.", o.lowStockThreshold))
	}
	return textReply(fmt.Sprintf("%d produse au stocul sub %d bucăți: %s.",
		len(names), o.lowStockThreshold, strings.Join(names, ", ")))
}

func (o *Orchestrator) capabilities(ctx context.Context, userID string, caps []string) domain.Reply {
	defer o.clearState(ctx, userID)

	if len(caps) == 0 {
		caps = defaultCapabilities
	}
	return textReply(fmt.Sprintf("Te pot ajuta cu: %s.", strings.Join(caps, ", ")))
}

func (o *Orchestrator) clearState(ctx context.Context, userID string) {
	if err := o.conversations.Clear(ctx, userID); err != nil {
		o.logger.Error("Failed to clear conversation state",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

func textReply(msg string) domain.Reply {
	return domain.Reply{Message: msg}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocbot/order-assistant/internal/domain"
	"github.com/stocbot/order-assistant/internal/events"
	"github.com/stocbot/order-assistant/internal/repository"
	"go.uber.org/zap"
)

const paymentTermDays = 30

// SellerInfo identifies the issuing company on outgoing invoices.
type SellerInfo struct {
	Name  string
	TaxID string
}

// FulfillmentPipeline validates nothing itself: it receives lines that already
// passed upfront validation and processes each one independently, so a line
// that fails here is dropped from the order rather than aborting the batch.
type FulfillmentPipeline struct {
	inventory InventoryGateway
	ledger    OrderLedger
	registry  Registry
	issuer    InvoiceIssuer
	events    EventPublisher
	seller    SellerInfo
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewFulfillmentPipeline(
	inventory InventoryGateway,
	ledger OrderLedger,
	registry Registry,
	issuer InvoiceIssuer,
	publisher EventPublisher,
	seller SellerInfo,
	logger *zap.Logger,
) *FulfillmentPipeline {
	p := &FulfillmentPipeline{
		inventory: inventory,
		ledger:    ledger,
		registry:  registry,
		issuer:    issuer,
		events:    publisher,
		seller:    seller,
		logger:    logger,
		now:       time.Now,
	}
	p.newID = func() string {
		return fmt.Sprintf("CMD-%s-%s", p.now().Format("20060102150405"), uuid.NewString()[:8])
	}
	return p
}

type processedLine struct {
	product  *domain.Product
	quantity int
	net      float64
	totals   Totals
}

// Fulfill processes the order lines for an already-resolved customer and
// returns the Romanian summary shown to the user.
func (p *FulfillmentPipeline) Fulfill(ctx context.Context, lines []domain.OrderLine, customerTaxID, customerEmail string) string {
	customer, err := p.registry.Resolve(ctx, customerTaxID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return fmt.Sprintf("Nu am găsit nicio firmă cu CUI %s în registru. Comanda nu a fost procesată.", customerTaxID)
		}
		p.logger.Error("Registry lookup failed",
			zap.String("tax_id", customerTaxID),
			zap.Error(err))
		return "Nu am putut verifica CUI-ul în registru. Încearcă din nou mai târziu."
	}
	customer.Email = customerEmail

	orderID := p.newID()
	orderDate := p.now()
	dueDate := orderDate.AddDate(0, 0, paymentTermDays)

	var processed []processedLine
	var netTotal, vatTotal, grossTotal float64

	for _, line := range lines {
		pl, ok := p.processLine(ctx, orderID, orderDate, dueDate, customerTaxID, line)
		if !ok {
			continue
		}
		processed = append(processed, pl)
		netTotal += pl.net
		vatTotal += pl.totals.VATValue
		grossTotal += pl.totals.GrossValue
	}

	if len(processed) == 0 {
		return "Nu am putut procesa comanda: niciun produs nu a putut fi rezervat. Verifică produsele și încearcă din nou."
	}

	invoiceOK := p.issueInvoice(ctx, orderID, orderDate, dueDate, processed, customer, netTotal)
	p.publishOrderPlaced(ctx, orderID, customerTaxID, processed, netTotal, grossTotal)

	p.logger.Info("Order fulfilled",
		zap.String("order_id", orderID),
		zap.String("tax_id", customerTaxID),
		zap.Int("lines_requested", len(lines)),
		zap.Int("lines_processed", len(processed)),
		zap.Float64("gross_total", grossTotal))

	return p.summaryMessage(orderID, customer, len(lines), len(processed), grossTotal, vatTotal, invoiceOK)
}

// processLine reserves stock first, then appends the ledger row; if the append
// fails the reservation is released, so no row can exist without its matching
// stock decrement.
func (p *FulfillmentPipeline) processLine(ctx context.Context, orderID string, orderDate, dueDate time.Time, customerTaxID string, line domain.OrderLine) (processedLine, bool) {
	product, err := p.inventory.GetProduct(ctx, line.ProductID)
	if err != nil {
		p.logger.Warn("Skipping order line, product lookup failed",
			zap.String("order_id", orderID),
			zap.String("product_id", line.ProductID),
			zap.Error(err))
		return processedLine{}, false
	}

	if err := p.inventory.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
		p.logger.Warn("Skipping order line, stock reservation refused",
			zap.String("order_id", orderID),
			zap.String("product_id", line.ProductID),
			zap.Int("quantity", line.Quantity),
			zap.Error(err))
		return processedLine{}, false
	}

	net := float64(line.Quantity) * product.SalePriceExVAT
	totals := ComputeTotals(net, product.VATRate)

	record := &domain.OrderRecord{
		RecordID:       uuid.NewString(),
		OrderID:        orderID,
		CustomerTaxID:  customerTaxID,
		ProductID:      line.ProductID,
		Quantity:       line.Quantity,
		UnitPriceExVAT: product.SalePriceExVAT,
		VATValue:       totals.VATValue,
		TotalWithVAT:   totals.GrossValue,
		OrderDate:      orderDate,
		PaymentDueDate: dueDate,
		Status:         domain.OrderLineStatusPlaced,
	}

	if err := p.ledger.AppendLine(ctx, record); err != nil {
		p.logger.Error("Ledger append failed, releasing reserved stock",
			zap.String("order_id", orderID),
			zap.String("product_id", line.ProductID),
			zap.Error(err))
		if restoreErr := p.inventory.AdjustStock(ctx, line.ProductID, line.Quantity); restoreErr != nil {
			p.logger.Error("Failed to release reserved stock",
				zap.String("order_id", orderID),
				zap.String("product_id", line.ProductID),
				zap.Error(restoreErr))
		}
		return processedLine{}, false
	}

	return processedLine{
		product:  product,
		quantity: line.Quantity,
		net:      net,
		totals:   totals,
	}, true
}

func (p *FulfillmentPipeline) issueInvoice(ctx context.Context, orderID string, orderDate, dueDate time.Time, processed []processedLine, customer *domain.CustomerDetails, netTotal float64) bool {
	invLines := make([]domain.InvoiceLine, 0, len(processed))
	for _, pl := range processed {
		invLines = append(invLines, domain.InvoiceLine{
			ProductID:      pl.product.ProductID,
			Name:           pl.product.Name,
			Quantity:       pl.quantity,
			UnitPriceExVAT: pl.product.SalePriceExVAT,
			VATRate:        pl.product.VATRate,
		})
	}

	gross, err := p.issuer.Issue(ctx, &domain.InvoiceRequest{
		OrderID:        orderID,
		OrderDate:      orderDate,
		PaymentDueDate: dueDate,
		Lines:          invLines,
		Customer:       *customer,
		SellerName:     p.seller.Name,
		SellerTaxID:    p.seller.TaxID,
		NetTotal:       netTotal,
	})
	if err != nil {
		p.logger.Error("Invoice issuance failed",
			zap.String("order_id", orderID),
			zap.Error(err))
		return false
	}

	p.logger.Info("Invoice issued",
		zap.String("order_id", orderID),
		zap.Float64("gross_total", gross))
	return true
}

func (p *FulfillmentPipeline) publishOrderPlaced(ctx context.Context, orderID, customerTaxID string, processed []processedLine, netTotal, grossTotal float64) {
	if p.events == nil {
		return
	}

	items := make([]events.OrderItem, 0, len(processed))
	for _, pl := range processed {
		items = append(items, events.OrderItem{
			ProductID:   pl.product.ProductID,
			ProductName: pl.product.Name,
			Quantity:    pl.quantity,
			PriceExVAT:  pl.product.SalePriceExVAT,
		})
	}

	event := events.OrderPlacedEvent{
		EventID:       uuid.NewString(),
		OrderID:       orderID,
		CustomerTaxID: customerTaxID,
		Items:         items,
		NetTotal:      netTotal,
		GrossTotal:    grossTotal,
		Timestamp:     p.now(),
	}

	if err := p.events.PublishOrderPlaced(ctx, event); err != nil {
		p.logger.Warn("Failed to publish order event",
			zap.String("order_id", orderID),
			zap.Error(err))
	}
}

func (p *FulfillmentPipeline) summaryMessage(orderID string, customer *domain.CustomerDetails, requested, processed int, grossTotal, vatTotal float64, invoiceOK bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Comanda %s a fost înregistrată pentru %s (CUI %s).",
		orderID, customer.LegalName, customer.TaxID)

	if processed < requested {
		fmt.Fprintf(&b, " Au putut fi procesate %d din %d produse.", processed, requested)
	}

	fmt.Fprintf(&b, " Total de plată: %.2f RON (din care TVA %.2f RON).", grossTotal, vatTotal)

	if invoiceOK {
		fmt.Fprintf(&b, " Factura a fost trimisă la %s.", customer.Email)
	} else {
		b.WriteString(" Factura nu a putut fi emisă momentan; comanda rămâne valabilă și factura va fi retrimisă.")
	}

	return b.String()
}

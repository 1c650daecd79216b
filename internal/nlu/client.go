package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stocbot/order-assistant/internal/domain"
	"go.uber.org/zap"
)

// Client calls an OpenAI-compatible chat-completions endpoint to classify a
// user message into an intent payload or a plain conversational answer.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(endpoint, apiKey, model string, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify sends the user's text plus the current product catalog and returns
// the raw assistant message (either intent JSON or plain Romanian text).
func (c *Client) Classify(ctx context.Context, text string, catalog []domain.Product) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(catalog)},
			{Role: "user", Content: text},
		},
		MaxTokens: 300,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)

	c.logger.Debug("Classifier answered",
		zap.Int("input_len", len(text)),
		zap.Int("answer_len", len(answer)))

	return answer, nil
}

func buildSystemPrompt(catalog []domain.Product) string {
	var b strings.Builder

	b.WriteString(`You are an AI inventory and order management assistant for a business in Romania.
Your primary goal is to help users check product stock, process orders, and answer key performance indicator (KPI) questions.
Users will interact with you in Romanian.

RESPOND ONLY WITH A JSON OBJECT IF YOU IDENTIFY AN INTENT.
DO NOT ADD ANY OTHER TEXT OUTSIDE THE JSON for these intents.

--- Intents and JSON Formats ---

1. Check Stock: user query about stock, identify 'product_id'. If the product name does not match any known product, use "unknown_product" instead.
   JSON: { "intent": "check_stock", "product_id": "P001" }

2. Add Order: identify 'products' (a list of product_id and quantity), 'customer_id' (CUI) and 'customer_email'. Return ONLY the fields clearly provided by the user; omit missing ones.
   JSON: { "intent": "add_order", "products": [{"product_id": "P001", "quantity": 5}], "customer_id": "47315510", "customer_email": "client@email.com" }

3. Unknown Product: the user mentions a product name you cannot confidently map to an exact product_id from the list below. DO NOT GUESS.
   JSON: { "intent": "unknown_product", "query": "original_user_product_name_here" }

4. Get Total Products: total count of products in inventory. JSON: { "intent": "get_total_products" }

5. Get Total Stock Value: total monetary value of all stock. JSON: { "intent": "get_total_stock_value" }

6. Get Number of Orders: total count of all orders recorded. JSON: { "intent": "get_num_orders" }

7. Get Total Order Revenue: total monetary value of all orders. JSON: { "intent": "get_total_order_revenue" }

8. Get Low Stock Count: products with low stock (less than 20 units). JSON: { "intent": "get_low_stock_count" }

9. Missing Order Details: the user wants to order but provides no order details at all.
   JSON: { "intent": "missing_order_details", "message": "Pentru a procesa comanda, am nevoie de produs, cantitate, CUI și adresa de email. Ex: 'comanda 10 tricouri pentru 47315510 test@email.com'." }

10. Get Capabilities: the user asks what you can do.
    JSON: { "intent": "get_capabilities", "capabilities": ["gestionarea stocului", "gestionarea comenzilor", "facturare automată", "indicatori de performanță"] }

--- Product Mapping (for use in product_id) ---

Products:
`)

	for _, p := range catalog {
		fmt.Fprintf(&b, "- Nume: %q, ID_Produs: %q\n", p.Name, p.ProductID)
	}

	b.WriteString(`
--- General Questions ---
If the user's query is general and does not match any of the above intents, respond naturally in Romanian. Do NOT use JSON for general questions.
`)

	return b.String()
}

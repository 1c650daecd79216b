package domain

type ConversationState string

const (
	StateNone                    ConversationState = "NONE"
	StateAwaitingCustomerDetails ConversationState = "AWAITING_CUSTOMER_DETAILS"
)

// OrderDraft is the order being collected across turns. It lives only inside
// the conversation store until fulfillment completes or the draft is abandoned.
type OrderDraft struct {
	Lines         []OrderLine `json:"lines"`
	CustomerTaxID string      `json:"customer_tax_id,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
}

// Conversation is the per-user persisted state surviving between turns.
// Attempts counts failed resume turns; the draft is abandoned when it
// exceeds the configured limit.
type Conversation struct {
	State    ConversationState `json:"state"`
	Attempts int               `json:"attempts"`
	Draft    *OrderDraft       `json:"draft,omitempty"`
}

type ChatRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Reply is the user-facing response of every turn. Buttons is reserved for
// quick-reply affordances and is currently always null.
type Reply struct {
	Message string   `json:"message"`
	Buttons []string `json:"buttons"`
}

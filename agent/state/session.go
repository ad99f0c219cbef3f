package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
)

// Cart maps an item name to a positive held quantity. Stock is reserved at
// add time: for every item, catalog stock + cart quantity stays constant
// until a checkout consumes the reservation.
type Cart map[string]int

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for item, qty := range c {
		out[item] = qty
	}
	return out
}

// Order is an immutable snapshot of a finalized cart.
type Order struct {
	Items Cart `json:"cart"`
	Total int  `json:"total"`
}

func (o Order) clone() Order {
	return Order{Items: o.Items.Clone(), Total: o.Total}
}

// Receipt is the checkout result handed back through the tool channel.
type Receipt struct {
	OrderID      string `json:"orderId"`
	Order        Order  `json:"order"`
	CartSnapshot Cart   `json:"cart_snapshot"`
}

// SessionState owns everything scoped to one chat session: the catalog
// instance, the live cart, the ledger of finalized orders, and the full
// conversation transcript replayed on every model call.
type SessionState struct {
	SessionID string           `json:"session_id"`
	Catalog   Catalog          `json:"catalog"`
	Cart      Cart             `json:"cart"`
	Orders    map[string]Order `json:"orders"`
	UpdatedAt time.Time        `json:"updated_at"`

	Transcript []openai.ChatCompletionMessageParamUnion `json:"-"`
}

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Catalog:   DefaultCatalog(),
		Cart:      make(Cart, 4),
		Orders:    make(map[string]Order, 4),
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

/* ------------------------------ Transcript ------------------------------ */

func (s *SessionState) AppendSystem(text string) {
	s.Transcript = append(s.Transcript, openai.SystemMessage(text))
}

func (s *SessionState) AppendUser(text string) {
	s.Transcript = append(s.Transcript, openai.UserMessage(text))
}

func (s *SessionState) AppendAssistant(msg *openai.ChatCompletionMessage) {
	s.Transcript = append(s.Transcript, msg.ToParam())
}

// AppendToolResult appends one tool-result turn tagged with the invocation id
// the model correlates it by.
func (s *SessionState) AppendToolResult(invocationID, payload string) {
	s.Transcript = append(s.Transcript, openai.ToolMessage(payload, invocationID))
}

/* ---------------------------- Cart operations ---------------------------- */

// MenuSnapshot returns a deep copy of the catalog with current stock.
func (s *SessionState) MenuSnapshot() Catalog {
	return s.Catalog.Clone()
}

// AddToCart reserves qty units of item. On failure the state is unchanged.
func (s *SessionState) AddToCart(item string, qty int) (Cart, error) {
	key := NormalizeItem(item)
	entry, ok := s.Catalog[key]
	if !ok {
		return nil, &contractx.ToolError{
			Kind:    contractx.KindItemNotFound,
			Message: "Item not available in menu.",
		}
	}
	if entry.Stock < qty {
		return nil, &contractx.ToolError{
			Kind:    contractx.KindInsufficientStock,
			Message: fmt.Sprintf("Only %d %s(s) available.", entry.Stock, key),
		}
	}

	s.Cart[key] += qty
	entry.Stock -= qty
	s.Catalog[key] = entry
	return s.Cart.Clone(), nil
}

// RemoveFromCart releases up to qty units of item back to stock. Removing
// more than is held empties the line and restores exactly the held quantity.
func (s *SessionState) RemoveFromCart(item string, qty int) (Cart, error) {
	key := NormalizeItem(item)
	held, ok := s.Cart[key]
	if !ok {
		return nil, &contractx.ToolError{
			Kind:    contractx.KindItemNotInCart,
			Message: "Item not in cart.",
		}
	}

	entry := s.Catalog[key]
	if held > qty {
		s.Cart[key] = held - qty
		entry.Stock += qty
	} else {
		delete(s.Cart, key)
		entry.Stock += held
	}
	s.Catalog[key] = entry
	return s.Cart.Clone(), nil
}

// Checkout finalizes the cart into an immutable ledger entry and clears the
// cart without restoring stock: the reservation is consumed. An empty cart
// returns (nil, nil); no order is created.
func (s *SessionState) Checkout() (*Receipt, error) {
	if len(s.Cart) == 0 {
		return nil, nil
	}

	total := 0
	for item, qty := range s.Cart {
		total += s.Catalog[item].Price * qty
	}

	orderID := s.newOrderID()
	order := Order{Items: s.Cart.Clone(), Total: total}
	s.Orders[orderID] = order

	receipt := &Receipt{
		OrderID:      orderID,
		Order:        order.clone(),
		CartSnapshot: s.Cart.Clone(),
	}
	s.Cart = make(Cart, 4)
	return receipt, nil
}

// ClearCart abandons the cart, restoring every held quantity to stock.
func (s *SessionState) ClearCart() {
	for item, qty := range s.Cart {
		entry := s.Catalog[item]
		entry.Stock += qty
		s.Catalog[item] = entry
	}
	s.Cart = make(Cart, 4)
}

// OrderHistory returns a deep copy of all finalized orders.
func (s *SessionState) OrderHistory() map[string]Order {
	out := make(map[string]Order, len(s.Orders))
	for id, order := range s.Orders {
		out[id] = order.clone()
	}
	return out
}

func (s *SessionState) newOrderID() string {
	for {
		id := uuid.NewString()[:8]
		if _, taken := s.Orders[id]; !taken {
			return id
		}
	}
}

/* ------------------------------- Validation ------------------------------ */

func (s *SessionState) Validate() error {
	for item, qty := range s.Cart {
		if qty <= 0 {
			return fmt.Errorf("cart item %s has non-positive quantity %d", item, qty)
		}
		if _, ok := s.Catalog[item]; !ok {
			return fmt.Errorf("cart references unknown item %s", item)
		}
	}
	for item, entry := range s.Catalog {
		if entry.Stock < 0 {
			return fmt.Errorf("item %s has negative stock %d", item, entry.Stock)
		}
	}
	for id, order := range s.Orders {
		if len(order.Items) == 0 {
			return fmt.Errorf("order %s has no items", id)
		}
	}
	return nil
}

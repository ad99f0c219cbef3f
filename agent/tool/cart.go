package tool

import (
	"fmt"
	"math"
	"strings"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
	statex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/state"
)

type messageOutcome struct {
	Message string `json:"message"`
}

type cartOutcome struct {
	Message string      `json:"message"`
	Cart    statex.Cart `json:"cart"`
}

func handleGetMenu(st *statex.SessionState, args map[string]any) (any, *contractx.ToolError) {
	if terr := rejectArgs(args); terr != nil {
		return nil, terr
	}
	return st.MenuSnapshot(), nil
}

func handleAddToCart(st *statex.SessionState, args map[string]any) (any, *contractx.ToolError) {
	item, qty, terr := parseItemQuantity(args)
	if terr != nil {
		return nil, terr
	}

	cart, err := st.AddToCart(item, qty)
	if err != nil {
		return nil, asToolError(err)
	}
	return cartOutcome{
		Message: fmt.Sprintf("%d %s(s) added to cart.", qty, statex.NormalizeItem(item)),
		Cart:    cart,
	}, nil
}

func handleRemoveFromCart(st *statex.SessionState, args map[string]any) (any, *contractx.ToolError) {
	item, qty, terr := parseItemQuantity(args)
	if terr != nil {
		return nil, terr
	}

	cart, err := st.RemoveFromCart(item, qty)
	if err != nil {
		return nil, asToolError(err)
	}
	return cartOutcome{
		Message: fmt.Sprintf("%d %s(s) removed from cart.", qty, statex.NormalizeItem(item)),
		Cart:    cart,
	}, nil
}

func handleGetOrderDetails(st *statex.SessionState, args map[string]any) (any, *contractx.ToolError) {
	if terr := rejectArgs(args); terr != nil {
		return nil, terr
	}

	receipt, err := st.Checkout()
	if err != nil {
		return nil, asToolError(err)
	}
	if receipt == nil {
		return messageOutcome{Message: "Your cart is empty."}, nil
	}
	return receipt, nil
}

func handleClearCart(st *statex.SessionState, args map[string]any) (any, *contractx.ToolError) {
	if terr := rejectArgs(args); terr != nil {
		return nil, terr
	}

	st.ClearCart()
	return messageOutcome{Message: "Cart has been cleared."}, nil
}

func handleViewOrderHistory(st *statex.SessionState, args map[string]any) (any, *contractx.ToolError) {
	if terr := rejectArgs(args); terr != nil {
		return nil, terr
	}

	history := st.OrderHistory()
	if len(history) == 0 {
		return messageOutcome{Message: "No past orders."}, nil
	}
	return history, nil
}

/* ---------------------------- Argument parsing --------------------------- */

// rejectArgs enforces the closed empty parameter set of the zero-arg tools.
func rejectArgs(args map[string]any) *contractx.ToolError {
	for key := range args {
		return invalidArgument(fmt.Sprintf("unexpected argument %q", key))
	}
	return nil
}

// parseItemQuantity decodes the shared {item, quantity} argument shape.
// Quantity defaults to 1 when absent and must be a positive integer.
func parseItemQuantity(args map[string]any) (string, int, *contractx.ToolError) {
	for key := range args {
		if key != "item" && key != "quantity" {
			return "", 0, invalidArgument(fmt.Sprintf("unexpected argument %q", key))
		}
	}

	rawItem, ok := args["item"]
	if !ok {
		return "", 0, invalidArgument("item is required")
	}
	item, ok := rawItem.(string)
	if !ok {
		return "", 0, invalidArgument("item must be a string")
	}
	if strings.TrimSpace(item) == "" {
		return "", 0, invalidArgument("item is required")
	}

	qty := 1
	if rawQty, present := args["quantity"]; present {
		parsed, ok := toPositiveInt(rawQty)
		if !ok {
			return "", 0, invalidArgument("quantity must be a positive integer")
		}
		qty = parsed
	}

	return item, qty, nil
}

func toPositiveInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return n, true
		}
	case int64:
		if n > 0 {
			return int(n), true
		}
	case float64:
		// JSON numbers decode as float64; only integral values pass.
		if n > 0 && n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func invalidArgument(msg string) *contractx.ToolError {
	return &contractx.ToolError{
		Kind:    contractx.KindInvalidArgument,
		Message: msg,
	}
}

func asToolError(err error) *contractx.ToolError {
	if terr, ok := err.(*contractx.ToolError); ok {
		return terr
	}
	return &contractx.ToolError{
		Kind:    contractx.KindInvalidArgument,
		Message: err.Error(),
	}
}

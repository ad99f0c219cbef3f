// Package tool declares the fixed registry of structured operations the model
// may request, and dispatches requested invocations against session state.
package tool

import (
	"context"

	openai "github.com/openai/openai-go"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
	statex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/state"
)

// Wire names match the function names the model is prompted with.
const (
	ToolGetMenu          = "getMenu"
	ToolAddToCart        = "addToCart"
	ToolRemoveFromCart   = "removeFromCart"
	ToolGetOrderDetails  = "getOrderDetails"
	ToolClearCart        = "clearCart"
	ToolViewOrderHistory = "viewOrderHistory"
)

// Handler executes one tool against the session, returning either a data
// payload or a business/validation error. Handlers never touch the transcript.
type Handler func(st *statex.SessionState, args map[string]any) (any, *contractx.ToolError)

type Registry struct {
	definitions []openai.ChatCompletionToolParam
	handlers    map[string]Handler
}

// NewRegistry builds the full fixed tool table.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[string]Handler, 6),
	}
	r.register(ToolGetMenu, noParams(ToolGetMenu, "Get the restaurant menu."), handleGetMenu)
	r.register(ToolAddToCart, itemQuantityParams(ToolAddToCart, "Add an item to the cart."), handleAddToCart)
	r.register(ToolRemoveFromCart, itemQuantityParams(ToolRemoveFromCart, "Remove an item from the cart."), handleRemoveFromCart)
	r.register(ToolGetOrderDetails, noParams(ToolGetOrderDetails, "Get the order details and generate an order ID."), handleGetOrderDetails)
	r.register(ToolClearCart, noParams(ToolClearCart, "Clear all items from the cart."), handleClearCart)
	r.register(ToolViewOrderHistory, noParams(ToolViewOrderHistory, "View past order history."), handleViewOrderHistory)
	return r
}

func (r *Registry) register(name string, def openai.ChatCompletionToolParam, handler Handler) {
	r.definitions = append(r.definitions, def)
	r.handlers[name] = handler
}

// Definitions returns the schema table sent verbatim on every model request.
func (r *Registry) Definitions() []openai.ChatCompletionToolParam {
	return r.definitions
}

// Dispatch looks up and invokes the requested tool. Unknown tools and
// handler failures come back as error-tagged results, never as Go errors:
// they are data for the model, not control flow.
func (r *Registry) Dispatch(ctx context.Context, st *statex.SessionState, inv contractx.ToolInvocation) contractx.ToolResult {
	result := contractx.ToolResult{ID: inv.ID, Tool: inv.Tool}

	handler, ok := r.handlers[inv.Tool]
	if !ok {
		result.Err = &contractx.ToolError{
			Kind:    contractx.KindUnknownTool,
			Message: "Unknown tool call.",
		}
		return result
	}

	data, terr := handler(st, inv.Args)
	if terr != nil {
		result.Err = terr
		return result
	}
	result.Data = data
	return result
}

func noParams(name, desc string) openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        name,
			Description: openai.String(desc),
			Parameters: openai.FunctionParameters{
				"type":                 "object",
				"properties":           map[string]any{},
				"required":             []string{},
				"additionalProperties": false,
			},
		},
	}
}

func itemQuantityParams(name, desc string) openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        name,
			Description: openai.String(desc),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"item":     map[string]any{"type": "string"},
					"quantity": map[string]any{"type": "integer"},
				},
				"required":             []string{"item", "quantity"},
				"additionalProperties": false,
			},
		},
	}
}

package contract

import "encoding/json"

// ToolInvocation is one structured call requested by the model, decoded once
// from the assistant message's tool_calls at the contract boundary.
type ToolInvocation struct {
	ID   string         `json:"id"`
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ErrorKind classifies a business or validation failure inside a tool.
type ErrorKind string

const (
	KindItemNotFound      ErrorKind = "item_not_found"
	KindInsufficientStock ErrorKind = "insufficient_stock"
	KindItemNotInCart     ErrorKind = "item_not_in_cart"
	KindInvalidArgument   ErrorKind = "invalid_argument"
	KindUnknownTool       ErrorKind = "unknown_tool"
)

type ToolError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *ToolError) Error() string {
	return e.Message
}

// ToolResult is the tagged outcome of one tool invocation: either Data or Err
// is set, never both. It is serialized as the tool-result transcript payload.
type ToolResult struct {
	ID   string
	Tool string
	Data any
	Err  *ToolError
}

func (r ToolResult) Failed() bool {
	return r.Err != nil
}

// Payload renders the wire shape handed back to the model: the data object on
// success, {"error": message} on failure.
func (r ToolResult) Payload() string {
	if r.Err != nil {
		return mustJSON(map[string]string{"error": r.Err.Message})
	}
	return mustJSON(r.Data)
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		// Tool outputs are plain maps and structs; a marshal failure is a
		// programming error, but the model still needs a payload.
		return `{"error":"internal: unserializable tool result"}`
	}
	return string(raw)
}

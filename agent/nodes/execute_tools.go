package chatnode

import (
	"context"
	"fmt"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
	toolx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/tool"
)

// ExecuteTools dispatches every requested invocation strictly in emission
// order and appends each result to the transcript tagged with its invocation
// id. Business errors become error payloads here, not Go errors.
func ExecuteTools(
	ctx context.Context,
	in *GraphState,
	registry *toolx.Registry,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	if len(in.Invocations) == 0 {
		return nil, fmt.Errorf("%w: no tool invocations to execute", contractx.ErrValidation)
	}

	in.Results = make([]contractx.ToolResult, 0, len(in.Invocations))
	for _, inv := range in.Invocations {
		result := registry.Dispatch(ctx, in.Session, inv)
		in.Results = append(in.Results, result)
		in.Session.AppendToolResult(inv.ID, result.Payload())
	}
	return in, nil
}

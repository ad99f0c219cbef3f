package chatnode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
)

// InvokeModel issues the first model call of the turn with the full
// transcript and the tool schema table. The assistant turn is appended to the
// transcript verbatim, tool_calls included, so the second call can correlate
// results by invocation id.
func InvokeModel(
	ctx context.Context,
	in *GraphState,
	model contractx.ChatModel,
	tools []openai.ChatCompletionToolParam,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	msg, err := model.Complete(ctx, in.Session.Transcript, tools)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: assistant message is nil", contractx.ErrSchemaViolation)
	}

	invocations, err := toInvocations(msg.ToolCalls)
	if err != nil {
		return nil, err
	}

	in.Session.AppendAssistant(msg)
	in.Assistant = msg
	in.Invocations = invocations

	if len(invocations) == 0 {
		in.Reply = strings.TrimSpace(msg.Content)
	}
	return in, nil
}

// toInvocations decodes the model's tool_calls once, in emission order.
func toInvocations(calls []openai.ChatCompletionMessageToolCall) ([]contractx.ToolInvocation, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	invocations := make([]contractx.ToolInvocation, 0, len(calls))
	for _, call := range calls {
		id := strings.TrimSpace(call.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: tool call id is empty", contractx.ErrSchemaViolation)
		}
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
			}
		}

		invocations = append(invocations, contractx.ToolInvocation{
			ID:   id,
			Tool: name,
			Args: args,
		})
	}
	return invocations, nil
}

package chatnode

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
)

// InvokeFollowUp issues the second model call after tool execution. Its text
// is the turn's final reply: one tool round-trip per user message, so any
// further tool calls it requests are dropped.
func InvokeFollowUp(
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
		return nil, fmt.Errorf("%w: follow-up message is nil", contractx.ErrSchemaViolation)
	}

	if len(msg.ToolCalls) > 0 {
		log.Warn().
			Str("session_id", in.SessionID).
			Int("dropped_tool_calls", len(msg.ToolCalls)).
			Msg("follow-up requested more tools; single round-trip policy drops them")
	}

	in.Session.AppendAssistant(msg)
	in.Reply = strings.TrimSpace(msg.Content)
	return in, nil
}

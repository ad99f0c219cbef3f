package contract

import (
	"context"

	openai "github.com/openai/openai-go"
)

// ChatModel is one blocking chat-completion round-trip: full transcript plus
// the tool schema table in, one assistant message out.
type ChatModel interface {
	Complete(
		ctx context.Context,
		transcript []openai.ChatCompletionMessageParamUnion,
		tools []openai.ChatCompletionToolParam,
	) (*openai.ChatCompletionMessage, error)
}

package chatnode

import (
	"fmt"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: assistant returned empty reply", contractx.ErrSchemaViolation)
	}
	return GraphOutput{Reply: in.Reply}, nil
}

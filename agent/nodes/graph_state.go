// Package chatnode holds the per-step functions of the message-handling
// graph. Each node receives the shared *GraphState and returns it (or the
// final output) so steps stay individually testable.
package chatnode

import (
	"errors"
	"strings"
	"time"

	openai "github.com/openai/openai-go"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
	statex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *statex.SessionState

	// First model call's assistant turn and the invocations it requested.
	Assistant   *openai.ChatCompletionMessage
	Invocations []contractx.ToolInvocation
	Results     []contractx.ToolResult

	Reply string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}

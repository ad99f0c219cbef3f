// Package orchestrator drives one chat turn: user text in, final assistant
// reply out, with at most one round of tool execution in between.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
	nodex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/nodes"
	promptx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/prompt"
	statex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/state"
	toolx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/tool"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

type Orchestrator struct {
	store    statex.Store
	model    contractx.ChatModel
	registry *toolx.Registry

	systemPrompt string
	graphRunner  compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(
	store statex.Store,
	model contractx.ChatModel,
	registry *toolx.Registry,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if model == nil {
		return nil, errors.New("chat model is required")
	}
	if registry == nil {
		registry = toolx.NewRegistry()
	}

	o := &Orchestrator{
		store:        store,
		model:        model,
		registry:     registry,
		systemPrompt: promptx.Waiter(),
		now:          time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage processes one user message fully, through both possible model
// calls and all tool dispatches, before returning. Callers must not overlap
// calls for the same session.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	openai "github.com/openai/openai-go"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
	statex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/state"
	toolx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/tool"
)

type completeCall struct {
	transcriptLen int
	toolCount     int
}

type fakeModel struct {
	responses []*openai.ChatCompletionMessage
	errs      []error
	calls     []completeCall
}

func (f *fakeModel) Complete(
	ctx context.Context,
	transcript []openai.ChatCompletionMessageParamUnion,
	tools []openai.ChatCompletionToolParam,
) (*openai.ChatCompletionMessage, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, completeCall{
		transcriptLen: len(transcript),
		toolCount:     len(tools),
	})
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx >= len(f.responses) {
		return nil, fmt.Errorf("no scripted response left at call=%d", idx+1)
	}
	return f.responses[idx], nil
}

func textMessage(content string) *openai.ChatCompletionMessage {
	return &openai.ChatCompletionMessage{Content: content}
}

func toolCallMessage(content string, calls ...openai.ChatCompletionMessageToolCall) *openai.ChatCompletionMessage {
	return &openai.ChatCompletionMessage{Content: content, ToolCalls: calls}
}

func toolCall(id, name, args string) openai.ChatCompletionMessageToolCall {
	return openai.ChatCompletionMessageToolCall{
		ID: id,
		Function: openai.ChatCompletionMessageToolCallFunction{
			Name:      name,
			Arguments: args,
		},
	}
}

func newTestOrchestrator(t *testing.T, model contractx.ChatModel) (*Orchestrator, *statex.MemoryStore) {
	t.Helper()
	store := statex.NewMemoryStore()
	o, err := New(store, model, toolx.NewRegistry())
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return o, store
}

func loadSession(t *testing.T, store *statex.MemoryStore, sessionID string) *statex.SessionState {
	t.Helper()
	st, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return st
}

func TestHandleMessageValidation(t *testing.T) {
	t.Parallel()
	o, _ := newTestOrchestrator(t, &fakeModel{})

	if _, err := o.HandleMessage(context.Background(), "", "hi"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if _, err := o.HandleMessage(context.Background(), "s1", "   "); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestHandleMessageTextOnly(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		textMessage("Welcome! What can I get you?"),
	}}
	o, store := newTestOrchestrator(t, model)

	reply, err := o.HandleMessage(context.Background(), "s1", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Welcome! What can I get you?" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(model.calls) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(model.calls))
	}
	if model.calls[0].toolCount != 6 {
		t.Fatalf("expected the full tool table on the request, got %d", model.calls[0].toolCount)
	}

	st := loadSession(t, store, "s1")
	// system prompt + user + assistant
	if len(st.Transcript) != 3 {
		t.Fatalf("expected 3 transcript entries, got %d", len(st.Transcript))
	}
}

func TestHandleMessageToolRoundTrip(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		toolCallMessage("",
			toolCall("call_A", toolx.ToolAddToCart, `{"item":"Burger","quantity":3}`),
			toolCall("call_B", toolx.ToolGetMenu, `{}`),
		),
		textMessage("Added 3 burgers. Anything else?"),
	}}
	o, store := newTestOrchestrator(t, model)

	reply, err := o.HandleMessage(context.Background(), "s1", "three burgers please")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Added 3 burgers. Anything else?" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(model.calls) != 2 {
		t.Fatalf("expected two model calls, got %d", len(model.calls))
	}
	// Second call sees the first call's transcript plus assistant turn and
	// both tool results.
	if got, want := model.calls[1].transcriptLen, model.calls[0].transcriptLen+3; got != want {
		t.Fatalf("second call transcript length=%d, want %d", got, want)
	}

	st := loadSession(t, store, "s1")
	if st.Cart["burger"] != 3 {
		t.Fatalf("cart not mutated, cart=%v", st.Cart)
	}
	if st.Catalog["burger"].Stock != 7 {
		t.Fatalf("stock not reserved, stock=%d", st.Catalog["burger"].Stock)
	}

	var toolIDs []string
	for _, entry := range st.Transcript {
		if entry.OfTool != nil {
			toolIDs = append(toolIDs, entry.OfTool.ToolCallID)
		}
	}
	if len(toolIDs) != 2 || toolIDs[0] != "call_A" || toolIDs[1] != "call_B" {
		t.Fatalf("tool results not correlated in emission order: %v", toolIDs)
	}
}

func TestHandleMessageBusinessErrorIsNotAFailure(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		toolCallMessage("",
			toolCall("call_A", toolx.ToolAddToCart, `{"item":"burger","quantity":20}`),
		),
		textMessage("Sorry, only 10 burgers left."),
	}}
	o, store := newTestOrchestrator(t, model)

	reply, err := o.HandleMessage(context.Background(), "s1", "twenty burgers")
	if err != nil {
		t.Fatalf("business error must not fail the turn: %v", err)
	}
	if reply != "Sorry, only 10 burgers left." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	st := loadSession(t, store, "s1")
	if len(st.Cart) != 0 || st.Catalog["burger"].Stock != 10 {
		t.Fatalf("failed add mutated state: cart=%v stock=%d", st.Cart, st.Catalog["burger"].Stock)
	}
}

func TestHandleMessageUnknownToolStillReplies(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		toolCallMessage("", toolCall("call_A", "refundOrder", `{}`)),
		textMessage("I can't do refunds, sorry."),
	}}
	o, store := newTestOrchestrator(t, model)

	reply, err := o.HandleMessage(context.Background(), "s1", "refund my order")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "I can't do refunds, sorry." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	st := loadSession(t, store, "s1")
	for item, entry := range st.Catalog {
		if entry.Stock != statex.DefaultCatalog()[item].Stock {
			t.Fatalf("unknown tool mutated stock for %s", item)
		}
	}
}

func TestHandleMessageSecondRoundToolCallsDropped(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		toolCallMessage("", toolCall("call_A", toolx.ToolAddToCart, `{"item":"coke","quantity":2}`)),
		toolCallMessage("Your coke is in the cart.",
			toolCall("call_C", toolx.ToolAddToCart, `{"item":"coke","quantity":2}`),
		),
	}}
	o, store := newTestOrchestrator(t, model)

	reply, err := o.HandleMessage(context.Background(), "s1", "two cokes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Your coke is in the cart." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(model.calls) != 2 {
		t.Fatalf("single round-trip policy violated: %d model calls", len(model.calls))
	}

	st := loadSession(t, store, "s1")
	if st.Cart["coke"] != 2 {
		t.Fatalf("dropped tool calls must not execute, cart=%v", st.Cart)
	}
}

func TestHandleMessageTransportErrorKeepsSessionUsable(t *testing.T) {
	t.Parallel()

	model := &fakeModel{
		errs: []error{fmt.Errorf("%w: connection reset", contractx.ErrModelInvoke)},
		responses: []*openai.ChatCompletionMessage{
			nil, // consumed by the failing first call
			textMessage("Back online. What would you like?"),
		},
	}
	o, store := newTestOrchestrator(t, model)

	_, err := o.HandleMessage(context.Background(), "s1", "hello?")
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected transport error, got %v", err)
	}

	reply, err := o.HandleMessage(context.Background(), "s1", "hello again")
	if err != nil {
		t.Fatalf("session must accept the next message: %v", err)
	}
	if reply != "Back online. What would you like?" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	// The failed turn's user entry stays on the transcript for audit:
	// system + user(failed) + user + assistant.
	st := loadSession(t, store, "s1")
	if len(st.Transcript) != 4 {
		t.Fatalf("expected 4 transcript entries, got %d", len(st.Transcript))
	}
}

func TestHandleMessageEmptyFollowUpReply(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		toolCallMessage("", toolCall("call_A", toolx.ToolClearCart, `{}`)),
		textMessage("   "),
	}}
	o, _ := newTestOrchestrator(t, model)

	_, err := o.HandleMessage(context.Background(), "s1", "clear it")
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestHandleMessageSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		toolCallMessage("", toolCall("call_A", toolx.ToolAddToCart, `{"item":"pizza","quantity":5}`)),
		textMessage("Five pizzas reserved."),
		textMessage("Hi there!"),
	}}
	o, store := newTestOrchestrator(t, model)

	if _, err := o.HandleMessage(context.Background(), "s1", "five pizzas"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := o.HandleMessage(context.Background(), "s2", "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s2 := loadSession(t, store, "s2")
	if s2.Catalog["pizza"].Stock != 5 {
		t.Fatalf("catalog leaked across sessions: stock=%d", s2.Catalog["pizza"].Stock)
	}
	s1 := loadSession(t, store, "s1")
	if s1.Catalog["pizza"].Stock != 0 {
		t.Fatalf("expected s1 pizza stock 0, got %d", s1.Catalog["pizza"].Stock)
	}
}

func TestHandleMessageMixedTurnsShareOneSession(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []*openai.ChatCompletionMessage{
		textMessage("Hello! Ready to order?"),
		toolCallMessage("", toolCall("call_A", toolx.ToolAddToCart, `{"item":"coke","quantity":2}`)),
		textMessage("Two cokes in the cart."),
		textMessage("Anything else for you?"),
	}}
	o, store := newTestOrchestrator(t, model)

	// Plain-text turn, tool round trip, plain-text turn, all on one session.
	for i, want := range []string{
		"Hello! Ready to order?",
		"Two cokes in the cart.",
		"Anything else for you?",
	} {
		reply, err := o.HandleMessage(context.Background(), "s1", "turn")
		if err != nil {
			t.Fatalf("turn %d: unexpected error: %v", i+1, err)
		}
		if reply != want {
			t.Fatalf("turn %d: reply=%q, want %q", i+1, reply, want)
		}
	}

	if len(model.calls) != 4 {
		t.Fatalf("expected 4 model calls across the three turns, got %d", len(model.calls))
	}

	st := loadSession(t, store, "s1")
	if st.Cart["coke"] != 2 {
		t.Fatalf("tool turn did not persist, cart=%v", st.Cart)
	}
	// system + (user+assistant) + (user+assistant+tool+assistant) + (user+assistant)
	if len(st.Transcript) != 9 {
		t.Fatalf("expected 9 transcript entries, got %d", len(st.Transcript))
	}
}

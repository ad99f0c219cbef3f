package chatnode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
	statex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/state"
)

// LoadOrCreateState resolves the session, seeding a fresh one (catalog, empty
// cart, system prompt) when the store has no entry for this id.
func LoadOrCreateState(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
	systemPrompt string,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := store.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, statex.ErrStateNotFound) {
			return nil, err
		}
		st = statex.NewSessionState(in.SessionID, in.Now)
		if systemPrompt != "" {
			st.AppendSystem(systemPrompt)
		}
		// Register the session up front so a transport failure later in the
		// turn still leaves its partial transcript visible for audit.
		if err := store.Save(ctx, st); err != nil {
			return nil, err
		}
	}

	in.Session = st
	return in, nil
}

// AppendUserTurn records the incoming user message on the transcript before
// the first model call.
func AppendUserTurn(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	in.Session.AppendUser(in.Text)
	return in, nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	orchestratorx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/agents/orchestrator"
	statex "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/state"
	toolx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/tool"
	configx "github.com/Artigupta18/Restaurant-AI-Chatbot/pkg/config"
	_ "github.com/Artigupta18/Restaurant-AI-Chatbot/pkg/logger/autoload"
	openaix "github.com/Artigupta18/Restaurant-AI-Chatbot/pkg/openaix"
)

func main() {
	openaiCfg := configx.MustNew[openaix.Config]("OPENAI")
	client := openaix.MustNew(*openaiCfg)

	store := statex.NewMemoryStore()
	agent, err := orchestratorx.New(store, client, toolx.NewRegistry())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build orchestrator")
	}

	sessionID := uuid.NewString()
	ctx := context.Background()

	fmt.Println("Restaurant AI Chatbot. Type your order, ctrl-d to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		reply, err := agent.HandleMessage(ctx, sessionID, text)
		if err != nil {
			// Transport failures end the turn, not the session; the partial
			// transcript stays in the store for audit.
			log.Error().Err(err).Msg("turn failed")
			fmt.Println("Sorry, something went wrong talking to the kitchen. Please try again.")
			continue
		}
		fmt.Println(reply)
	}

	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
}

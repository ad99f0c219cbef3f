// Package openaix wraps the OpenAI SDK behind the contract.ChatModel
// round-trip used by the orchestration loop.
package openaix

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/Artigupta18/Restaurant-AI-Chatbot/agent/contract"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openai api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model is required", contractx.ErrValidation)
	}
	return nil
}

// Client is a blocking chat-completions client. A stalled call is cut off by
// the configured request timeout and surfaces as a transport error.
type Client struct {
	sdk         openaisdk.Client
	model       string
	temperature float64
	maxTokens   int64
}

var _ contractx.ChatModel = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Client{
		sdk:         openaisdk.NewClient(opts...),
		model:       strings.TrimSpace(cfg.Model),
		temperature: float64(cfg.Temperature),
		maxTokens:   int64(cfg.MaxCompletionToken),
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

func (c *Client) Complete(
	ctx context.Context,
	transcript []openaisdk.ChatCompletionMessageParamUnion,
	tools []openaisdk.ChatCompletionToolParam,
) (*openaisdk.ChatCompletionMessage, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:               openaisdk.ChatModel(c.model),
		Messages:            transcript,
		Temperature:         openaisdk.Float(c.temperature),
		MaxCompletionTokens: openaisdk.Int(c.maxTokens),
	}
	if len(tools) > 0 {
		params.Tools = tools
	}

	completion, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion has no choices", contractx.ErrSchemaViolation)
	}

	msg := completion.Choices[0].Message
	return &msg, nil
}

// Package llm wraps an OpenAI-compatible chat completion API with
// response caching and token usage tracking. The cache is strictly
// best-effort: a nil or failing backend only means a remote call.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/specforge-ai/specforge/pkg/cache"
	"github.com/specforge-ai/specforge/pkg/models"
	"github.com/specforge-ai/specforge/pkg/tracker"
)

// Options configures a Client.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the API endpoint, e.g. for Ollama or a local
	// test server. Empty means the provider default.
	BaseURL string
	Cache   cache.Backend
	Tracker tracker.Tracker
	// Command labels usage records with the CLI command that issued
	// the completion.
	Command string
}

// Request is a single completion request.
type Request struct {
	Prompt       string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// Completer is the surface the prompt pipelines consume; *Client
// implements it.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client issues chat completions, consulting the response cache
// before every remote call.
type Client struct {
	api      openai.Client
	provider string
	model    string
	cache    cache.Backend
	tracker  tracker.Tracker
	command  string
}

// New creates a completion client.
func New(opts Options) *Client {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &Client{
		api:      openai.NewClient(reqOpts...),
		provider: opts.Provider,
		model:    opts.Model,
		cache:    opts.Cache,
		tracker:  opts.Tracker,
		command:  opts.Command,
	}
}

// ModelID returns the provider-qualified model name used in cache
// keys and usage records.
func (c *Client) ModelID() string {
	return c.provider + "/" + c.model
}

// Complete returns the completion text for req. On a cache hit the
// remote API is not called at all; on a miss the result is stored
// afterward.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	messages := c.buildMessages(req)

	var key string
	if c.cache != nil {
		serialized, _ := json.Marshal(messages)
		key = cache.GenerateKey(string(serialized), c.ModelID(), req.Temperature)
		if v, ok := c.cache.Get(key); ok {
			c.record(ctx, models.Usage{}, true)
			return string(v), nil
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildParamMessages(messages),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	text := completion.Choices[0].Message.Content

	if c.cache != nil {
		c.cache.Set(key, []byte(text))
	}
	c.record(ctx, models.Usage{
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:      int(completion.Usage.TotalTokens),
	}, false)

	return text, nil
}

func (c *Client) buildMessages(req Request) []models.ChatMessage {
	var messages []models.ChatMessage
	if req.SystemPrompt != "" {
		messages = append(messages, models.ChatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, models.ChatMessage{Role: "user", Content: req.Prompt})
	return messages
}

func (c *Client) record(ctx context.Context, usage models.Usage, cached bool) {
	if c.tracker == nil {
		return
	}
	err := c.tracker.Record(ctx, models.UsageRecord{
		Provider:         c.provider,
		Model:            c.model,
		Command:          c.command,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		Cached:           cached,
	})
	if err != nil {
		log.Printf("usage tracking: %v", err)
	}
}

// buildParamMessages converts chat messages to the openai-go SDK
// union type.
func buildParamMessages(msgs []models.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

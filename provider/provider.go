package provider

import (
	"context"
	"errors"

	"github.com/hamedsh/agentchat/config"
	openai_provider "github.com/hamedsh/agentchat/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// Message is one entry of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles used across the loop.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider is the completion capability the agent loop depends on. One
// call, one full assistant message back; streaming to the caller is the
// loop's job, not the provider's.
type Provider interface {
	Complete(ctx context.Context, messages []Message, model string, temperature float64, maxTokens int) (string, error)
}

// NewProvider creates an LLM client from configuration. A missing API
// key is a startup error: the process must not come up without a
// working completion capability.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case OpenAI, "":
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return openaiAdapter{c: openai_provider.NewClient(cfg.APIKey, cfg.Model, cfg.Timeout)}, nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}

type openaiAdapter struct {
	c *openai_provider.Client
}

func (a openaiAdapter) Complete(ctx context.Context, messages []Message, model string, temperature float64, maxTokens int) (string, error) {
	conv := make([]openai_provider.Message, len(messages))
	for i, m := range messages {
		conv[i] = openai_provider.Message{Role: m.Role, Content: m.Content}
	}
	return a.c.Complete(ctx, conv, model, temperature, maxTokens)
}

package search

import (
	"context"
	"fmt"

	"github.com/hamedsh/agentchat/search/brave"
	"github.com/hamedsh/agentchat/search/models"
	"github.com/hamedsh/agentchat/search/serper"
)

// WebSearcher discovers results for a query. freshness is one of
// "", "day", "week", "month", "year".
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int, freshness string) ([]models.Result, error)
}

type Provider string

const (
	BraveProvider  Provider = "brave"
	SerperProvider Provider = "serper"
)

// NewWebSearcher selects a search backend by provider name.
func NewWebSearcher(provider Provider, apiKey string) (WebSearcher, error) {
	switch provider {
	case BraveProvider:
		return &brave.Search{ApiKey: apiKey}, nil
	case SerperProvider:
		return &serper.Search{ApiKey: apiKey}, nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", provider)
	}
}

package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/hamedsh/agentchat/fetch/chromedp"
	"github.com/hamedsh/agentchat/fetch/models"
	"github.com/hamedsh/agentchat/fetch/scraperapi"
)

const (
	DefaultTimeout  = 30 * time.Second
	MaxCharsDefault = 50000
)

// Fetcher retrieves a page and extracts its readable content.
type Fetcher interface {
	Exec(ctx context.Context, url string) (models.Result, error)
}

type Backend string

const (
	ScraperAPIBackend Backend = "scraperapi"
	ChromedpBackend   Backend = "chromedp"
)

// NewFetcher selects a fetch backend. The scraperapi backend needs a
// key; chromedp drives a local headless browser.
func NewFetcher(backend Backend, apiKey string, timeout time.Duration, maxChars int) (Fetcher, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}
	switch backend {
	case ScraperAPIBackend, "":
		return &scraperapi.Fetch{ApiKey: apiKey, Timeout: timeout, MaxChars: maxChars}, nil
	case ChromedpBackend:
		return chromedp.New(timeout, maxChars), nil
	default:
		return nil, fmt.Errorf("unsupported fetch backend: %s", backend)
	}
}

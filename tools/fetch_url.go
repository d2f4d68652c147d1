package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hamedsh/agentchat/fetch"
)

// Page text beyond this is cut with a marker so the model knows the
// tail is missing.
const fetchContentCap = 50000

// FetchURLTool retrieves a single webpage and returns its readable
// text as markdown-ish output with a title header.
type FetchURLTool struct {
	fetcher fetch.Fetcher
	logger  *log.Logger
}

func NewFetchURLTool(fetcher fetch.Fetcher) *FetchURLTool {
	return &FetchURLTool{
		fetcher: fetcher,
		logger:  log.New(log.Writer(), "[FETCHURL] ", log.LstdFlags),
	}
}

func (t *FetchURLTool) Name() string { return "fetch_url" }

func (t *FetchURLTool) Description() string {
	return "Fetches webpage content, bypassing blocks and rendering JavaScript when needed"
}

func (t *FetchURLTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "url", Type: "string", Description: "The URL to fetch content from", Required: true},
	}
}

func (t *FetchURLTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	url := strings.TrimSpace(stringArg(args, "url"))
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "Error: Invalid URL. Must start with http:// or https://", nil
	}

	t.logger.Printf("fetching %s", url)
	res, err := t.fetcher.Exec(ctx, url)
	if err != nil {
		t.logger.Printf("fetch failed for %s: %v", url, err)
		return fmt.Sprintf("Error: Failed to fetch content - %v", err), nil
	}
	if res.Status != 200 {
		return fmt.Sprintf("Error: fetch returned status %d for %s", res.Status, url), nil
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		return fmt.Sprintf("Error: No meaningful content could be extracted from %s", url), nil
	}
	text = truncateText(text, fetchContentCap)

	title := res.Title
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Source: %s\n\n", url)
	b.WriteString("---\n\n")
	b.WriteString(text)
	return b.String(), nil
}

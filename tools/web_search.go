package tools

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hamedsh/agentchat/cache"
	"github.com/hamedsh/agentchat/fetch"
	"github.com/hamedsh/agentchat/search"
	"github.com/hamedsh/agentchat/search/models"
)

const (
	// Fetched article bodies beyond this are cut to keep the tool
	// result inside the model's context comfortably.
	articleCharCap = 8000
	// Fetched content shorter than this is noise and dropped.
	substantialContentMin = 100
	// Only the top results get a full-content fetch.
	maxContentFetches = 2

	defaultResultCount = 2
	maxResultCount     = 5
)

// WebSearchTool searches the web and enriches the top results with
// their full article text fetched concurrently.
type WebSearchTool struct {
	searcher search.WebSearcher
	fetcher  fetch.Fetcher
	store    cache.Store
	ttl      time.Duration
	logger   *log.Logger
}

func NewWebSearchTool(searcher search.WebSearcher, fetcher fetch.Fetcher, store cache.Store, ttl time.Duration) *WebSearchTool {
	return &WebSearchTool{
		searcher: searcher,
		fetcher:  fetcher,
		store:    store,
		ttl:      ttl,
		logger:   log.New(log.Writer(), "[WEBSEARCH] ", log.LstdFlags),
	}
}

func (t *WebSearchTool) Name() string { return "web_search" }

func (t *WebSearchTool) Description() string {
	return "Search the web for current information and automatically fetch full content from top results"
}

func (t *WebSearchTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "query", Type: "string", Description: "The search query to look up on the web", Required: true},
		{Name: "count", Type: "integer", Description: "Number of results to return (default: 2, max: 5)"},
		{Name: "freshness", Type: "string", Description: "Filter by recency: 'day', 'week', 'month', 'year'", Enum: []string{"day", "week", "month", "year"}},
		{Name: "fetch_content", Type: "boolean", Description: "Whether to fetch full content from top results (default: true)"},
	}
}

func (t *WebSearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query := stringArg(args, "query")
	if strings.TrimSpace(query) == "" {
		return "Error performing search: query is required", nil
	}
	count := intArg(args, "count", defaultResultCount)
	freshness := stringArg(args, "freshness")
	fetchContent := boolArg(args, "fetch_content", true)
	return t.run(ctx, query, count, freshness, fetchContent)
}

// run carries the actual search so composing tools can call it with a
// rewritten query without re-coercing arguments.
func (t *WebSearchTool) run(ctx context.Context, query string, count int, freshness string, fetchContent bool) (string, error) {
	if count < 1 {
		count = 1
	}
	if count > maxResultCount {
		count = maxResultCount
	}

	cacheKey := fmt.Sprintf("search:%s:%d:%s:%t", query, count, freshness, fetchContent)
	if t.store != nil {
		if cached, ok := t.store.Get(ctx, cacheKey); ok {
			t.logger.Printf("cache hit for query %q", query)
			return cached, nil
		}
	}

	results, err := t.searcher.Discover(ctx, query, count, freshness)
	if err != nil {
		t.logger.Printf("search failed for %q: %v", query, err)
		return fmt.Sprintf("Error performing search: %v", err), nil
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for: %s", query), nil
	}
	if len(results) > count {
		results = results[:count]
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("🔍 **Search Results for '%s'**\n", query))
	for i, r := range results {
		parts = append(parts, fmt.Sprintf("%d. **%s**", i+1, r.Title))
		parts = append(parts, fmt.Sprintf("   URL: %s", r.URL))
		parts = append(parts, fmt.Sprintf("   %s\n", r.Snippet))
	}

	if fetchContent && t.fetcher != nil {
		fetched := t.fetchTop(ctx, results)
		if len(fetched) > 0 {
			parts = append(parts, "\n📄 **Full Article Content:**\n")
			for i, fc := range fetched {
				parts = append(parts, fmt.Sprintf("\n--- **Article %d** ---", i+1))
				parts = append(parts, fmt.Sprintf("Source: %s", fc.url))
				parts = append(parts, fc.text)
				parts = append(parts, "\n"+strings.Repeat("=", 50)+"\n")
			}
		}
	}

	out := strings.Join(parts, "\n")
	if t.store != nil {
		if err := t.store.Set(ctx, cacheKey, out, t.ttl); err != nil {
			t.logger.Printf("cache write failed: %v", err)
		}
	}
	return out, nil
}

type fetchedArticle struct {
	url  string
	text string
}

// fetchTop pulls full text for the top results concurrently. A failed
// or thin fetch drops that slot without affecting the others.
func (t *WebSearchTool) fetchTop(ctx context.Context, results []models.Result) []fetchedArticle {
	n := len(results)
	if n > maxContentFetches {
		n = maxContentFetches
	}
	texts := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slot int, url string) {
			defer wg.Done()
			res, err := t.fetcher.Exec(ctx, url)
			if err != nil {
				t.logger.Printf("fetch failed for %s: %v", url, err)
				return
			}
			if res.Status != 200 {
				t.logger.Printf("fetch for %s returned status %d", url, res.Status)
				return
			}
			texts[slot] = truncateText(strings.TrimSpace(res.Text), articleCharCap)
		}(i, results[i].URL)
	}
	wg.Wait()

	var out []fetchedArticle
	for i := 0; i < n; i++ {
		if len(texts[i]) > substantialContentMin {
			out = append(out, fetchedArticle{url: results[i].URL, text: texts[i]})
		}
	}
	return out
}

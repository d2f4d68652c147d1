package scraperapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/hamedsh/agentchat/fetch/models"
)

const DefaultBaseURL = "https://api.scraperapi.com/"

// Fetch retrieves pages through the ScraperAPI render service, which
// handles JavaScript rendering and bot blocks, then extracts the main
// article via readability.
type Fetch struct {
	ApiKey   string
	BaseURL  string // defaults to DefaultBaseURL
	Timeout  time.Duration
	MaxChars int
}

func (f *Fetch) Exec(ctx context.Context, link string) (models.Result, error) {
	if strings.TrimSpace(link) == "" {
		return models.Result{}, errors.New("invalid url")
	}
	base := f.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	t0 := time.Now()

	params := url.Values{}
	params.Set("api_key", f.ApiKey)
	params.Set("url", link)
	params.Set("render", "true")

	req, err := http.NewRequestWithContext(ctx, "GET", base+"?"+params.Encode(), nil)
	if err != nil {
		return models.Result{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Result{URL: link, Status: 599, RenderMS: int(time.Since(t0) / time.Millisecond)}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.Result{URL: link, Status: resp.StatusCode, RenderMS: int(time.Since(t0) / time.Millisecond)},
			fmt.Errorf("scraperapi returned status %d", resp.StatusCode)
	}
	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Result{URL: link, Status: 599, RenderMS: int(time.Since(t0) / time.Millisecond)}, nil
	}

	article, err := readability.FromReader(strings.NewReader(string(html)), mustParseURL(link))
	if err != nil {
		return models.Result{URL: link, Status: 200, RenderMS: int(time.Since(t0) / time.Millisecond)}, nil
	}
	text := models.ClampText(strings.TrimSpace(article.TextContent), f.MaxChars)
	return models.Result{
		URL:      link,
		Title:    strings.TrimSpace(article.Title),
		Byline:   strings.TrimSpace(article.Byline),
		Text:     text,
		Status:   200,
		RenderMS: int(time.Since(t0) / time.Millisecond),
	}, nil
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

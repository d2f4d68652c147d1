package chromedp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-shiori/go-readability"
	"github.com/hamedsh/agentchat/fetch/models"
)

// Fetch owns a long-lived headless browser and extracts the main
// article via readability. Construct with New; call Exec per URL and
// Close on shutdown. Suited to deployments without a scraping service
// credential.
type Fetch struct {
	brCtx       context.Context
	cancelBr    context.CancelFunc
	cancelAlloc context.CancelFunc

	Timeout  time.Duration
	MaxChars int
}

// New starts a reusable browser process shared by all Exec calls.
func New(timeout time.Duration, maxChars int) *Fetch {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("agentchat/1.0 (+contact@example.com)"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	bctx, cancelBr := chromedp.NewContext(actx)

	return &Fetch{
		brCtx:       bctx,
		cancelBr:    cancelBr,
		cancelAlloc: cancelAlloc,
		Timeout:     timeout,
		MaxChars:    maxChars,
	}
}

// Close tears down the browser and its allocator.
func (f *Fetch) Close() {
	if f.cancelBr != nil {
		f.cancelBr()
	}
	if f.cancelAlloc != nil {
		f.cancelAlloc()
	}
}

func (f *Fetch) Exec(ctx context.Context, link string) (models.Result, error) {
	if strings.TrimSpace(link) == "" {
		return models.Result{}, errors.New("invalid url")
	}
	t0 := time.Now()

	html, err := f.outerHTML(link)
	if err != nil {
		return models.Result{URL: link, Status: 599, RenderMS: int(time.Since(t0) / time.Millisecond)}, nil
	}

	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(link))
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

// outerHTML opens a fresh tab off the shared browser so the per-call
// timeout cannot tear down the browser itself.
func (f *Fetch) outerHTML(link string) (string, error) {
	tab, cancelTab := chromedp.NewContext(f.brCtx)
	defer cancelTab()
	tctx, cancelTO := context.WithTimeout(tab, f.Timeout)
	defer cancelTO()

	var html string
	err := chromedp.Run(tctx,
		chromedp.Navigate(link),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

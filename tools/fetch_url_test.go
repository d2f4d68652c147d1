package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	fetchmodels "github.com/hamedsh/agentchat/fetch/models"
)

type singleFetcher struct {
	result fetchmodels.Result
	err    error
}

func (f *singleFetcher) Exec(ctx context.Context, url string) (fetchmodels.Result, error) {
	return f.result, f.err
}

func TestFetchURLFormatsOutput(t *testing.T) {
	tool := NewFetchURLTool(&singleFetcher{result: fetchmodels.Result{
		URL: "https://example.com", Title: "Example Page", Text: "Body text here.", Status: 200,
	}})

	out, err := tool.Execute(context.Background(), map[string]any{"url": "https://example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "# Example Page\n\nSource: https://example.com\n\n---\n\n") {
		t.Fatalf("unexpected framing: %q", out)
	}
	if !strings.Contains(out, "Body text here.") {
		t.Fatalf("missing body: %q", out)
	}
}

func TestFetchURLRejectsBadScheme(t *testing.T) {
	tool := NewFetchURLTool(&singleFetcher{})
	for _, url := range []string{"ftp://example.com", "example.com", ""} {
		out, err := tool.Execute(context.Background(), map[string]any{"url": url})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "Invalid URL") {
			t.Errorf("expected rejection for %q, got %q", url, out)
		}
	}
}

func TestFetchURLErrorIsResultText(t *testing.T) {
	tool := NewFetchURLTool(&singleFetcher{err: errors.New("connection refused")})
	out, err := tool.Execute(context.Background(), map[string]any{"url": "https://down.example"})
	if err != nil {
		t.Fatalf("fetch failure should not be an error: %v", err)
	}
	if !strings.Contains(out, "Error: Failed to fetch content") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFetchURLNonOKStatus(t *testing.T) {
	tool := NewFetchURLTool(&singleFetcher{result: fetchmodels.Result{Status: 599}})
	out, err := tool.Execute(context.Background(), map[string]any{"url": "https://slow.example"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "status 599") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFetchURLEmptyContent(t *testing.T) {
	tool := NewFetchURLTool(&singleFetcher{result: fetchmodels.Result{Status: 200, Title: "Blank"}})
	out, err := tool.Execute(context.Background(), map[string]any{"url": "https://blank.example"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No meaningful content could be extracted") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFetchURLTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("a", fetchContentCap+10000)
	tool := NewFetchURLTool(&singleFetcher{result: fetchmodels.Result{
		URL: "https://example.com", Title: "Long", Text: long, Status: 200,
	}})

	out, err := tool.Execute(context.Background(), map[string]any{"url": "https://example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out, "[Content truncated...]") {
		t.Fatalf("expected truncation marker, got tail %q", out[len(out)-40:])
	}
	if strings.Count(out, "a") != fetchContentCap {
		t.Fatalf("expected body cut at %d chars, got %d", fetchContentCap, strings.Count(out, "a"))
	}
}

func TestFetchURLTruncationKeepsRunesIntact(t *testing.T) {
	// 3-byte runes, so the byte cap lands inside a rune.
	long := strings.Repeat("世", fetchContentCap)
	tool := NewFetchURLTool(&singleFetcher{result: fetchmodels.Result{
		URL: "https://example.com", Title: "Multibyte", Text: long, Status: 200,
	}})

	out, err := tool.Execute(context.Background(), map[string]any{"url": "https://example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(out) {
		t.Fatal("truncation split a rune")
	}
	if !strings.Contains(out, "[Content truncated...]") {
		t.Fatal("expected truncation marker")
	}
}

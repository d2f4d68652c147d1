package openai_provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCompleteSendsRequestAndParsesChoice(t *testing.T) {
	var gotAuth string
	var gotReq request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", "gpt-4o-mini", time.Second)
	c.SetBaseURL(srv.URL)

	out, err := c.Complete(context.Background(), []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	}, "", 0.2, 100)
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello there" {
		t.Fatalf("got %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Fatalf("empty model should fall back to default, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "hi" {
		t.Fatalf("messages = %+v", gotReq.Messages)
	}
	if gotReq.Temperature != 0.2 || gotReq.MaxTokens != 100 {
		t.Fatalf("sampling params: %+v", gotReq)
	}
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad", "gpt-4o-mini", time.Second)
	c.SetBaseURL(srv.URL)

	_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, "", 0, 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Fatalf("error should carry upstream message: %v", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient("k", "m", time.Second)
	c.SetBaseURL(srv.URL)

	if _, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, "", 0, 0); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

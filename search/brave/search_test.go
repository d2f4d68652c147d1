package brave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiscover(t *testing.T) {
	var gotQuery, gotCount, gotFreshness, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCount = r.URL.Query().Get("count")
		gotFreshness = r.URL.Query().Get("freshness")
		gotToken = r.Header.Get("X-Subscription-Token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"web":{"results":[
			{"title":"First","url":"https://a.example","description":"about a"},
			{"title":"Second","url":"https://b.example","description":"about b"}
		]}}`))
	}))
	defer srv.Close()

	s := &Search{ApiKey: "test-key", BaseURL: srv.URL}
	results, err := s.Discover(context.Background(), "golang news", 2, "week")
	if err != nil {
		t.Fatal(err)
	}

	if gotQuery != "golang news" || gotCount != "2" {
		t.Fatalf("query params: q=%q count=%q", gotQuery, gotCount)
	}
	if gotFreshness != "pw" {
		t.Fatalf("freshness = %q, want pw", gotFreshness)
	}
	if gotToken != "test-key" {
		t.Fatalf("token = %q", gotToken)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "First" || results[0].URL != "https://a.example" || results[0].Snippet != "about a" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
}

func TestDiscoverOmitsUnknownFreshness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("freshness") {
			t.Error("freshness should be omitted when unset")
		}
		_, _ = w.Write([]byte(`{"web":{"results":[]}}`))
	}))
	defer srv.Close()

	s := &Search{ApiKey: "k", BaseURL: srv.URL}
	if _, err := s.Discover(context.Background(), "q", 1, ""); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverTruncatesToK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"web":{"results":[
			{"title":"1","url":"https://1.example","description":""},
			{"title":"2","url":"https://2.example","description":""},
			{"title":"3","url":"https://3.example","description":""}
		]}}`))
	}))
	defer srv.Close()

	s := &Search{ApiKey: "k", BaseURL: srv.URL}
	results, err := s.Discover(context.Background(), "q", 2, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestDiscoverNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := &Search{ApiKey: "bad", BaseURL: srv.URL}
	if _, err := s.Discover(context.Background(), "q", 1, ""); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

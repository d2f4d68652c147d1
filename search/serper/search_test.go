package serper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiscover(t *testing.T) {
	var gotBody map[string]any
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[
			{"title":"First","link":"https://a.example","snippet":"about a"}
		]}`))
	}))
	defer srv.Close()

	s := &Search{ApiKey: "serper-key", BaseURL: srv.URL}
	results, err := s.Discover(context.Background(), "golang", 3, "month")
	if err != nil {
		t.Fatal(err)
	}

	if gotKey != "serper-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if gotBody["q"] != "golang" || gotBody["num"] != float64(3) {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
	if gotBody["tbs"] != "qdr:m" {
		t.Fatalf("tbs = %v, want qdr:m", gotBody["tbs"])
	}
	if len(results) != 1 || results[0].URL != "https://a.example" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestDiscoverNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := &Search{ApiKey: "bad", BaseURL: srv.URL}
	if _, err := s.Discover(context.Background(), "q", 1, ""); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

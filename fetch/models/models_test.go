package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClampTextShortPassesThrough(t *testing.T) {
	if got := ClampText("short", 100); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := ClampText("unbounded", 0); got != "unbounded" {
		t.Fatalf("got %q", got)
	}
}

func TestClampTextMarksCut(t *testing.T) {
	got := ClampText(strings.Repeat("a", 200), 100)
	if !strings.HasSuffix(got, "[Content truncated...]") {
		t.Fatalf("expected marker, got %q", got)
	}
	if strings.Count(got, "a") != 100 {
		t.Fatalf("expected 100 kept chars, got %d", strings.Count(got, "a"))
	}
}

func TestClampTextKeepsRunesIntact(t *testing.T) {
	// 3-byte runes, so a cap of 100 lands inside a rune.
	got := ClampText(strings.Repeat("世", 100), 100)
	if !utf8.ValidString(got) {
		t.Fatal("clamp split a rune")
	}
	if !strings.HasSuffix(got, "[Content truncated...]") {
		t.Fatalf("expected marker, got %q", got)
	}
}

package tools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestValidator(t *testing.T) *FileValidator {
	t.Helper()
	v, err := NewFileValidator(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := v.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestValidatePathRejectsAbsolute(t *testing.T) {
	v := newTestValidator(t)
	for _, path := range []string{"/etc/passwd", "C:/windows/system32", "c:\\temp\\x.txt"} {
		if _, err := v.ValidatePath(path, "read"); err == nil {
			t.Errorf("expected rejection for %q", path)
		}
	}
}

func TestValidatePathRejectsTraversal(t *testing.T) {
	v := newTestValidator(t)
	for _, path := range []string{"../secrets.txt", "knowledge_base/../../escape.txt", "..\\..\\escape.txt"} {
		_, err := v.ValidatePath(path, "read")
		if err == nil {
			t.Errorf("expected rejection for %q", path)
			continue
		}
		if !strings.Contains(err.Error(), "traversal") && !strings.Contains(err.Error(), "Absolute") {
			t.Errorf("unexpected error for %q: %v", path, err)
		}
	}
}

func TestValidatePathRejectsForbidden(t *testing.T) {
	v := newTestValidator(t)
	if _, err := v.ValidatePath(".env", "read"); err == nil {
		t.Error("expected .env to be rejected")
	}
	if _, err := v.ValidatePath("node_modules/pkg/index.js", "read"); err == nil {
		t.Error("expected node_modules to be rejected")
	}
}

func TestValidatePathExtensionAllowlist(t *testing.T) {
	v := newTestValidator(t)
	if _, err := v.ValidatePath("output/report.md", "create"); err != nil {
		t.Errorf(".md should be allowed: %v", err)
	}
	if _, err := v.ValidatePath("output/tool.exe", "create"); err == nil {
		t.Error(".exe should be rejected")
	}
	if _, err := v.ValidatePath("output/noext", "create"); err == nil {
		t.Error("extensionless file should be rejected")
	}
}

func TestValidatePathReadMissingFile(t *testing.T) {
	v := newTestValidator(t)
	_, err := v.ValidatePath("knowledge_base/missing.txt", "read")
	if err == nil || !strings.Contains(err.Error(), "File not found") {
		t.Fatalf("expected file-not-found, got %v", err)
	}
}

func TestSafeContentBinaryProbe(t *testing.T) {
	v := newTestValidator(t)
	path := filepath.Join(v.KnowledgeBase(), "blob.log")
	if err := os.WriteFile(path, []byte{0x89, 0x50, 0x00, 0x47}, 0o644); err != nil {
		t.Fatal(err)
	}
	content, err := v.SafeContent(path)
	if err != nil {
		t.Fatal(err)
	}
	if !content.IsBinary {
		t.Fatal("expected binary detection")
	}
	if !strings.Contains(content.Content, "BINARY FILE") {
		t.Fatalf("unexpected content: %q", content.Content)
	}
}

func TestSafeContentTruncation(t *testing.T) {
	v := newTestValidator(t)
	path := filepath.Join(v.KnowledgeBase(), "big.txt")
	if err := os.WriteFile(path, bytes.Repeat([]byte("a"), maxContentDisplay+10), 0o644); err != nil {
		t.Fatal(err)
	}
	content, err := v.SafeContent(path)
	if err != nil {
		t.Fatal(err)
	}
	if !content.Truncated {
		t.Fatal("expected truncation")
	}
	if content.DisplayedSize != maxContentDisplay {
		t.Fatalf("displayed size = %d, want %d", content.DisplayedSize, maxContentDisplay)
	}
	if !strings.HasSuffix(content.Content, "[TRUNCATED - File too large for display]") {
		t.Fatal("expected truncation marker")
	}
}

func TestSafeContentSmallFile(t *testing.T) {
	v := newTestValidator(t)
	path := filepath.Join(v.KnowledgeBase(), "note.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	content, err := v.SafeContent(path)
	if err != nil {
		t.Fatal(err)
	}
	if content.Content != "hello" || content.Truncated || content.IsBinary {
		t.Fatalf("unexpected result: %+v", content)
	}
}

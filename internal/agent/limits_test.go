package agent

import "testing"

func TestLimitsForFileSystem(t *testing.T) {
	limits := LimitsFor([]string{"file_system"})
	if limits.MaxTools != 4 || limits.MaxTurns != 6 {
		t.Fatalf("unexpected limits: %+v", limits)
	}
}

func TestLimitsForFileSystemWinsOverSearch(t *testing.T) {
	limits := LimitsFor([]string{"web_search", "file_system"})
	if limits.MaxTools != 4 || limits.MaxTurns != 6 {
		t.Fatalf("file_system should take precedence: %+v", limits)
	}
}

func TestLimitsForSearch(t *testing.T) {
	for _, toolSet := range [][]string{
		{"web_search"},
		{"case_studies_search"},
		{"web_search", "case_studies_search"},
	} {
		limits := LimitsFor(toolSet)
		if limits.MaxTools != 3 || limits.MaxTurns != 5 {
			t.Fatalf("unexpected limits for %v: %+v", toolSet, limits)
		}
	}
}

func TestLimitsForDefault(t *testing.T) {
	limits := LimitsFor([]string{"fetch_url"})
	if limits.MaxTools != 2 || limits.MaxTurns != 5 {
		t.Fatalf("unexpected default limits: %+v", limits)
	}
}

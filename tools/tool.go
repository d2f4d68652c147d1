// Package tools defines the tool capability contract and the concrete
// capabilities the agent loop can dispatch to: web search, case-study
// search, URL fetching and sandboxed file access.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Parameter describes one declared tool argument.
type Parameter struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
}

// Tool is the uniform capability contract. Execute returns readable
// text for both success and expected failure; the returned error is
// reserved for genuinely unexpected conditions.
type Tool interface {
	Name() string
	Description() string
	Parameters() []Parameter
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Argument helpers. Tool args arrive as decoded JSON, so numbers are
// float64 and every accessor has to coerce.

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func intArg(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return def
}

func boolArg(args map[string]any, key string, def bool) bool {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return def
}

const truncationMarker = "\n\n[Content truncated...]"

// truncateText caps s at max bytes without splitting a UTF-8 rune and
// marks the cut so the model knows content is missing.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + truncationMarker
}

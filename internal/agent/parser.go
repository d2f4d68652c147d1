// Package agent implements the structured-output agent loop: parsing
// model turns, enforcing per-session tool budgets, detecting repeated
// tool calls and streaming typed events to the caller.
package agent

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

var (
	thinkRe      = regexp.MustCompile(`(?s)<think>(.*?)</think>`)
	toolRe       = regexp.MustCompile(`(?s)<tool>(.*?)</tool>`)
	answerRe     = regexp.MustCompile(`(?s)<answer>(.*?)</answer>`)
	answerOpenRe = regexp.MustCompile(`(?s)<answer>(.*)$`)
	parserLogger = log.New(log.Writer(), "[PARSER] ", log.LstdFlags)
)

// ToolCall is one tool-invocation request extracted from a model turn.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ParsedTurn is the structured reading of one assistant message.
type ParsedTurn struct {
	Thinking string
	Tool     *ToolCall
	Answer   string
}

// ParseTurn extracts the thinking, tool and answer sections from raw
// model output.
func ParseTurn(response string) ParsedTurn {
	return ParsedTurn{
		Thinking: ParseThinking(response),
		Tool:     ParseToolCall(response),
		Answer:   ParseAnswer(response),
	}
}

// ParseThinking returns the trimmed reasoning section, or "".
func ParseThinking(response string) string {
	if m := thinkRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ParseToolCall returns the tool call enclosed in tool tags. The
// payload must be a JSON object with exactly a string "name" and an
// object "args"; anything else is treated as no tool call.
func ParseToolCall(response string) *ToolCall {
	m := toolRe.FindStringSubmatch(response)
	if m == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &raw); err != nil {
		parserLogger.Printf("failed to parse tool JSON: %v", err)
		return nil
	}
	nameRaw, hasName := raw["name"]
	argsRaw, hasArgs := raw["args"]
	if !hasName || !hasArgs || len(raw) != 2 {
		parserLogger.Printf("tool JSON missing required keys")
		return nil
	}

	var name string
	if err := json.Unmarshal(nameRaw, &name); err != nil {
		parserLogger.Printf("tool name is not a string: %v", err)
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal(argsRaw, &args); err != nil {
		parserLogger.Printf("tool args is not an object: %v", err)
		return nil
	}

	return &ToolCall{Name: name, Args: args}
}

// ParseAnswer returns the trimmed answer section. If the closing tag
// was cut off by a generation limit, the trailing content after the
// opening tag is recovered as the answer when non-empty.
func ParseAnswer(response string) string {
	if m := answerRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := answerOpenRe.FindStringSubmatch(response); m != nil {
		content := strings.TrimSpace(m[1])
		if content != "" {
			parserLogger.Printf("detected truncated answer response")
			return content
		}
	}
	return ""
}

// HasValidFormat reports whether a turn carries a thinking section and
// either a tool or an answer section.
func HasValidFormat(response string) bool {
	hasThinking := strings.Contains(response, "<think>") && strings.Contains(response, "</think>")
	hasTool := strings.Contains(response, "<tool>") && strings.Contains(response, "</tool>")
	hasAnswer := strings.Contains(response, "<answer>")
	return hasThinking && (hasTool || hasAnswer)
}

// Signature builds the canonical loop-detection key for a tool call.
// json.Marshal sorts map keys, so equal argument mappings produce the
// same signature regardless of key order in the model output.
func (c *ToolCall) Signature() string {
	argsJSON, err := json.Marshal(c.Args)
	if err != nil {
		argsJSON = []byte("{}")
	}
	return c.Name + ":" + string(argsJSON)
}

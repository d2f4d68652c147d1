package agent

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Event types emitted by the loop, one event per turn-level decision.
const (
	EventThinking   = "thinking"
	EventToolCalls  = "tool_calls"
	EventToolStart  = "tool_start"
	EventToolResult = "tool_result"
	EventToolError  = "tool_error"
	EventContent    = "content"
	EventError      = "error"
	EventDone       = "done"
)

// Event is one item on the loop's outbound stream.
type Event struct {
	Type      string              `json:"type"`
	Text      string              `json:"text,omitempty"`
	Error     string              `json:"error,omitempty"`
	ToolName  string              `json:"tool_name,omitempty"`
	Args      map[string]any      `json:"args,omitempty"`
	Result    string              `json:"result,omitempty"`
	ToolCalls []ToolCallAnnounced `json:"tool_calls,omitempty"`
}

// ToolCallAnnounced mirrors the OpenAI-style tool_calls frame the UI
// expects on a tool_calls event.
type ToolCallAnnounced struct {
	ID       string       `json:"id"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

func thinkingEvent(text string) Event { return Event{Type: EventThinking, Text: text} }
func contentEvent(text string) Event  { return Event{Type: EventContent, Text: text} }
func errorEvent(msg string) Event     { return Event{Type: EventError, Error: msg} }
func doneEvent() Event                { return Event{Type: EventDone} }

func toolCallsEvent(call *ToolCall) Event {
	argsJSON, err := json.Marshal(call.Args)
	if err != nil {
		argsJSON = []byte("{}")
	}
	return Event{
		Type: EventToolCalls,
		ToolCalls: []ToolCallAnnounced{{
			ID:       fmt.Sprintf("call_%s", uuid.NewString()),
			Function: ToolFunction{Name: call.Name, Arguments: string(argsJSON)},
		}},
	}
}

func toolStartEvent(name string, args map[string]any) Event {
	return Event{Type: EventToolStart, ToolName: name, Args: args}
}

func toolResultEvent(name, result string) Event {
	return Event{Type: EventToolResult, ToolName: name, Result: result}
}

func toolErrorEvent(name, errMsg string) Event {
	return Event{Type: EventToolError, ToolName: name, Error: errMsg}
}

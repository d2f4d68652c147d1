package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hamedsh/agentchat/provider"
	"github.com/hamedsh/agentchat/tools"
)

// User-visible terminal messages.
const (
	msgToolLimitReached = "I have reached the maximum number of tool calls allowed. Based on the information I have gathered, let me provide you with an answer."
	msgLoopDetected     = "I detected that I was about to repeat the same tool call. Let me provide an answer based on the information I have already gathered."
	msgSecurityBlocked  = "🚨 Security restriction: I cannot access files outside the project directory. Please use relative paths within knowledge_base/ or output/ directories only."
	msgMaxTurnsReached  = "I have reached the maximum number of conversation turns. Let me provide you with the best answer I can based on the information available."
	msgFormatReminder   = "Please respond using the required format with <think>, <tool>, or <answer> tags."
)

// NoResponseText is returned when a run produced no content events.
const NoResponseText = "No response generated"

// Request describes one chat invocation.
type Request struct {
	Messages     []provider.Message
	Model        string
	Temperature  float64
	MaxTokens    int
	EnabledTools []string
}

// Loop runs the structured agent conversation against an LLM provider
// and a tool registry. One Loop value is shared across sessions; all
// per-session state lives inside Stream.
type Loop struct {
	provider provider.Provider
	registry *tools.Registry
	logger   *log.Logger
}

func NewLoop(p provider.Provider, registry *tools.Registry) *Loop {
	return &Loop{
		provider: p,
		registry: registry,
		logger:   log.New(log.Writer(), "[AGENT] ", log.LstdFlags),
	}
}

// Stream runs the session and emits typed events on the returned
// channel. The channel is closed after the terminal done event.
func (l *Loop) Stream(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)
		if len(req.EnabledTools) == 0 {
			l.runNormalChat(ctx, req, events)
		} else {
			l.runAgentMode(ctx, req, events)
		}
	}()
	return events
}

// Run is the non-streaming variant: it drains the event stream and
// returns the last content event's text.
func (l *Loop) Run(ctx context.Context, req Request) string {
	final := ""
	for ev := range l.Stream(ctx, req) {
		if ev.Type == EventContent && ev.Text != "" {
			final = ev.Text
		}
	}
	if final == "" {
		return NoResponseText
	}
	return final
}

// runNormalChat answers from model knowledge alone: one completion,
// one content event, done.
func (l *Loop) runNormalChat(ctx context.Context, req Request, events chan<- Event) {
	l.logger.Printf("normal chat mode - no tools")

	messages := make([]provider.Message, 0, len(req.Messages)+1)
	messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: NormalChatPrompt})
	messages = append(messages, req.Messages...)

	response, err := l.provider.Complete(ctx, messages, req.Model, req.Temperature, req.MaxTokens)
	if err != nil {
		l.logger.Printf("completion failed: %v", err)
		events <- errorEvent(err.Error())
		events <- doneEvent()
		return
	}
	events <- contentEvent(response)
	events <- doneEvent()
}

func (l *Loop) runAgentMode(ctx context.Context, req Request, events chan<- Event) {
	limits := LimitsFor(req.EnabledTools)
	l.logger.Printf("%s", ToolUsageSummary(req.EnabledTools))
	l.logger.Printf("using dynamic limits: %d tools, %d turns (%s)", limits.MaxTools, limits.MaxTurns, limits.Reason)

	enabled := make(map[string]bool, len(req.EnabledTools))
	for _, name := range req.EnabledTools {
		enabled[name] = true
	}

	messages := make([]provider.Message, 0, len(req.Messages)+1)
	messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: DynamicPrompt(req.EnabledTools)})
	messages = append(messages, req.Messages...)

	toolsUsed := 0
	seenSignatures := map[string]bool{}
	terminated := false

	for turn := 1; turn <= limits.MaxTurns && !terminated; turn++ {
		response, err := l.provider.Complete(ctx, messages, req.Model, req.Temperature, req.MaxTokens)
		if err != nil {
			l.logger.Printf("completion failed at turn %d: %v", turn, err)
			events <- errorEvent(err.Error())
			events <- doneEvent()
			return
		}
		l.logger.Printf("turn %d response: %s", turn, preview(response))

		parsed := ParseTurn(response)
		if parsed.Thinking != "" {
			events <- thinkingEvent(parsed.Thinking)
		}

		switch {
		case parsed.Tool != nil:
			call := parsed.Tool

			if !enabled[call.Name] {
				l.logger.Printf("model requested disabled tool: %s", call.Name)
				events <- contentEvent(fmt.Sprintf("I cannot use the %s tool as it is not currently enabled. Let me answer based on my knowledge instead.", call.Name))
				terminated = true
				continue
			}
			if toolsUsed >= limits.MaxTools {
				l.logger.Printf("tool limit reached (%d), forcing final answer", limits.MaxTools)
				events <- contentEvent(msgToolLimitReached)
				terminated = true
				continue
			}
			signature := call.Signature()
			if seenSignatures[signature] {
				l.logger.Printf("tool loop detected at turn %d", turn)
				events <- contentEvent(msgLoopDetected)
				terminated = true
				continue
			}
			seenSignatures[signature] = true
			toolsUsed++

			events <- toolCallsEvent(call)

			// Defense-in-depth: block obviously dangerous paths
			// before the tool's own validator ever sees them.
			if call.Name == "file_system" && pathPreCheckFails(call.Args) {
				l.logger.Printf("security violation blocked: %v", call.Args["file_path"])
				events <- contentEvent(msgSecurityBlocked)
				terminated = true
				continue
			}

			l.logger.Printf("executing tool %s with args %v", call.Name, call.Args)
			events <- toolStartEvent(call.Name, call.Args)

			result, execErr := l.dispatch(ctx, call.Name, call.Args)
			messages = append(messages, provider.Message{Role: provider.RoleAssistant, Content: response})
			if execErr != nil {
				errMsg := fmt.Sprintf("Error executing tool: %v", execErr)
				events <- toolErrorEvent(call.Name, errMsg)
				messages = append(messages, provider.Message{
					Role:    provider.RoleUser,
					Content: fmt.Sprintf("❌ Tool '%s' failed: %s\n\n🚫 CRITICAL: Provide your final answer using the <answer></answer> format with whatever information you have.", call.Name, errMsg),
				})
				continue
			}

			events <- toolResultEvent(call.Name, result)
			if toolsUsed >= limits.MaxTools {
				messages = append(messages, provider.Message{
					Role:    provider.RoleUser,
					Content: fmt.Sprintf("✅ Tool '%s' completed successfully. Result:\n%s\n\n🚫 CRITICAL: You have now used %d tools (maximum allowed). You MUST provide your final answer using the <answer></answer> format. Do NOT call any more tools. Analyze all the results and give a comprehensive response.", call.Name, result, toolsUsed),
				})
			} else {
				messages = append(messages, provider.Message{
					Role:    provider.RoleUser,
					Content: fmt.Sprintf("✅ Tool '%s' completed successfully. Result:\n%s\n\n📊 You have used %d of %d allowed tools. You can either use another enabled tool if needed or provide your final answer using <answer></answer> format.", call.Name, result, toolsUsed, limits.MaxTools),
				})
			}

		case parsed.Answer != "":
			events <- contentEvent(parsed.Answer)
			terminated = true

		default:
			events <- errorEvent(msgFormatReminder)
			messages = append(messages, provider.Message{Role: provider.RoleAssistant, Content: response})
			messages = append(messages, provider.Message{Role: provider.RoleUser, Content: msgFormatReminder})
		}
	}

	if !terminated {
		l.logger.Printf("maximum turns (%d) reached without final answer", limits.MaxTurns)
		events <- contentEvent(msgMaxTurnsReached)
	}
	events <- doneEvent()
}

// dispatch executes a tool, converting a panic into an error so one
// broken tool cannot take the session down.
func (l *Loop) dispatch(ctx context.Context, name string, args map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Printf("tool %s panicked: %v", name, r)
			err = fmt.Errorf("%v", r)
		}
	}()
	return l.registry.Execute(ctx, name, args)
}

// pathPreCheckFails flags path arguments that are never legitimate:
// traversal tokens, a leading slash or a drive/scheme marker.
func pathPreCheckFails(args map[string]any) bool {
	filePath, _ := args["file_path"].(string)
	if filePath == "" {
		return false
	}
	return strings.Contains(filePath, "../") ||
		strings.Contains(filePath, `..\`) ||
		strings.HasPrefix(filePath, "/") ||
		strings.Contains(filePath, ":")
}

func preview(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

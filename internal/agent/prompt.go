package agent

import (
	"fmt"
	"strings"
)

// NormalChatPrompt is the system prompt used when no tools are enabled.
const NormalChatPrompt = `You are a helpful assistant. You can answer questions and help with tasks. You do not have access to any tools - provide answers based on your knowledge.`

var toolDescriptions = map[string]string{
	"web_search":          "- web_search(query: str, count: int = 2, freshness: str = None, fetch_content: bool = True) -> str:\n  Searches the web and returns titles, URLs, descriptions AND automatically fetches full content from top results.",
	"case_studies_search": "- case_studies_search(company: str, industry: str = None, topic: str = None, count: int = 2, fetch_content: bool = True) -> str:\n  Searches for case studies from specific company domains AND fetches full content from top results.",
	"file_system":         "- file_system(operation: str, file_path: str = None, directory: str = None, content: str = None, edit_mode: str = None) -> str:\n  🗂️ SECURE file operations within project boundaries. Operations: 'list' (show files), 'read' (get content), 'create' (new file), 'edit' (modify file). ⚠️ ONLY works with knowledge_base/ and output/ directories. Security restrictions prevent access to system files.",
}

const structuredPromptBase = `You are a helpful assistant that can answer questions and help with tasks, such as drafting short research reports. Cite your sources when relevant.

You have access to the following tools:

%s

⚠️ CRITICAL TOOL USAGE RULES:
1. You may call a MAXIMUM of %d tools total across all turns
2. Each tool provides comprehensive information including FULL ARTICLE CONTENT
3. You MUST provide a final answer after getting results from your tool calls
4. Do NOT make multiple searches on the same topic - one good search provides sufficient information
5. Do NOT drill down into individual sources unless absolutely necessary
6. Use the exact format specified below

💡 STRATEGY GUIDELINES:
- One well-crafted search usually provides all the information needed
- The tools already fetch full content from multiple sources automatically
- Focus on providing a comprehensive answer rather than perfect completeness
- If the first search gives good results, proceed directly to your answer

In each turn, respond in the following format:

<think>
[Your thoughts about what tool to use and why, or your analysis of the results]
</think>
<tool>
{
  "name": "[tool_name]",
  "args": {
    "[arg_name]": "[arg_value]"
  }
}
</tool>

When you are ready to give your final answer (required after getting tool results), use this format:

<answer>
[Your final answer here, with citations as needed]
</answer>

⚠️ CRITICAL: After each tool execution, you will see comprehensive information including full article content. This is usually sufficient to provide a complete answer. Do NOT keep searching unless you absolutely need different types of information (e.g., switching from news to case studies).

%s
`

const fileSystemGuidance = `
🗂️ FILE SYSTEM TOOL GUIDELINES (when file_system tool is enabled):

🚨 SECURITY RESTRICTIONS - NEVER ATTEMPT:
- Path traversal: ../../../etc/passwd, ..\Windows\System32
- Absolute paths: /etc/passwd, C:\Windows\System32
- System files: .env, .git, node_modules, config files
- If user requests forbidden paths, REFUSE and explain security restrictions

DIRECTORY STRUCTURE:
- knowledge_base/ = INPUT data (read from here)
- output/ = GENERATED content (write to here)
- Use relative paths only: "knowledge_base/data.csv" not "C:\..."

WORKFLOW PATTERN:
1. List files in knowledge_base to understand available data
2. Read relevant files to analyze content
3. Process/analyze the information
4. Create reports/results in output directory

PATH RULES:
- ✅ GOOD: "knowledge_base/sales.csv", "output/report.md"
- ❌ BAD: "../../../etc/passwd", "C:\Windows\System32"
- ❌ BAD: ".env", ".git", "node_modules"

OPERATION TYPES:
- list: Show files in a directory (use directory parameter)
- read: Get file content (use file_path parameter)
- create: Make new file with content (use file_path + content parameters)
- edit: Modify existing file (use file_path + content + edit_mode parameters)
  - edit_mode: "append" (add to end), "prepend" (add to start), "replace" (overwrite)

SIZE LIMITS:
- Files over 10MB cannot be read
- Content over 100KB will be truncated in display
- Create multiple smaller files instead of one large file
`

// DynamicPrompt builds the system prompt for the enabled tool set.
// With no enabled (or no known) tools it falls back to the plain chat
// prompt.
func DynamicPrompt(enabledTools []string) string {
	if len(enabledTools) == 0 {
		return NormalChatPrompt
	}

	var descriptions []string
	for _, name := range enabledTools {
		if desc, ok := toolDescriptions[name]; ok {
			descriptions = append(descriptions, desc)
		}
	}
	if len(descriptions) == 0 {
		return NormalChatPrompt
	}

	limits := LimitsFor(enabledTools)

	fileGuidance := ""
	hasFS := false
	for _, name := range enabledTools {
		if name == "file_system" {
			hasFS = true
			fileGuidance = fileSystemGuidance
		}
	}

	prompt := fmt.Sprintf(structuredPromptBase, strings.Join(descriptions, "\n"), limits.MaxTools, fileGuidance)
	return prompt + toolGuidance(enabledTools, hasFS)
}

// toolGuidance appends a short steering note keyed to how many tools
// are enabled.
func toolGuidance(enabledTools []string, hasFS bool) string {
	names := make([]string, len(enabledTools))
	for i, t := range enabledTools {
		names[i] = titleToolName(t)
	}

	if len(enabledTools) == 1 {
		if enabledTools[0] == "file_system" {
			return fmt.Sprintf("\n\n🎯 You have access to only the %s tool. Use it to work with files in knowledge_base/ and output/ directories. Follow the workflow pattern: list → read → process → create.", names[0])
		}
		return fmt.Sprintf("\n\n🎯 You have access to only the %s tool. Use it strategically to gather the information needed to answer the user's question. The tool provides comprehensive information including full content, so one well-crafted search is usually sufficient.", names[0])
	}

	if hasFS {
		return fmt.Sprintf("\n\n🎯 You have access to %s tools. For file operations, follow the workflow: list → read → process → create. For research, each search tool provides comprehensive information.", strings.Join(names, ", "))
	}
	if len(enabledTools) == 2 {
		return fmt.Sprintf("\n\n🎯 You have access to %s and %s tools. Choose the most appropriate tool(s) for the user's question. Each tool provides comprehensive information, so avoid redundant searches.", names[0], names[1])
	}
	return fmt.Sprintf("\n\n🎯 You have access to %s, and %s tools. Choose the most appropriate tool(s) for the user's question. Each tool provides comprehensive information, so focus on efficiency.",
		strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
}

// ToolUsageSummary describes the session mode for logging.
func ToolUsageSummary(enabledTools []string) string {
	if len(enabledTools) == 0 {
		return "Normal chat mode (no tools)"
	}
	names := make([]string, len(enabledTools))
	for i, t := range enabledTools {
		names[i] = titleToolName(t)
	}
	switch len(names) {
	case 1:
		return fmt.Sprintf("Agent mode with %s tool", names[0])
	case 2:
		return fmt.Sprintf("Agent mode with %s and %s tools", names[0], names[1])
	default:
		return fmt.Sprintf("Agent mode with %s, and %s tools",
			strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
	}
}

// titleToolName turns "web_search" into "Web Search".
func titleToolName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

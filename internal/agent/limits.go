package agent

// SessionLimits bounds one agent-loop session. Derived once from the
// enabled tool set and immutable afterwards.
type SessionLimits struct {
	MaxTools int
	MaxTurns int
	Reason   string
}

// LimitsFor derives session limits from the enabled tool names. File
// workflows need list, read, process and create steps; search
// workflows rarely need more than a couple of searches since results
// already include fetched content.
func LimitsFor(enabledTools []string) SessionLimits {
	has := func(name string) bool {
		for _, t := range enabledTools {
			if t == name {
				return true
			}
		}
		return false
	}

	if has("file_system") {
		return SessionLimits{
			MaxTools: 4,
			MaxTurns: 6,
			Reason:   "File workflows require multiple operations",
		}
	}
	if has("web_search") || has("case_studies_search") {
		return SessionLimits{
			MaxTools: 3,
			MaxTurns: 5,
			Reason:   "Research workflows with content fetching",
		}
	}
	return SessionLimits{
		MaxTools: 2,
		MaxTurns: 5,
		Reason:   "Standard tool usage",
	}
}

package session

import "strings"

// agentKeywords mark a session as AI-related when found in a pane command or
// the session name.
var agentKeywords = []string{
	"claude",
	"ai",
	"agent",
	"llm",
	"gpt",
	"anthropic",
	"openai",
	"copilot",
	"cursor",
	"codex",
	"cladcode",
}

// namedAgents maps a specific agent name to the keywords that identify it.
var namedAgents = map[string][]string{
	"codex":    {"codex"},
	"cladcode": {"cladcode"},
}

func containsAgentKeyword(value string) bool {
	lowered := strings.ToLower(value)
	for _, keyword := range agentKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// matchNamedAgent returns the specific agent identified by value, or "".
func matchNamedAgent(value string) string {
	lowered := strings.ToLower(value)
	for agent, keywords := range namedAgents {
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				return agent
			}
		}
	}
	return ""
}

// detectAgent classifies a session from its pane commands and name.
// Pane commands are checked first since they reflect what is actually
// running; the session name alone is a weaker signal.
func detectAgent(sessionName string, paneCommands []string) (bool, string) {
	for _, command := range paneCommands {
		if agent := matchNamedAgent(command); agent != "" {
			return true, agent
		}
		if containsAgentKeyword(command) {
			return true, ""
		}
	}

	if agent := matchNamedAgent(sessionName); agent != "" {
		return true, agent
	}
	if containsAgentKeyword(sessionName) {
		return true, ""
	}
	return false, ""
}

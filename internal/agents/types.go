// Package agents implements the orchestration core: specialized agents
// wrapping simulated travel tools, the name-based dispatch registry, and the
// sequential workflow executor with accumulating context.
package agents

// Result status values used across dispatch and tool results.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Input is the normalized input handed to an agent.
type Input struct {
	Query   string         `json:"query"`
	Context map[string]any `json:"context,omitempty"`
}

// Output is an agent's response. Produced fresh per call, never persisted.
type Output struct {
	Output   string         `json:"output"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RawInput is the caller-facing input shape accepted by the registry.
type RawInput struct {
	Query      string         `json:"query"`
	Context    map[string]any `json:"context,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Result is the normalized outcome of a dispatch through the registry.
type Result struct {
	Status   string         `json:"status"`
	Output   string         `json:"output,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Message  string         `json:"message,omitempty"`
	Agent    string         `json:"agent,omitempty"`
}

// AgentInfo describes one registered agent for the catalog endpoint.
type AgentInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

// Package planner defines the reasoning boundary between agents and the
// underlying LLM providers. An agent hands the planner its query, working
// context and tool belt; the planner decides which tools to invoke and
// composes the final answer.
package planner

import "context"

// Tool describes a single capability exposed to the planner.
// Invoke takes a JSON payload and returns a JSON result. Tools never
// return Go errors; failures are reported inside the JSON result.
type Tool struct {
	Name        string
	Description string
	Invoke      func(ctx context.Context, payload string) string
}

// Exchange is one prior query/answer pair from the agent's memory.
type Exchange struct {
	Query  string
	Answer string
}

// Request carries everything the planner needs for one reasoning run.
type Request struct {
	SystemPrompt string
	Query        string
	Context      map[string]any
	Tools        []Tool
	History      []Exchange
}

// ToolCall records a single tool invocation made during planning.
type ToolCall struct {
	Name    string
	Payload string
	Output  string
}

// Result is the outcome of a planning run.
type Result struct {
	Answer    string
	ToolCalls []ToolCall
}

// Config holds per-agent planner tuning.
type Config struct {
	// Temperature controls sampling randomness for LLM-backed planners.
	Temperature float64

	// MaxToolRounds bounds the number of tool invocation rounds before the
	// planner returns its best answer so far.
	MaxToolRounds int
}

// DefaultMaxToolRounds is used when Config.MaxToolRounds is not positive.
const DefaultMaxToolRounds = 5

// Planner plans and executes a reasoning run over the given request.
type Planner interface {
	Plan(ctx context.Context, req Request) (*Result, error)
}

// Rounds returns the effective tool round budget for the config.
func (c Config) Rounds() int {
	if c.MaxToolRounds < 1 {
		return DefaultMaxToolRounds
	}
	return c.MaxToolRounds
}

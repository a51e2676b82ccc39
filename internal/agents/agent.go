package agents

import (
	"context"
	"fmt"
	"sync"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// PlannerFactory builds the reasoning capability for an agent on first use.
// The provider (anthropic, openai or direct) is selected at startup; the
// per-agent tuning comes from the agent's own planner config.
type PlannerFactory func(cfg planner.Config) (planner.Planner, error)

// Agent bundles a fixed tool set, per-agent in-memory state owned by those
// tools, conversational memory, and a lazily built planner. Process never
// returns an error: all failures surface in the output and metadata.
type Agent struct {
	name         string
	description  string
	systemPrompt string
	tools        []planner.Tool
	cfg          planner.Config

	buildPlanner PlannerFactory
	planner      planner.Planner
	memory       []planner.Exchange
	mu           sync.Mutex

	logger logger.Logger
}

// NewAgent creates an agent over the given tool set. The planner is not
// built until the first Process call.
func NewAgent(name, description string, tools []planner.Tool, cfg planner.Config, factory PlannerFactory, log logger.Logger) *Agent {
	return &Agent{
		name:         name,
		description:  description,
		systemPrompt: fmt.Sprintf("You are the %s agent. %s Use the available tools to answer; report tool errors verbatim.", name, description),
		tools:        tools,
		cfg:          cfg,
		buildPlanner: factory,
		logger:       log,
	}
}

// Name returns the agent's registry name.
func (a *Agent) Name() string {
	return a.name
}

// Description returns the agent's human-readable description.
func (a *Agent) Description() string {
	return a.description
}

// ToolNames returns the names of the agent's tools in registration order.
func (a *Agent) ToolNames() []string {
	names := make([]string, 0, len(a.tools))
	for _, tool := range a.tools {
		names = append(names, tool.Name)
	}
	return names
}

// Process resolves a query into tool invocations via the planner and returns
// the composed answer. Failures are converted to an error Output, never
// returned as a Go error. Calls into the same agent are serialized; the
// agent's tables and memory are not safe under concurrent mutation.
func (a *Agent) Process(ctx context.Context, input Input) Output {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.planner == nil {
		p, err := a.buildPlanner(a.cfg)
		if err != nil {
			a.logError("planner construction failed", err)
			return a.failure(err)
		}
		a.planner = p
	}

	result, err := a.planner.Plan(ctx, planner.Request{
		SystemPrompt: a.systemPrompt,
		Query:        input.Query,
		Context:      input.Context,
		Tools:        a.tools,
		History:      a.memory,
	})
	if err != nil {
		a.logError("planning failed", err)
		return a.failure(err)
	}

	a.memory = append(a.memory, planner.Exchange{Query: input.Query, Answer: result.Answer})

	if a.logger != nil {
		a.logger.Debug("Agent processed query",
			logger.AgentField(a.name),
			logger.IntField("tool_calls", len(result.ToolCalls)),
		)
	}

	return Output{
		Output:   result.Answer,
		Metadata: map[string]any{"agent": a.name},
	}
}

func (a *Agent) failure(err error) Output {
	return Output{
		Output:   fmt.Sprintf("An error occurred: %v", err),
		Metadata: map[string]any{"agent": a.name, "error": true},
	}
}

func (a *Agent) logError(msg string, err error) {
	if a.logger != nil {
		a.logger.Error(msg, logger.AgentField(a.name), logger.ErrorField(err))
	}
}

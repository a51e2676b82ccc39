package agents

import (
	"context"
	"fmt"

	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// Registry maps agent names to agent instances. It is built once at startup
// and shared by reference for all calls; it is the single boundary through
// which all agent invocations occur.
type Registry struct {
	agents map[string]*Agent
	order  []string
	logger logger.Logger
}

// NewRegistry creates a registry over the given agents, keyed by name.
func NewRegistry(log logger.Logger, agentList ...*Agent) *Registry {
	registry := &Registry{
		agents: make(map[string]*Agent, len(agentList)),
		logger: log,
	}
	for _, agent := range agentList {
		registry.agents[agent.Name()] = agent
		registry.order = append(registry.order, agent.Name())
	}
	return registry
}

// Has reports whether an agent is registered under the given name.
func (r *Registry) Has(name string) bool {
	_, ok := r.agents[name]
	return ok
}

// Names returns the registered agent names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Catalog returns the static agent catalog for the list endpoint.
func (r *Registry) Catalog() []AgentInfo {
	catalog := make([]AgentInfo, 0, len(r.order))
	for _, name := range r.order {
		agent := r.agents[name]
		catalog = append(catalog, AgentInfo{
			Name:        agent.Name(),
			Description: agent.Description(),
			Tools:       agent.ToolNames(),
		})
	}
	return catalog
}

// Process dispatches an input to the named agent and normalizes the outcome.
// Unknown names and recovered panics both become error results; nothing
// escapes as a raised error.
func (r *Registry) Process(ctx context.Context, name string, input RawInput) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.logger != nil {
				r.logger.Error("Agent panicked during dispatch",
					logger.AgentField(name),
					logger.StringField("panic", fmt.Sprintf("%v", rec)),
				)
			}
			result = Result{
				Status:  StatusError,
				Message: fmt.Sprintf("%v", rec),
				Agent:   name,
			}
		}
	}()

	agent, ok := r.agents[name]
	if !ok {
		return Result{
			Status:  StatusError,
			Message: fmt.Sprintf("Agent '%s' not found", name),
		}
	}

	agentContext := input.Context
	if agentContext == nil {
		agentContext = map[string]any{}
	}

	output := agent.Process(ctx, Input{
		Query:   input.Query,
		Context: agentContext,
	})

	return Result{
		Status:   StatusSuccess,
		Output:   output.Output,
		Metadata: output.Metadata,
	}
}

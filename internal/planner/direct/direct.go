// Package direct implements a deterministic planner that dispatches to a
// single tool selected by name from the query text. It needs no credentials
// and makes no network calls, which makes it the default for local
// development and the workhorse for tests.
package direct

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// Planner selects the first tool whose name appears in the query and invokes
// it with the request context marshaled as the JSON payload. When no tool
// name matches, the first tool in the belt is used.
type Planner struct {
	logger logger.Logger
}

// New creates a direct planner.
func New(log logger.Logger) *Planner {
	return &Planner{logger: log}
}

// Plan implements planner.Planner.
func (p *Planner) Plan(ctx context.Context, req planner.Request) (*planner.Result, error) {
	if len(req.Tools) == 0 {
		return &planner.Result{Answer: fmt.Sprintf("No tools available to handle: %s", req.Query)}, nil
	}

	tool := selectTool(req.Query, req.Tools)

	payload := "{}"
	if len(req.Context) > 0 {
		data, err := json.Marshal(req.Context)
		if err != nil {
			return nil, fmt.Errorf("failed to encode context payload: %w", err)
		}
		payload = string(data)
	}

	if p.logger != nil {
		p.logger.Debug("Dispatching directly to tool",
			logger.ToolField(tool.Name),
			logger.StringField("query", req.Query),
		)
	}

	output := tool.Invoke(ctx, payload)

	return &planner.Result{
		Answer: output,
		ToolCalls: []planner.ToolCall{
			{Name: tool.Name, Payload: payload, Output: output},
		},
	}, nil
}

// selectTool picks the tool whose name is mentioned in the query,
// preferring the longest match so "search_flights" beats "search".
func selectTool(query string, tools []planner.Tool) planner.Tool {
	normalized := strings.ToLower(query)

	best := -1
	for i, tool := range tools {
		if strings.Contains(normalized, strings.ToLower(tool.Name)) {
			if best == -1 || len(tool.Name) > len(tools[best].Name) {
				best = i
			}
		}
	}
	if best >= 0 {
		return tools[best]
	}
	return tools[0]
}

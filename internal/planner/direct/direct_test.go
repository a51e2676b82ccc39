package direct

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingTool(name string, captured *string) planner.Tool {
	return planner.Tool{
		Name:        name,
		Description: name,
		Invoke: func(ctx context.Context, payload string) string {
			*captured = payload
			return `{"status":"success","tool":"` + name + `"}`
		},
	}
}

func TestPlanSelectsToolByName(t *testing.T) {
	var flightsPayload, trainsPayload string
	tools := []planner.Tool{
		recordingTool("search_flights", &flightsPayload),
		recordingTool("search_trains", &trainsPayload),
	}

	p := New(nil)
	result, err := p.Plan(context.Background(), planner.Request{
		Query: "use search_trains to find a route",
		Tools: tools,
	})

	require.NoError(t, err)
	assert.Contains(t, result.Answer, "search_trains")
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "search_trains", result.ToolCalls[0].Name)
	assert.Empty(t, flightsPayload)
}

func TestPlanPrefersLongestMatch(t *testing.T) {
	var shortPayload, longPayload string
	tools := []planner.Tool{
		recordingTool("search", &shortPayload),
		recordingTool("search_flights", &longPayload),
	}

	p := New(nil)
	result, err := p.Plan(context.Background(), planner.Request{
		Query: "search_flights from London to Paris",
		Tools: tools,
	})

	require.NoError(t, err)
	assert.Equal(t, "search_flights", result.ToolCalls[0].Name)
}

func TestPlanDefaultsToFirstTool(t *testing.T) {
	var payload string
	tools := []planner.Tool{recordingTool("process_payment", &payload)}

	p := New(nil)
	result, err := p.Plan(context.Background(), planner.Request{
		Query: "charge the customer",
		Tools: tools,
	})

	require.NoError(t, err)
	assert.Equal(t, "process_payment", result.ToolCalls[0].Name)
}

func TestPlanMarshalsContextAsPayload(t *testing.T) {
	var payload string
	tools := []planner.Tool{recordingTool("search_flights", &payload)}

	p := New(nil)
	_, err := p.Plan(context.Background(), planner.Request{
		Query:   "search_flights",
		Context: map[string]any{"origin": "LHR", "destination": "CDG"},
		Tools:   tools,
	})

	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "LHR", decoded["origin"])
	assert.Equal(t, "CDG", decoded["destination"])
}

func TestPlanEmptyContextSendsEmptyObject(t *testing.T) {
	var payload string
	tools := []planner.Tool{recordingTool("search_flights", &payload)}

	p := New(nil)
	_, err := p.Plan(context.Background(), planner.Request{Query: "anything", Tools: tools})
	require.NoError(t, err)
	assert.Equal(t, "{}", payload)
}

func TestPlanNoTools(t *testing.T) {
	p := New(nil)
	result, err := p.Plan(context.Background(), planner.Request{Query: "hello"})
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "No tools available")
	assert.Empty(t, result.ToolCalls)
}

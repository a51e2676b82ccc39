package agents

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
)

type stubPlanner struct {
	plan func(ctx context.Context, req planner.Request) (*planner.Result, error)
}

func (s *stubPlanner) Plan(ctx context.Context, req planner.Request) (*planner.Result, error) {
	return s.plan(ctx, req)
}

func echoFactory(builds *int) PlannerFactory {
	return func(cfg planner.Config) (planner.Planner, error) {
		*builds++
		return &stubPlanner{
			plan: func(_ context.Context, req planner.Request) (*planner.Result, error) {
				return &planner.Result{
					Answer: fmt.Sprintf("answer to %q after %d exchanges", req.Query, len(req.History)),
				}, nil
			},
		}, nil
	}
}

func TestAgentProcess(t *testing.T) {
	builds := 0
	agent := NewAgent("echo", "Echoes queries.", nil, planner.Config{}, echoFactory(&builds), nil)

	output := agent.Process(context.Background(), Input{Query: "hello"})

	assert.Equal(t, `answer to "hello" after 0 exchanges`, output.Output)
	assert.Equal(t, map[string]any{"agent": "echo"}, output.Metadata)
}

func TestAgentBuildsPlannerOnce(t *testing.T) {
	builds := 0
	agent := NewAgent("echo", "Echoes queries.", nil, planner.Config{}, echoFactory(&builds), nil)

	agent.Process(context.Background(), Input{Query: "one"})
	agent.Process(context.Background(), Input{Query: "two"})

	assert.Equal(t, 1, builds)
}

func TestAgentMemoryAccumulates(t *testing.T) {
	builds := 0
	agent := NewAgent("echo", "Echoes queries.", nil, planner.Config{}, echoFactory(&builds), nil)

	first := agent.Process(context.Background(), Input{Query: "one"})
	second := agent.Process(context.Background(), Input{Query: "two"})
	third := agent.Process(context.Background(), Input{Query: "three"})

	assert.Contains(t, first.Output, "after 0 exchanges")
	assert.Contains(t, second.Output, "after 1 exchanges")
	assert.Contains(t, third.Output, "after 2 exchanges")
}

func TestAgentFactoryError(t *testing.T) {
	factory := func(cfg planner.Config) (planner.Planner, error) {
		return nil, errors.New("no api key")
	}
	agent := NewAgent("broken", "Never works.", nil, planner.Config{}, factory, nil)

	output := agent.Process(context.Background(), Input{Query: "anything"})

	assert.Equal(t, "An error occurred: no api key", output.Output)
	assert.Equal(t, map[string]any{"agent": "broken", "error": true}, output.Metadata)
}

func TestAgentPlanError(t *testing.T) {
	factory := func(cfg planner.Config) (planner.Planner, error) {
		return &stubPlanner{
			plan: func(_ context.Context, _ planner.Request) (*planner.Result, error) {
				return nil, errors.New("upstream timeout")
			},
		}, nil
	}
	agent := NewAgent("flaky", "Sometimes works.", nil, planner.Config{}, factory, nil)

	output := agent.Process(context.Background(), Input{Query: "anything"})

	assert.Equal(t, "An error occurred: upstream timeout", output.Output)
	assert.Equal(t, true, output.Metadata["error"])
}

func TestAgentPlanErrorNotRemembered(t *testing.T) {
	fail := true
	factory := func(cfg planner.Config) (planner.Planner, error) {
		return &stubPlanner{
			plan: func(_ context.Context, req planner.Request) (*planner.Result, error) {
				if fail {
					return nil, errors.New("transient")
				}
				return &planner.Result{Answer: fmt.Sprintf("%d exchanges", len(req.History))}, nil
			},
		}, nil
	}
	agent := NewAgent("flaky", "Sometimes works.", nil, planner.Config{}, factory, nil)

	agent.Process(context.Background(), Input{Query: "fails"})
	fail = false
	output := agent.Process(context.Background(), Input{Query: "works"})

	assert.Equal(t, "0 exchanges", output.Output, "failed calls do not enter memory")
}

func TestAgentPassesToolsAndContext(t *testing.T) {
	var captured planner.Request
	factory := func(cfg planner.Config) (planner.Planner, error) {
		return &stubPlanner{
			plan: func(_ context.Context, req planner.Request) (*planner.Result, error) {
				captured = req
				return &planner.Result{Answer: "ok"}, nil
			},
		}, nil
	}
	tools := []planner.Tool{{Name: "noop", Invoke: func(context.Context, string) string { return "{}" }}}
	agent := NewAgent("search", "Searches things.", tools, planner.Config{}, factory, nil)

	agent.Process(context.Background(), Input{
		Query:   "find flights",
		Context: map[string]any{"origin": "LHR"},
	})

	require.Len(t, captured.Tools, 1)
	assert.Equal(t, "noop", captured.Tools[0].Name)
	assert.Equal(t, map[string]any{"origin": "LHR"}, captured.Context)
	assert.Contains(t, captured.SystemPrompt, "You are the search agent.")
	assert.Contains(t, captured.SystemPrompt, "Searches things.")
}

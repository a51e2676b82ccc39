package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/utils"
)

// Step is one entry in a workflow: the agent to call and its input.
type Step struct {
	Agent       string   `json:"agent"`
	Input       RawInput `json:"input"`
	Description string   `json:"description,omitempty"`
}

// StepResult pairs a step key ("step_<i>") with its dispatch result.
type StepResult struct {
	Key    string
	Result Result
}

// WorkflowResult holds the per-step results in execution order plus the
// overall outcome. Steps after a fail-fast stop were never attempted and
// do not appear.
type WorkflowResult struct {
	Steps      []StepResult
	Status     string
	FailedStep *int
}

// MarshalJSON emits the step results as object keys in execution order,
// followed by the overall status and, on failure, the failed step index.
func (w WorkflowResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for _, step := range w.Steps {
		key, err := json.Marshal(step.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(step.Result)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
		buf.WriteByte(',')
	}

	status, err := json.Marshal(w.Status)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"status":`)
	buf.Write(status)

	if w.FailedStep != nil {
		buf.WriteString(fmt.Sprintf(`,"failed_step":%d`, *w.FailedStep))
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WorkflowExecutor runs ordered steps through the registry, threading an
// accumulating context keyed by agent name across them.
type WorkflowExecutor struct {
	registry *Registry
	logger   logger.Logger
}

// NewWorkflowExecutor creates an executor over the given registry.
func NewWorkflowExecutor(registry *Registry, log logger.Logger) *WorkflowExecutor {
	return &WorkflowExecutor{registry: registry, logger: log}
}

// Run executes the steps in order. Seed entries prime the inherited context
// before the first step. Rules:
//   - A step without an agent name records an error under its key and the
//     workflow continues; it contributes nothing to the context.
//   - Inherited context is merged into each step's input context, with the
//     step's explicit keys winning on collision.
//   - A step whose dispatch result is an error stops the workflow (fail-fast)
//     and records the failing index; later steps are never attempted.
//   - A successful step's result is stored in the context under its agent
//     name for consumption by later steps.
func (e *WorkflowExecutor) Run(ctx context.Context, steps []Step, seed map[string]any) WorkflowResult {
	inherited := make(map[string]any, len(seed))
	for k, v := range seed {
		inherited[k] = v
	}

	result := WorkflowResult{Status: StatusSuccess}

	for i, step := range steps {
		key := fmt.Sprintf("step_%d", i)

		if step.Agent == "" {
			if e.logger != nil {
				e.logger.Warn("Workflow step has no agent, skipping",
					logger.IntField("step", i),
				)
			}
			result.Steps = append(result.Steps, StepResult{
				Key:    key,
				Result: Result{Status: StatusError, Message: "No agent specified"},
			})
			continue
		}

		input := step.Input
		merged := make(map[string]any, len(inherited)+len(input.Context))
		for k, v := range inherited {
			merged[k] = v
		}
		for k, v := range input.Context {
			merged[k] = v
		}
		input.Context = merged

		stepResult := e.registry.Process(ctx, step.Agent, input)
		result.Steps = append(result.Steps, StepResult{Key: key, Result: stepResult})

		if stepResult.Status == StatusError {
			result.Status = StatusError
			result.FailedStep = utils.ToPtr(i)

			if e.logger != nil {
				e.logger.Warn("Workflow stopped on failed step",
					logger.IntField("step", i),
					logger.AgentField(step.Agent),
					logger.StringField("message", stepResult.Message),
				)
			}
			break
		}

		inherited[step.Agent] = stepResult
	}

	return result
}

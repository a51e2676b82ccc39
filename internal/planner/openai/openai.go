// Package openai implements the planner interface on top of the OpenAI
// chat completions API using function calling.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultMaxTokens     = 4096
	finishReasonToolCall = "tool_calls"
)

// Planner drives an OpenAI function calling loop bounded by the configured
// round budget.
type Planner struct {
	client    *openai.Client
	modelName string
	cfg       planner.Config
	logger    logger.Logger
}

// New creates an OpenAI-backed planner.
func New(apiKey, modelName string, cfg planner.Config, log logger.Logger, opts ...option.RequestOption) (*Planner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name is required")
	}

	client := openai.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	return &Planner{
		client:    &client,
		modelName: modelName,
		cfg:       cfg,
		logger:    log,
	}, nil
}

// Plan implements planner.Planner.
func (p *Planner) Plan(ctx context.Context, req planner.Request) (*planner.Result, error) {
	messages := buildMessages(req)
	tools := transformTools(req.Tools)
	toolsByName := make(map[string]planner.Tool, len(req.Tools))
	for _, tool := range req.Tools {
		toolsByName[tool.Name] = tool
	}

	var calls []planner.ToolCall
	var lastAnswer string

	rounds := p.cfg.Rounds()
	for round := 0; round <= rounds; round++ {
		params := openai.ChatCompletionNewParams{
			Model:       p.modelName,
			MaxTokens:   openai.Int(defaultMaxTokens),
			Messages:    messages,
			Temperature: openai.Float(p.cfg.Temperature),
		}
		if len(tools) > 0 {
			params.Tools = tools
		}

		completion, err := p.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("openai API error: %w", err)
		}
		if len(completion.Choices) == 0 {
			return nil, fmt.Errorf("openai API returned no choices")
		}

		choice := completion.Choices[0]
		if choice.Message.Content != "" {
			lastAnswer = choice.Message.Content
		}

		if choice.FinishReason != finishReasonToolCall || len(choice.Message.ToolCalls) == 0 {
			return &planner.Result{Answer: lastAnswer, ToolCalls: calls}, nil
		}

		if round == rounds {
			if p.logger != nil {
				p.logger.Warn("Tool round budget exhausted",
					logger.IntField("rounds", rounds),
					logger.IntField("tool_calls", len(calls)),
				)
			}
			break
		}

		// Echo the assistant turn, then answer each tool call with its result
		messages = append(messages, choice.Message.ToParam())

		for _, toolCall := range choice.Message.ToolCalls {
			payload := toolCall.Function.Arguments
			if payload == "" {
				payload = "{}"
			}

			output := p.runTool(ctx, toolsByName, toolCall.Function.Name, payload)
			calls = append(calls, planner.ToolCall{Name: toolCall.Function.Name, Payload: payload, Output: output})

			messages = append(messages, openai.ToolMessage(output, toolCall.ID))
		}
	}

	return &planner.Result{Answer: lastAnswer, ToolCalls: calls}, nil
}

func (p *Planner) runTool(ctx context.Context, tools map[string]planner.Tool, name, payload string) string {
	tool, ok := tools[name]
	if !ok {
		return fmt.Sprintf(`{"status":"error","message":"Unknown tool: %s"}`, name)
	}

	if p.logger != nil {
		p.logger.Debug("Invoking tool", logger.ToolField(name))
	}

	return tool.Invoke(ctx, payload)
}

// buildMessages converts history and the current query into chat messages.
func buildMessages(req planner.Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)*2+2)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}

	for _, exchange := range req.History {
		messages = append(messages, openai.UserMessage(exchange.Query))
		messages = append(messages, openai.AssistantMessage(exchange.Answer))
	}

	userPrompt := req.Query
	if len(req.Context) > 0 {
		if ctxJSON, err := json.Marshal(req.Context); err == nil {
			userPrompt = fmt.Sprintf("%s\n\nContext:\n%s", req.Query, ctxJSON)
		}
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	return messages
}

// transformTools converts planner tools to OpenAI function definitions.
// Tool arguments are a free-form JSON object; the tool itself validates
// the payload and reports problems in its JSON result.
func transformTools(tools []planner.Tool) []openai.ChatCompletionToolParam {
	var openaiTools []openai.ChatCompletionToolParam

	for _, tool := range tools {
		openaiTools = append(openaiTools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters: openai.FunctionParameters{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
		})
	}

	return openaiTools
}

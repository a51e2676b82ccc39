// Package anthropic implements the planner interface on top of the
// Anthropic Messages API using Claude's native tool use.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

const defaultMaxTokens = 4000

// Planner drives a Claude tool use loop: the model requests tool
// invocations, we execute them and feed the results back, bounded by the
// configured round budget.
type Planner struct {
	client    anthropic.Client
	modelName string
	cfg       planner.Config
	logger    logger.Logger
}

// New creates a Claude-backed planner.
func New(apiKey, modelName string, cfg planner.Config, log logger.Logger, opts ...option.RequestOption) (*Planner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if modelName == "" {
		modelName = string(anthropic.ModelClaudeSonnet4_5_20250929)
	}

	client := anthropic.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	return &Planner{
		client:    client,
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
		params := anthropic.MessageNewParams{
			Model:       anthropic.Model(p.modelName),
			MaxTokens:   defaultMaxTokens,
			Messages:    messages,
			Temperature: anthropic.Float(p.cfg.Temperature),
		}
		if req.SystemPrompt != "" {
			params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
		}
		if len(tools) > 0 {
			params.Tools = tools
		}

		resp, err := p.client.Messages.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("claude api error: %w", err)
		}

		text, toolUses := splitResponse(resp)
		if text != "" {
			lastAnswer = text
		}

		if resp.StopReason != anthropic.StopReasonToolUse || len(toolUses) == 0 {
			return &planner.Result{Answer: lastAnswer, ToolCalls: calls}, nil
		}

		if round == rounds {
			// Round budget exhausted; return the best answer collected so far
			if p.logger != nil {
				p.logger.Warn("Tool round budget exhausted",
					logger.IntField("rounds", rounds),
					logger.IntField("tool_calls", len(calls)),
				)
			}
			break
		}

		// Echo the assistant turn, then answer each tool use with its result
		messages = append(messages, assistantTurn(resp))

		resultBlocks := make([]anthropic.ContentBlockParamUnion, 0, len(toolUses))
		for _, use := range toolUses {
			payload, err := json.Marshal(use.Input)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal tool input: %w", err)
			}

			output := p.runTool(ctx, toolsByName, use.Name, string(payload))
			calls = append(calls, planner.ToolCall{Name: use.Name, Payload: string(payload), Output: output})

			resultBlocks = append(resultBlocks, anthropic.NewToolResultBlock(use.ID, output, false))
		}

		messages = append(messages, anthropic.MessageParam{
			Role:    anthropic.MessageParamRoleUser,
			Content: resultBlocks,
		})
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

// buildMessages converts history and the current query into message params.
func buildMessages(req planner.Request) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(req.History)*2+1)

	for _, exchange := range req.History {
		messages = append(messages, textMessage(anthropic.MessageParamRoleUser, exchange.Query))
		messages = append(messages, textMessage(anthropic.MessageParamRoleAssistant, exchange.Answer))
	}

	userPrompt := req.Query
	if len(req.Context) > 0 {
		if ctxJSON, err := json.Marshal(req.Context); err == nil {
			userPrompt = fmt.Sprintf("%s\n\nContext:\n%s", req.Query, ctxJSON)
		}
	}
	messages = append(messages, textMessage(anthropic.MessageParamRoleUser, userPrompt))

	return messages
}

func textMessage(role anthropic.MessageParamRole, text string) anthropic.MessageParam {
	return anthropic.MessageParam{
		Role: role,
		Content: []anthropic.ContentBlockParamUnion{
			{OfText: &anthropic.TextBlockParam{Text: text}},
		},
	}
}

// splitResponse extracts the text answer and any tool use blocks.
func splitResponse(message *anthropic.Message) (string, []anthropic.ToolUseBlock) {
	var text string
	var toolUses []anthropic.ToolUseBlock

	for _, block := range message.Content {
		switch blockType := block.AsAny().(type) {
		case anthropic.TextBlock:
			if text != "" {
				text += "\n"
			}
			text += blockType.Text
		case anthropic.ToolUseBlock:
			toolUses = append(toolUses, blockType)
		}
	}

	return text, toolUses
}

// assistantTurn converts a response into the assistant message param that
// continues the conversation.
func assistantTurn(message *anthropic.Message) anthropic.MessageParam {
	var blocks []anthropic.ContentBlockParamUnion

	for _, block := range message.Content {
		switch blockType := block.AsAny().(type) {
		case anthropic.TextBlock:
			blocks = append(blocks, anthropic.ContentBlockParamUnion{
				OfText: &anthropic.TextBlockParam{Text: blockType.Text},
			})
		case anthropic.ToolUseBlock:
			blocks = append(blocks, anthropic.ContentBlockParamUnion{
				OfToolUse: &anthropic.ToolUseBlockParam{
					ID:    blockType.ID,
					Name:  blockType.Name,
					Input: blockType.Input,
				},
			})
		}
	}

	return anthropic.MessageParam{
		Role:    anthropic.MessageParamRoleAssistant,
		Content: blocks,
	}
}

// transformTools converts planner tools to the Anthropic tool format.
// Tool arguments are a free-form JSON object; the tool itself validates
// the payload and reports problems in its JSON result.
func transformTools(tools []planner.Tool) []anthropic.ToolUnionParam {
	var anthropicTools []anthropic.ToolUnionParam

	for _, tool := range tools {
		anthropicTools = append(anthropicTools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]interface{}{},
				},
			},
		})
	}

	return anthropicTools
}

// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API (including function/tool calling). It adapts
// reagent's normalized Request/Response structures into the SDK's message
// format and back.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/model"
)

// Options configure the OpenAI model adapter. Fields mirror a subset of
// Chat Completion parameters intentionally kept minimal; extend via
// functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic
// model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Respond implements model.Model using a single non-streaming completion.
func (m *Model) Respond(ctx context.Context, req model.Request) (*model.Response, error) {
	params := m.buildParams(req, buildMessages(req))

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	ch0 := resp.Choices[0]
	msg := core.AIMessage{Text: ch0.Message.Content}
	for _, tc := range ch0.Message.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return &model.Response{
		Message:      msg,
		FinishReason: ch0.FinishReason,
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// buildMessages converts the normalized conversation into OpenAI chat
// messages. The state ordering invariant guarantees tool results directly
// follow the assistant message that requested them, so the conversion is a
// straight walk.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}

	for _, msg := range req.Messages {
		switch m := msg.(type) {
		case core.HumanMessage:
			messages = append(messages, openai.UserMessage(m.Text))
		case core.AIMessage:
			if len(m.ToolCalls) == 0 {
				messages = append(messages, openai.AssistantMessage(m.Text))
				continue
			}
			toolCalls := make([]openai.ChatCompletionMessageToolCallParam, 0, len(m.ToolCalls))
			for _, tc := range m.ToolCalls {
				toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallParam{
					ID:   tc.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			assistant := &openai.ChatCompletionAssistantMessageParam{
				Role:      "assistant",
				ToolCalls: toolCalls,
			}
			messages = append(messages, openai.ChatCompletionMessageParamUnion{OfAssistant: assistant})
		case core.ToolMessage:
			messages = append(messages, openai.ToolMessage(m.Content, m.CallID))
		}
	}

	return messages
}

// buildParams assembles the OpenAI request parameters including tool
// definitions.
func (m *Model) buildParams(
	req model.Request,
	messages []openai.ChatCompletionMessageParamUnion,
) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
	if len(req.Tools) == 0 {
		return params
	}
	tools := make([]openai.ChatCompletionToolParam, len(req.Tools))
	for i, tdef := range req.Tools {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        tdef.Function.Name,
				Description: openai.String(tdef.Function.Description),
				Parameters:  tdef.Function.Parameters,
			},
		}
	}
	params.Tools = tools
	return params
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          m.opts.Model,
		Provider:      "openai",
		SupportsTools: true,
	}
}

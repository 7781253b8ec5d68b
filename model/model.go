package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/reagent-dev/reagent/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object (draft agnostic, minimal subset
// expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Request captures the normalized model input produced by the agent step.
// Instructions carry the fixed system prompt; it is combined with Messages
// per call and never persisted into conversation state.
type Request struct {
	Instructions string           `json:"instructions"`
	Messages     []core.Message   `json:"messages"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the model's single reply for a Request.
type Response struct {
	Message      core.AIMessage `json:"message"`
	FinishReason string         `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
	Usage        *TokenUsage    `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive generation. Respond must
// return exactly one model-authored message, which may carry zero or more
// tool calls referencing only the bound tool names. Failures propagate to
// the caller unrecovered; retry policy belongs to outer layers.
type Model interface {
	Respond(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests and examples.
// Scripted responses are consumed in FIFO order; once the script is
// exhausted it echoes the last human message.
type MockModel struct {
	info Info

	mu       sync.Mutex
	script   []core.AIMessage
	requests []Request
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{
			Name:          name,
			Provider:      "mock",
			SupportsTools: true,
		},
	}
}

// Enqueue appends scripted responses returned by subsequent Respond calls.
func (m *MockModel) Enqueue(msgs ...core.AIMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, msgs...)
}

// Requests returns a copy of all requests seen so far, in call order.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := make([]Request, len(m.requests))
	copy(reqs, m.requests)
	return reqs
}

// Respond implements Model; pops the next scripted message or echoes input.
func (m *MockModel) Respond(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.script) > 0 {
		msg := m.script[0]
		m.script = m.script[1:]
		finish := "stop"
		if msg.HasToolCalls() {
			finish = "tool_calls"
		}
		return &Response{Message: msg, FinishReason: finish}, nil
	}

	var lastHuman string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if h, ok := req.Messages[i].(core.HumanMessage); ok {
			lastHuman = h.Text
			break
		}
	}

	return &Response{
		Message:      core.AIMessage{Text: fmt.Sprintf("Mock response to: %s", lastHuman)},
		FinishReason: "stop",
	}, nil
}

// Info implements the Model interface.
func (m *MockModel) Info() Info { return m.info }

package core

import "github.com/google/uuid"

// Message is a single entry in a conversation. Concrete message types
// implement the unexported isMessage marker enabling a closed set, so every
// consumer can switch exhaustively over the three variants.
type Message interface{ isMessage() }

// HumanMessage is user-authored input text.
type HumanMessage struct {
	Text string `json:"text"`
}

// isMessage implements the Message interface for HumanMessage.
func (HumanMessage) isMessage() {}

// AIMessage is model-authored output. It optionally carries tool calls the
// model wants executed before it can produce a final answer.
type AIMessage struct {
	Text      string     `json:"text,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// isMessage implements the Message interface for AIMessage.
func (AIMessage) isMessage() {}

// HasToolCalls reports whether the message requests at least one tool call.
func (m AIMessage) HasToolCalls() bool { return len(m.ToolCalls) > 0 }

// ToolMessage is the textual result of a single tool call. CallID references
// the originating ToolCall so results stay unambiguous even when two calls
// target the same tool.
type ToolMessage struct {
	CallID  string `json:"call_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// isMessage implements the Message interface for ToolMessage.
func (ToolMessage) isMessage() {}

// ToolCall describes a tool invocation request emitted by a model client.
// Unified across vendors so downstream logic does not need per-provider
// branching.
type ToolCall struct {
	ID        string `json:"id"`                  // Unique within the carrying message
	Name      string `json:"name"`                // Tool name
	Arguments string `json:"arguments,omitempty"` // Serialized argument payload (JSON)
}

// NewID generates a new unique identifier for runs and tool calls.
func NewID() string { return uuid.NewString() }

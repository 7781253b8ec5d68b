package model

import (
	"context"
	"testing"

	"github.com/reagent-dev/reagent/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModelScriptFIFO(t *testing.T) {
	m := NewMockModel("m")
	m.Enqueue(
		core.AIMessage{ToolCalls: []core.ToolCall{{ID: "c1", Name: "t", Arguments: `{}`}}},
		core.AIMessage{Text: "final"},
	)

	resp, err := m.Respond(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "tool_calls", resp.FinishReason)
	assert.True(t, resp.Message.HasToolCalls())

	resp, err = m.Respond(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, "final", resp.Message.Text)
}

func TestMockModelEchoFallback(t *testing.T) {
	m := NewMockModel("m")

	resp, err := m.Respond(context.Background(), Request{
		Messages: []core.Message{
			core.HumanMessage{Text: "older"},
			core.AIMessage{Text: "reply"},
			core.HumanMessage{Text: "latest"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: latest", resp.Message.Text)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestMockModelRecordsRequests(t *testing.T) {
	m := NewMockModel("m")

	req := Request{
		Instructions: "sys",
		Messages:     []core.Message{core.HumanMessage{Text: "hi"}},
		Tools: []ToolDefinition{{
			Type:     "function",
			Function: FunctionDefinition{Name: "t"},
		}},
	}
	_, err := m.Respond(context.Background(), req)
	require.NoError(t, err)

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "sys", reqs[0].Instructions)
	require.Len(t, reqs[0].Tools, 1)
	assert.Equal(t, "t", reqs[0].Tools[0].Function.Name)
}

func TestMockModelHonorsContext(t *testing.T) {
	m := NewMockModel("m")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Respond(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockModelInfo(t *testing.T) {
	m := NewMockModel("weather-mock")
	info := m.Info()
	assert.Equal(t, "weather-mock", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}

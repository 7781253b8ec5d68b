package graph

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) tool.Tool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
	}
	return tool.NewFunctionTool(name, "echoes input", params, func(_ context.Context, args map[string]any) (any, error) {
		return fmt.Sprintf("%s:%v", name, args["text"]), nil
	})
}

func failingTool(name string) tool.Tool {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	return tool.NewFunctionTool(name, "always fails", params, func(_ context.Context, _ map[string]any) (any, error) {
		return nil, errors.New("kaput")
	})
}

func stateWithCalls(calls ...core.ToolCall) core.State {
	return core.NewState(
		core.HumanMessage{Text: "go"},
		core.AIMessage{ToolCalls: calls},
	)
}

func TestToolDispatchOrderedResults(t *testing.T) {
	reg := tool.MustNewRegistry(echoTool("alpha"), echoTool("beta"))
	d := NewToolDispatch(reg)

	st := stateWithCalls(
		core.ToolCall{ID: "c1", Name: "beta", Arguments: `{"text": "one"}`},
		core.ToolCall{ID: "c2", Name: "alpha", Arguments: `{"text": "two"}`},
	)

	delta, err := d.Run(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, delta, 2)

	first := delta[0].(core.ToolMessage)
	second := delta[1].(core.ToolMessage)

	assert.Equal(t, "c1", first.CallID)
	assert.Equal(t, "beta:one", first.Content)
	assert.Equal(t, "c2", second.CallID)
	assert.Equal(t, "alpha:two", second.Content)

	// Input state stays untouched.
	assert.Equal(t, 2, st.Len())
}

func TestToolDispatchSameToolCorrelation(t *testing.T) {
	reg := tool.MustNewRegistry(echoTool("echo"))
	d := NewToolDispatch(reg)

	st := stateWithCalls(
		core.ToolCall{ID: "c1", Name: "echo", Arguments: `{"text": "a"}`},
		core.ToolCall{ID: "c2", Name: "echo", Arguments: `{"text": "b"}`},
	)

	delta, err := d.Run(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, delta, 2)

	assert.Equal(t, "c1", delta[0].(core.ToolMessage).CallID)
	assert.Equal(t, "echo:a", delta[0].(core.ToolMessage).Content)
	assert.Equal(t, "c2", delta[1].(core.ToolMessage).CallID)
	assert.Equal(t, "echo:b", delta[1].(core.ToolMessage).Content)
}

func TestToolDispatchUnknownToolFails(t *testing.T) {
	reg := tool.MustNewRegistry(echoTool("known"))
	d := NewToolDispatch(reg)

	st := stateWithCalls(core.ToolCall{ID: "c1", Name: "ghost"})

	delta, err := d.Run(context.Background(), st)
	require.Error(t, err)
	assert.Nil(t, delta)

	var unknown *core.UnknownToolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
	assert.Equal(t, "c1", unknown.CallID)
}

func TestToolDispatchExecutionFailureFails(t *testing.T) {
	reg := tool.MustNewRegistry(echoTool("ok"), failingTool("bad"))
	d := NewToolDispatch(reg)

	// The failing call aborts the step; the preceding result is discarded.
	st := stateWithCalls(
		core.ToolCall{ID: "c1", Name: "ok", Arguments: `{"text": "x"}`},
		core.ToolCall{ID: "c2", Name: "bad"},
	)

	delta, err := d.Run(context.Background(), st)
	require.Error(t, err)
	assert.Nil(t, delta)

	var execErr *core.ToolExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "bad", execErr.Name)
	assert.Equal(t, "c2", execErr.CallID)
}

func TestToolDispatchReportPolicy(t *testing.T) {
	reg := tool.MustNewRegistry(echoTool("ok"), failingTool("bad"))
	d := NewToolDispatch(reg, func(o *ToolDispatchOptions) {
		o.ErrorPolicy = ErrorPolicyReport
	})

	st := stateWithCalls(
		core.ToolCall{ID: "c1", Name: "bad"},
		core.ToolCall{ID: "c2", Name: "ghost"},
		core.ToolCall{ID: "c3", Name: "ok", Arguments: `{"text": "x"}`},
	)

	delta, err := d.Run(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, delta, 3)

	assert.Contains(t, delta[0].(core.ToolMessage).Content, "error:")
	assert.Contains(t, delta[1].(core.ToolMessage).Content, "error:")
	assert.Equal(t, "ok:x", delta[2].(core.ToolMessage).Content)
}

func TestToolDispatchNoPendingCalls(t *testing.T) {
	reg := tool.MustNewRegistry(echoTool("ok"))
	d := NewToolDispatch(reg)

	delta, err := d.Run(context.Background(), core.NewState(core.AIMessage{Text: "done"}))
	assert.NoError(t, err)
	assert.Empty(t, delta)

	delta, err = d.Run(context.Background(), core.State{})
	assert.NoError(t, err)
	assert.Empty(t, delta)
}

func TestToolDispatchSerializesStructuredResults(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	structured := tool.NewFunctionTool("stats", "returns a struct", params, func(_ context.Context, _ map[string]any) (any, error) {
		return map[string]any{"count": 3}, nil
	})
	reg := tool.MustNewRegistry(structured)
	d := NewToolDispatch(reg)

	delta, err := d.Run(context.Background(), stateWithCalls(core.ToolCall{ID: "c1", Name: "stats"}))
	require.NoError(t, err)
	require.Len(t, delta, 1)
	assert.JSONEq(t, `{"count": 3}`, delta[0].(core.ToolMessage).Content)
}

func TestToolDispatchBadArguments(t *testing.T) {
	reg := tool.MustNewRegistry(echoTool("ok"))
	d := NewToolDispatch(reg)

	_, err := d.Run(context.Background(), stateWithCalls(core.ToolCall{ID: "c1", Name: "ok", Arguments: `{not json`}))
	require.Error(t, err)

	var execErr *core.ToolExecutionError
	assert.ErrorAs(t, err, &execErr)
}

func TestToolDispatchEmptyArgumentsDecodeToEmptyMap(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	captured := make(chan map[string]any, 1)
	capture := tool.NewFunctionTool("cap", "captures args", params, func(_ context.Context, args map[string]any) (any, error) {
		captured <- args
		return "ok", nil
	})
	reg := tool.MustNewRegistry(capture)
	d := NewToolDispatch(reg)

	_, err := d.Run(context.Background(), stateWithCalls(core.ToolCall{ID: "c1", Name: "cap"}))
	require.NoError(t, err)
	assert.Empty(t, <-captured)
}

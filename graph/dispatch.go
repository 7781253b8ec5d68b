package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/logging"
	"github.com/reagent-dev/reagent/tool"
)

// ErrorPolicy controls how the dispatch step reacts to an unknown tool name
// or a failing tool.
type ErrorPolicy int

const (
	// ErrorPolicyFail aborts the dispatch on the first unknown tool or tool
	// failure. No result message is appended for the failing call and the
	// error propagates unrecovered to the executor. This is the default.
	ErrorPolicyFail ErrorPolicy = iota

	// ErrorPolicyReport converts failures into tool-result messages carrying
	// the error text, letting the model see and react to the failure on the
	// next turn.
	ErrorPolicyReport
)

// ToolDispatchOptions configures a ToolDispatch.
type ToolDispatchOptions struct {
	ErrorPolicy ErrorPolicy
	Logger      logging.Logger
}

// ToolDispatch executes the tool calls carried by the most recent
// model-authored message, strictly in listed order, and produces one
// tool-result message per call. Calls are never run in parallel; ordering
// keeps identifier-based correlation unambiguous even when two calls target
// the same tool.
type ToolDispatch struct {
	registry *tool.Registry
	policy   ErrorPolicy
	logger   logging.Logger
}

// NewToolDispatch constructs a ToolDispatch over an immutable registry.
func NewToolDispatch(registry *tool.Registry, optFns ...func(o *ToolDispatchOptions)) *ToolDispatch {
	opts := ToolDispatchOptions{ErrorPolicy: ErrorPolicyFail}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ToolDispatch{
		registry: registry,
		policy:   opts.ErrorPolicy,
		logger:   logging.OrNoOp(opts.Logger),
	}
}

// Run dispatches every tool call on the final message and returns the
// resulting delta in call order. The input state is never modified. With
// ErrorPolicyFail a lookup miss yields *core.UnknownToolError and a tool
// failure yields *core.ToolExecutionError; results produced before the
// failing call are discarded with the aborted iteration.
func (d *ToolDispatch) Run(ctx context.Context, st core.State) ([]core.Message, error) {
	last, ok := st.Last()
	if !ok {
		return nil, nil
	}
	ai, ok := last.(core.AIMessage)
	if !ok || !ai.HasToolCalls() {
		// Routing should prevent this; treat as an empty delta.
		d.logger.Debug("graph.dispatch.no_pending_calls")
		return nil, nil
	}

	delta := make([]core.Message, 0, len(ai.ToolCalls))
	for _, call := range ai.ToolCalls {
		msg, err := d.dispatchOne(ctx, call)
		if err != nil {
			if d.policy == ErrorPolicyReport {
				delta = append(delta, core.ToolMessage{
					CallID:  call.ID,
					Name:    call.Name,
					Content: fmt.Sprintf("error: %v", err),
				})
				continue
			}
			return nil, err
		}
		delta = append(delta, msg)
	}

	return delta, nil
}

// dispatchOne looks up, invokes and serializes a single tool call.
func (d *ToolDispatch) dispatchOne(ctx context.Context, call core.ToolCall) (core.ToolMessage, error) {
	impl, ok := d.registry.Lookup(call.Name)
	if !ok {
		d.logger.Error("graph.dispatch.unknown_tool", "tool", call.Name, "call_id", call.ID)
		return core.ToolMessage{}, &core.UnknownToolError{Name: call.Name, CallID: call.ID}
	}

	args, err := decodeArguments(call.Arguments)
	if err != nil {
		return core.ToolMessage{}, &core.ToolExecutionError{Name: call.Name, CallID: call.ID, Err: err}
	}

	start := time.Now()
	result, err := impl.Call(ctx, args)
	dur := time.Since(start)

	d.logger.Info(
		"graph.dispatch.executed",
		"tool", call.Name,
		"call_id", call.ID,
		"duration_ms", dur.Milliseconds(),
		"error", err != nil,
	)

	if err != nil {
		return core.ToolMessage{}, &core.ToolExecutionError{Name: call.Name, CallID: call.ID, Err: err}
	}

	text, err := serializeResult(result)
	if err != nil {
		return core.ToolMessage{}, &core.ToolExecutionError{Name: call.Name, CallID: call.ID, Err: err}
	}

	return core.ToolMessage{CallID: call.ID, Name: call.Name, Content: text}, nil
}

// decodeArguments parses the call's JSON argument payload. An empty payload
// decodes to an empty map.
func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal args: %w", err)
	}
	return args, nil
}

// serializeResult renders a tool return value as message text. Strings pass
// through untouched; everything else is JSON encoded.
func serializeResult(result any) (string, error) {
	switch v := result.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to serialize result: %w", err)
		}
		return string(b), nil
	}
}

// Package reagent provides a high-level façade over the graph executor and
// its collaborators (model clients, tool registry, checkpoint store and
// logging) enabling rapid construction of ReAct-style tool-calling agents.
// Most applications interact with this package by:
//  1. Creating an Agent via New() with a model and an immutable tool registry
//  2. Invoking it synchronously (Invoke) or as a stream of steps (Stream)
//
// The façade delegates iteration to graph.Executor while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable checkpoint
// store and a structured logger.
package reagent

import (
	"context"

	"github.com/reagent-dev/reagent/checkpoint"
	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/graph"
	"github.com/reagent-dev/reagent/logging"
	"github.com/reagent-dev/reagent/model"
	"github.com/reagent-dev/reagent/tool"
)

// Options configures an Agent.
type Options struct {
	// Instructions is the fixed system prompt prepended to every model call.
	// It is never persisted into conversation state.
	Instructions string

	// MaxIterations bounds Agent->Tools cycles per run.
	MaxIterations int

	// ErrorPolicy controls dispatch behavior on unknown tools and tool
	// failures. Defaults to fail-fast.
	ErrorPolicy graph.ErrorPolicy

	// Checkpoints enables resuming conversations by thread ID. Nil disables
	// persistence.
	Checkpoints checkpoint.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Agent is the high-level façade aggregating the loop executor and its
// collaborators.
type Agent struct {
	opts     Options
	registry *tool.Registry
	executor *graph.Executor
}

// New creates an Agent wiring the model, the tool registry and the loop
// components together. The registry may be nil for a tool-less agent, in
// which case every run terminates after a single model turn.
func New(m model.Model, registry *tool.Registry, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Instructions:  "You are a helpful assistant.",
		MaxIterations: graph.DefaultMaxIterations,
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	agentStep := graph.NewAgentStep(m, opts.Instructions, registry, func(o *graph.AgentStepOptions) {
		o.Logger = opts.Logger
	})

	dispatch := graph.NewToolDispatch(registry, func(o *graph.ToolDispatchOptions) {
		o.ErrorPolicy = opts.ErrorPolicy
		o.Logger = opts.Logger
	})

	executor := graph.NewExecutor(agentStep, dispatch, func(o *graph.Options) {
		o.MaxIterations = opts.MaxIterations
		o.Checkpoints = opts.Checkpoints
		o.Logger = opts.Logger
	})

	return &Agent{opts: opts, registry: registry, executor: executor}
}

// Invoke runs the loop for a single human message and returns the final
// conversation state. ThreadID may be empty when checkpointing is disabled.
func (a *Agent) Invoke(ctx context.Context, threadID, text string) (core.State, error) {
	initial := core.NewState(core.HumanMessage{Text: text})
	return a.executor.Invoke(ctx, initial, graph.RunConfig{ThreadID: threadID})
}

// InvokeState runs the loop over a caller-constructed initial state.
func (a *Agent) InvokeState(ctx context.Context, initial core.State, cfg graph.RunConfig) (core.State, error) {
	return a.executor.Invoke(ctx, initial, cfg)
}

// Stream runs the loop for a single human message, yielding one step after
// each node completes. Both channels close when the run terminates.
func (a *Agent) Stream(ctx context.Context, threadID, text string) (<-chan graph.Step, <-chan error) {
	initial := core.NewState(core.HumanMessage{Text: text})
	return a.executor.Stream(ctx, initial, graph.RunConfig{ThreadID: threadID})
}

// Registry returns the agent's immutable tool registry.
func (a *Agent) Registry() *tool.Registry { return a.registry }

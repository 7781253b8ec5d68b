package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reagent-dev/reagent/checkpoint"
	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/logging"
)

// Node identifies a step in the loop.
type Node string

const (
	// NodeAgent is the model-calling step.
	NodeAgent Node = "agent"
	// NodeTools is the tool dispatch step.
	NodeTools Node = "tools"
)

// ErrMaxIterations is returned (wrapped) when a run exceeds the configured
// iteration bound without the continuation predicate signalling termination.
var ErrMaxIterations = errors.New("maximum loop iterations reached")

// Step is one intermediate result yielded by a streaming run: the node that
// ran, the delta it produced and the state snapshot after folding the delta.
type Step struct {
	Node  Node
	Delta []core.Message
	State core.State
}

// RunConfig identifies a run. ThreadID keys checkpoint persistence; runs
// sharing a ThreadID resume each other's conversation state. RunID is
// assigned when empty.
type RunConfig struct {
	ThreadID string
	RunID    string
}

// Options configures an Executor.
type Options struct {
	// MaxIterations bounds Agent->Tools cycles per run. The loop itself has
	// no declared bound, so unbounded cycling is a real risk; exceeding the
	// bound fails the run. Zero or negative means the package default.
	MaxIterations int

	// Checkpoints enables resuming and persisting conversation state by
	// thread. Nil disables checkpointing.
	Checkpoints checkpoint.Store

	// Logger provides structured logging. Defaults to NoOp when nil.
	Logger logging.Logger
}

// DefaultMaxIterations bounds a run when no explicit limit is configured.
const DefaultMaxIterations = 25

// Executor owns loop iteration over the fixed topology
// Start -> Agent -> (Tools -> Agent)* -> End. It is single-threaded per
// run: one step completes fully before the next begins, and the state is
// owned exclusively by the executor between steps.
type Executor struct {
	agent         *AgentStep
	tools         *ToolDispatch
	maxIterations int
	checkpoints   checkpoint.Store
	logger        logging.Logger
}

// NewExecutor wires the agent step and tool dispatch into a runnable loop.
func NewExecutor(agent *AgentStep, tools *ToolDispatch, optFns ...func(o *Options)) *Executor {
	opts := Options{MaxIterations: DefaultMaxIterations}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	return &Executor{
		agent:         agent,
		tools:         tools,
		maxIterations: opts.MaxIterations,
		checkpoints:   opts.Checkpoints,
		logger:        logging.OrNoOp(opts.Logger),
	}
}

// Invoke runs the loop to termination and returns the final state. On
// failure it returns the state accumulated so far together with the error:
// messages appended by completed steps remain part of the conversation (no
// rollback), the aborted iteration contributes nothing.
func (e *Executor) Invoke(ctx context.Context, initial core.State, cfg RunConfig) (core.State, error) {
	steps, errCh := e.Stream(ctx, initial, cfg)

	state := initial
	for steps != nil || errCh != nil {
		select {
		case step, ok := <-steps:
			if !ok {
				steps = nil
				continue
			}
			state = step.State
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			return state, err
		}
	}

	return state, nil
}

// Stream launches the loop asynchronously and yields one Step after each
// node completes. Both channels are closed when the run terminates; a value
// on the error channel means the run aborted after the steps already
// yielded.
func (e *Executor) Stream(ctx context.Context, initial core.State, cfg RunConfig) (<-chan Step, <-chan error) {
	steps := make(chan Step, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(steps)
		defer close(errCh)

		if err := e.run(ctx, initial, cfg, steps); err != nil {
			errCh <- err
		}
	}()

	return steps, errCh
}

func (e *Executor) run(ctx context.Context, initial core.State, cfg RunConfig, steps chan<- Step) error {
	runID := cfg.RunID
	if runID == "" {
		runID = core.NewID()
	}

	state, stepCount, err := e.restore(initial, cfg)
	if err != nil {
		return err
	}

	e.logger.Debug(
		"graph.run.start",
		"run", runID,
		"thread", cfg.ThreadID,
		"messages", state.Len(),
		"resumed_steps", stepCount,
	)

	for i := 0; ; i++ {
		if i >= e.maxIterations {
			e.logger.Warn("graph.run.iteration_limit", "run", runID, "limit", e.maxIterations)
			return fmt.Errorf("run %s: %w after %d iterations", runID, ErrMaxIterations, i)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		delta, err := e.agent.Run(ctx, state)
		if err != nil {
			return err
		}
		state = core.Append(state, delta...)
		stepCount++
		if err := e.emit(ctx, cfg, steps, Step{Node: NodeAgent, Delta: delta, State: state}, stepCount); err != nil {
			return err
		}

		if Continue(state) == RouteEnd {
			e.logger.Debug("graph.run.complete", "run", runID, "iterations", i+1, "messages", state.Len())
			return nil
		}

		delta, err = e.tools.Run(ctx, state)
		if err != nil {
			return err
		}
		state = core.Append(state, delta...)
		stepCount++
		if err := e.emit(ctx, cfg, steps, Step{Node: NodeTools, Delta: delta, State: state}, stepCount); err != nil {
			return err
		}
	}
}

// restore loads the thread's checkpoint, if any, and appends the caller's
// initial messages so a resumed conversation continues rather than restarts.
func (e *Executor) restore(initial core.State, cfg RunConfig) (core.State, int, error) {
	if e.checkpoints == nil || cfg.ThreadID == "" {
		return initial, 0, nil
	}

	cp, ok, err := e.checkpoints.Get(cfg.ThreadID)
	if err != nil {
		return core.State{}, 0, fmt.Errorf("checkpoint get: %w", err)
	}
	if !ok {
		return initial, 0, nil
	}

	return core.Append(cp.State, initial.Messages...), cp.Step, nil
}

// emit persists the post-step state then forwards the step to the caller.
func (e *Executor) emit(ctx context.Context, cfg RunConfig, steps chan<- Step, step Step, stepCount int) error {
	if e.checkpoints != nil && cfg.ThreadID != "" {
		cp := checkpoint.Checkpoint{State: step.State, Step: stepCount, UpdatedAt: time.Now().UTC()}
		if err := e.checkpoints.Put(cfg.ThreadID, cp); err != nil {
			return fmt.Errorf("checkpoint put: %w", err)
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case steps <- step:
	}

	return nil
}

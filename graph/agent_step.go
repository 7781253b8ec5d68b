package graph

import (
	"context"
	"fmt"

	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/logging"
	"github.com/reagent-dev/reagent/model"
	"github.com/reagent-dev/reagent/tool"
)

// AgentStepOptions configures an AgentStep.
type AgentStepOptions struct {
	Logger logging.Logger
}

// AgentStep produces one model-authored message per invocation. It combines
// the fixed system instructions with the current conversation state, binds
// the registry's tool declarations and calls the model client. The
// instructions are supplied per call only and never enter persisted state.
type AgentStep struct {
	model        model.Model
	instructions string
	tools        []model.ToolDefinition
	logger       logging.Logger
}

// NewAgentStep constructs an AgentStep bound to a model, instructions and
// the tool registry. Tool declarations are derived once at construction;
// the registry is immutable so they cannot drift.
func NewAgentStep(
	m model.Model,
	instructions string,
	registry *tool.Registry,
	optFns ...func(o *AgentStepOptions),
) *AgentStep {
	opts := AgentStepOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var defs []model.ToolDefinition
	if registry != nil {
		defs = make([]model.ToolDefinition, 0, registry.Len())
		for _, t := range registry.Tools() {
			defs = append(defs, model.ToolDefinition{
				Type: "function",
				Function: model.FunctionDefinition{
					Name:        t.Name(),
					Description: t.Description(),
					Parameters:  t.Parameters(),
				},
			})
		}
	}

	return &AgentStep{
		model:        m,
		instructions: instructions,
		tools:        defs,
		logger:       logging.OrNoOp(opts.Logger),
	}
}

// Run performs one model turn and returns a delta of exactly one message.
// The input state is not modified; the caller owns appending the delta.
// Model client failures propagate unrecovered.
func (s *AgentStep) Run(ctx context.Context, st core.State) ([]core.Message, error) {
	req := model.Request{
		Instructions: s.instructions,
		Messages:     st.Messages,
		Tools:        s.tools,
	}

	resp, err := s.model.Respond(ctx, req)
	if err != nil {
		s.logger.Error("graph.agent.model_error", "model", s.model.Info().Name, "error", err.Error())
		return nil, fmt.Errorf("model respond: %w", err)
	}

	s.logger.Debug(
		"graph.agent.responded",
		"model", s.model.Info().Name,
		"tool_calls", len(resp.Message.ToolCalls),
		"finish_reason", resp.FinishReason,
	)

	return []core.Message{resp.Message}, nil
}

// Package tool implements the capability subsystem that lets the agent loop
// invoke structured functions (APIs, computations, side effects) with schema
// validated arguments and consistent error handling.
package tool

import (
	"context"
	"fmt"

	"github.com/reagent-dev/reagent/internal/util"
)

// Tool defines the interface for extending the agent with callable
// capabilities.
//
// Tools are gathered into an immutable Registry at startup and exposed to
// the model client as function declarations. Implementations should:
//   - Provide clear, descriptive names (snake_case recommended)
//   - Define proper JSON schema for parameters
//   - Be safe for repeated invocation across loop iterations
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is provided to the model to help it decide when to call the
	// tool.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool synchronously with already-decoded arguments.
	// The returned value must be JSON-serializable; the dispatch step turns
	// it into a textual result message.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors with detailed
// information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

package core

import "fmt"

// UnknownToolError reports a tool call naming a tool with no registry entry.
// The dispatch step surfaces it unrecovered; no result message is appended
// for the failing call.
type UnknownToolError struct {
	Name   string // Requested tool name
	CallID string // Identifier of the offending tool call
}

// Error implements the error interface for UnknownToolError.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q (call %s)", e.Name, e.CallID)
}

// ToolExecutionError wraps a failure raised by an invoked tool. It keeps the
// call correlation so callers can tell which of several calls failed.
type ToolExecutionError struct {
	Name   string
	CallID string
	Err    error
}

// Error implements the error interface for ToolExecutionError.
func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q (call %s) failed: %v", e.Name, e.CallID, e.Err)
}

// Unwrap exposes the underlying tool error for errors.Is / errors.As.
func (e *ToolExecutionError) Unwrap() error { return e.Err }

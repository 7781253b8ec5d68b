// Package graph implements the agent loop as a fixed-topology state graph:
// an agent step that calls the model, a tool dispatch step that executes
// requested tool calls, and a continuation predicate routing between them.
//
// The Executor owns iteration: Start -> Agent -> (Tools -> Agent)* -> End.
// Steps return deltas (new messages only); the executor folds them into the
// conversation state with core.Append, so state accumulation stays explicit
// and order preserving.
package graph

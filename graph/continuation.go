package graph

import "github.com/reagent-dev/reagent/core"

// Route is a routing label returned by the continuation predicate.
type Route string

const (
	// RouteTools routes to the tool dispatch step.
	RouteTools Route = "tools"
	// RouteEnd terminates the loop.
	RouteEnd Route = "end"
)

// Continue is the continuation predicate: a pure function from conversation
// state to a routing label. It examines only the final message and returns
// RouteTools iff that message is model-authored and carries at least one
// tool call. An empty state routes to RouteEnd.
func Continue(s core.State) Route {
	last, ok := s.Last()
	if !ok {
		return RouteEnd
	}
	if ai, ok := last.(core.AIMessage); ok && ai.HasToolCalls() {
		return RouteTools
	}
	return RouteEnd
}

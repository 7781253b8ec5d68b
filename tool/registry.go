package tool

import (
	"fmt"
	"sort"
)

// Registry is an immutable name-to-tool mapping built once at startup from a
// fixed list. Because it never changes after construction it is safe to
// share across loop iterations and goroutines without locking, and repeated
// lookups of the same name always return the same handle.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry constructs a Registry from the given tools. It rejects nil
// tools, empty names and duplicate names so that every model-visible
// function declaration maps to exactly one capability.
func NewRegistry(tools ...Tool) (*Registry, error) {
	m := make(map[string]Tool, len(tools))
	for _, t := range tools {
		if t == nil {
			return nil, fmt.Errorf("tool is nil")
		}
		name := t.Name()
		if name == "" {
			return nil, fmt.Errorf("tool name is empty")
		}
		if _, exists := m[name]; exists {
			return nil, fmt.Errorf("tool %s already registered", name)
		}
		m[name] = t
	}
	return &Registry{tools: m}, nil
}

// MustNewRegistry is like NewRegistry but panics on error. Intended for
// startup wiring where a misconfigured tool set is a programming mistake.
func MustNewRegistry(tools ...Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup fetches a tool by name. The second return reports whether the name
// is registered. A nil registry behaves like an empty one.
func (r *Registry) Lookup(name string) (Tool, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns the registered tools in name order.
func (r *Registry) Tools() []Tool {
	names := r.Names()
	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tools)
}

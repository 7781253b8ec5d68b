package core

// State is the ordered conversation history passed between loop iterations.
// Identity is positional: sequence order is temporal order. A State is never
// reordered or mutated in place; new messages are produced by Append, which
// leaves its input untouched.
type State struct {
	Messages []Message `json:"messages"`
}

// NewState constructs a State from the given messages.
func NewState(msgs ...Message) State {
	s := State{Messages: make([]Message, len(msgs))}
	copy(s.Messages, msgs)
	return s
}

// Append returns a new State holding s's messages followed by delta, in
// order. The input State is not modified, so callers may keep snapshots of
// earlier states safely. Append is associative with respect to delta
// grouping: Append(Append(s, a), b) equals Append(s, a, b).
func Append(s State, delta ...Message) State {
	out := State{Messages: make([]Message, 0, len(s.Messages)+len(delta))}
	out.Messages = append(out.Messages, s.Messages...)
	out.Messages = append(out.Messages, delta...)
	return out
}

// Len returns the number of messages in the state.
func (s State) Len() int { return len(s.Messages) }

// Last returns the final message and true, or the zero value and false for
// an empty state.
func (s State) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return nil, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// FinalResponse returns the most recent model-authored message, scanning
// from the end of the history. It returns false if no AIMessage exists.
func (s State) FinalResponse() (AIMessage, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if m, ok := s.Messages[i].(AIMessage); ok {
			return m, true
		}
	}
	return AIMessage{}, false
}

// Clone returns a deep copy of the message slice wrapped in a new State.
// Messages themselves are value types and need no further copying.
func (s State) Clone() State {
	return NewState(s.Messages...)
}

// Package checkpoint defines the persistence boundary used to resume
// conversation state across process invocations. Only the interface and an
// in-memory reference store live here; durable backends are external
// collaborators and out of scope.
package checkpoint

import (
	"time"

	"github.com/reagent-dev/reagent/core"
)

// Checkpoint is a point-in-time snapshot of a run's conversation state.
type Checkpoint struct {
	State     core.State `json:"state"`
	Step      int        `json:"step"` // Number of executor steps completed
	UpdatedAt time.Time  `json:"updated_at"`
}

// Store persists checkpoints keyed by thread ID. Implementations must be
// safe for concurrent use; the executor reads once at run start and writes
// after every step.
type Store interface {
	// Get returns the stored checkpoint for a thread, with the second
	// return reporting presence.
	Get(threadID string) (*Checkpoint, bool, error)

	// Put stores (or replaces) the checkpoint for a thread.
	Put(threadID string, cp Checkpoint) error
}

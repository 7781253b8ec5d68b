package checkpoint

import (
	"testing"
	"time"

	"github.com/reagent-dev/reagent/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	store := NewInMemoryStore()

	cp := Checkpoint{
		State:     core.NewState(core.HumanMessage{Text: "hi"}),
		Step:      1,
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Put("t1", cp))

	got, ok, err := store.Get("t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.Step)
	assert.Equal(t, cp.State.Messages, got.State.Messages)
}

func TestInMemoryStoreAbsentThread(t *testing.T) {
	store := NewInMemoryStore()

	got, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestInMemoryStoreCloneIsolation(t *testing.T) {
	store := NewInMemoryStore()

	state := core.NewState(core.HumanMessage{Text: "original"})
	require.NoError(t, store.Put("t1", Checkpoint{State: state, Step: 1}))

	// Mutating the caller's copy after Put must not affect the stored state.
	state.Messages[0] = core.HumanMessage{Text: "mutated"}

	got, ok, err := store.Get("t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.HumanMessage{Text: "original"}, got.State.Messages[0])

	// Mutating a read copy must not affect later reads.
	got.State.Messages[0] = core.HumanMessage{Text: "mutated again"}

	again, ok, err := store.Get("t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.HumanMessage{Text: "original"}, again.State.Messages[0])
}

func TestInMemoryStoreOverwrite(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Put("t1", Checkpoint{State: core.NewState(core.HumanMessage{Text: "a"}), Step: 1}))
	require.NoError(t, store.Put("t1", Checkpoint{State: core.NewState(core.HumanMessage{Text: "a"}, core.AIMessage{Text: "b"}), Step: 2}))

	got, ok, err := store.Get("t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.Step)
	assert.Equal(t, 2, got.State.Len())
}

package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testEvent struct {
	HandID string
	Note   string
}

func (e testEvent) EventName() string { return "test-event" }

type idlessEvent struct{}

func (e idlessEvent) EventName() string { return "idless-event" }

func TestInMemoryEventStore(t *testing.T) {
	store := NewInMemoryEventStore()

	t.Run("Append and load events", func(t *testing.T) {
		require.NoError(t, store.Append(testEvent{HandID: "hand-1", Note: "first"}))
		require.NoError(t, store.Append(testEvent{HandID: "hand-1", Note: "second"}))
		require.NoError(t, store.Append(testEvent{HandID: "hand-2", Note: "other"}))

		loaded, err := store.LoadEvents("hand-1")
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		require.Equal(t, "first", loaded[0].(testEvent).Note)
		require.Equal(t, "second", loaded[1].(testEvent).Note)
	})

	t.Run("Unknown hand yields empty slice", func(t *testing.T) {
		loaded, err := store.LoadEvents("missing")
		require.NoError(t, err)
		require.Empty(t, loaded)
	})

	t.Run("Event without HandID is rejected", func(t *testing.T) {
		require.Error(t, store.Append(idlessEvent{}))
	})
}

func TestGetHandID(t *testing.T) {
	require.Equal(t, "hand-9", GetHandID(testEvent{HandID: "hand-9"}))
	require.Equal(t, "hand-9", GetHandID(&testEvent{HandID: "hand-9"}))
	require.Equal(t, "", GetHandID(idlessEvent{}))
}

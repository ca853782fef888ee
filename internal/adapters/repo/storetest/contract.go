// Package storetest holds behavior checks shared by every LibraryStore
// adapter.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var savedAt = time.Date(2026, 3, 2, 9, 30, 15, 0, time.UTC)

func Paper(title string) domain.Paper {
	return domain.Paper{
		Title:    title,
		Authors:  "Ada Lovelace, Alan Turing",
		Abstract: "An abstract about " + title + ".",
		Year:     domain.IntPtr(2021),
		Venue:    "ICML",
		Tags:     []string{"ml", "theory"},
		SavedAt:  savedAt,
	}
}

// MustAdd adds paper and fails the test on error. It returns whether the
// paper was newly stored.
func MustAdd(t *testing.T, store ports.LibraryStore, paper domain.Paper) bool {
	t.Helper()

	added, err := store.Add(context.Background(), paper)
	require.NoError(t, err)
	return added
}

// RunLibraryStoreContract runs the LibraryStore behavior suite against
// stores built by newStore. Each call to newStore must return an empty store.
func RunLibraryStoreContract(t *testing.T, newStore func(t *testing.T) ports.LibraryStore) {
	t.Helper()

	t.Run("empty store lists nothing", func(t *testing.T) {
		papers, err := newStore(t).List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, papers)
	})

	t.Run("add round trips every field", func(t *testing.T) {
		store := newStore(t)
		paper := Paper("Attention Is All You Need")

		MustAdd(t, store, paper)

		papers, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Equal(t, paper, papers[0])
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		store := newStore(t)
		paper := domain.Paper{Title: "Bare", Authors: "A", Abstract: "B", SavedAt: savedAt}

		MustAdd(t, store, paper)

		papers, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Nil(t, papers[0].Year)
		assert.Empty(t, papers[0].Tags)
		assert.Empty(t, papers[0].Venue)
	})

	t.Run("add keeps insertion order", func(t *testing.T) {
		store := newStore(t)
		for _, title := range []string{"c", "a", "b"} {
			MustAdd(t, store, Paper(title))
		}

		papers, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, papers, 3)
		assert.Equal(t, "c", papers[0].Title)
		assert.Equal(t, "a", papers[1].Title)
		assert.Equal(t, "b", papers[2].Title)
	})

	t.Run("add existing title is a no-op", func(t *testing.T) {
		store := newStore(t)
		first := Paper("Same Title")
		second := Paper("Same Title")
		second.Authors = "Someone Else"

		assert.True(t, MustAdd(t, store, first))
		assert.False(t, MustAdd(t, store, second))

		papers, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Equal(t, first.Authors, papers[0].Authors)
	})

	t.Run("titles differing in case are distinct", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, Paper("Graph Networks"))
		MustAdd(t, store, Paper("graph networks"))

		papers, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, papers, 2)
	})

	t.Run("remove deletes by title", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, Paper("keep"))
		MustAdd(t, store, Paper("drop"))

		require.NoError(t, store.Remove(context.Background(), "drop"))

		papers, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Equal(t, "keep", papers[0].Title)
	})

	t.Run("remove unknown title reports not found", func(t *testing.T) {
		store := newStore(t)
		require.ErrorIs(t, store.Remove(context.Background(), "missing"), domain.ErrPaperNotFound)
	})

	t.Run("clear empties the library", func(t *testing.T) {
		store := newStore(t)
		MustAdd(t, store, Paper("one"))
		MustAdd(t, store, Paper("two"))

		require.NoError(t, store.Clear(context.Background()))

		papers, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, papers)
	})

	t.Run("canceled context is returned", func(t *testing.T) {
		store := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Add(ctx, Paper("x"))
		require.ErrorIs(t, err, context.Canceled)
		_, err = store.List(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

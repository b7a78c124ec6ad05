// Package todotest holds the behaviour every todo.Store implementation must share.
package todotest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/todo"
)

// RunStoreContract runs the shared suite. newStore must return an empty store.
func RunStoreContract(t *testing.T, newStore func(t *testing.T) todo.Store) {
	t.Helper()

	seed := func(t *testing.T, items ...string) todo.Store {
		t.Helper()
		s := newStore(t)
		for _, it := range items {
			require.NoError(t, s.Add(it))
		}
		return s
	}

	t.Run("Add_KeepsOrder", func(t *testing.T) {
		s := seed(t, "a", "b", "c")
		assert.Equal(t, 3, s.Len())
		for i, want := range []string{"a", "b", "c"} {
			got, err := s.Get(i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Add_StoresTextUntrimmed", func(t *testing.T) {
		s := seed(t, "  padded  ")
		got, err := s.Get(0)
		require.NoError(t, err)
		assert.Equal(t, "  padded  ", got)
	})

	t.Run("Add_RejectsBlank", func(t *testing.T) {
		s := seed(t, "keep")
		for _, blank := range []string{"", "   ", "\t\n"} {
			err := s.Add(blank)
			var verr *todo.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Item description cannot be empty.", verr.Message)
			assert.ErrorIs(t, err, todo.ErrInvalidItem)
		}
		assert.Equal(t, []string{"keep"}, s.Items())
	})

	t.Run("RemoveAt_ShiftsLaterItems", func(t *testing.T) {
		s := seed(t, "a", "b", "c", "d")
		require.NoError(t, s.RemoveAt(1))
		assert.Equal(t, []string{"a", "c", "d"}, s.Items())
		require.NoError(t, s.RemoveAt(2))
		assert.Equal(t, []string{"a", "c"}, s.Items())
		require.NoError(t, s.RemoveAt(0))
		assert.Equal(t, []string{"c"}, s.Items())
	})

	t.Run("RemoveAt_OutOfRange", func(t *testing.T) {
		empty := newStore(t)
		err := empty.RemoveAt(0)
		var ierr *todo.IndexError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, 0, ierr.Index)
		assert.Equal(t, 0, ierr.Len)

		s := seed(t, "a", "b")
		for _, idx := range []int{-1, 2, 100} {
			assert.ErrorIs(t, s.RemoveAt(idx), todo.ErrIndexOutOfRange, "index %d", idx)
		}
		assert.Equal(t, []string{"a", "b"}, s.Items())
	})

	t.Run("EditAt_ReplacesOnlyTarget", func(t *testing.T) {
		s := seed(t, "a", "b", "c")
		require.NoError(t, s.EditAt(1, "B"))
		assert.Equal(t, []string{"a", "B", "c"}, s.Items())
		assert.Equal(t, 3, s.Len())
	})

	t.Run("EditAt_SingleItem", func(t *testing.T) {
		s := seed(t, "X")
		require.NoError(t, s.EditAt(0, "Y"))
		got, err := s.Get(0)
		require.NoError(t, err)
		assert.Equal(t, "Y", got)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("EditAt_ValidatesBeforeBounds", func(t *testing.T) {
		s := seed(t, "a")
		for _, idx := range []int{0, 5, -1} {
			err := s.EditAt(idx, "  ")
			var verr *todo.ValidationError
			require.ErrorAs(t, err, &verr, "index %d", idx)
			assert.Equal(t, "New description cannot be empty.", verr.Message)
		}
		assert.ErrorIs(t, s.EditAt(1, "b"), todo.ErrIndexOutOfRange)
		assert.Equal(t, []string{"a"}, s.Items())
	})

	t.Run("Get_OutOfRange", func(t *testing.T) {
		s := seed(t, "a")
		_, err := s.Get(1)
		assert.ErrorIs(t, err, todo.ErrIndexOutOfRange)
		_, err = s.Get(-1)
		assert.ErrorIs(t, err, todo.ErrIndexOutOfRange)
	})

	t.Run("Items_ReturnsCopy", func(t *testing.T) {
		s := seed(t, "a", "b")
		items := s.Items()
		items[0] = "mutated"
		got, err := s.Get(0)
		require.NoError(t, err)
		assert.Equal(t, "a", got)
	})

	t.Run("Formatted_Empty", func(t *testing.T) {
		assert.Equal(t, "The to-do list is empty.", newStore(t).Formatted())
	})

	t.Run("Formatted_Numbered", func(t *testing.T) {
		s := seed(t, "Buy milk", "Walk dog")
		want := "1. Buy milk" + todo.LineBreak + "2. Walk dog" + todo.LineBreak
		assert.Equal(t, want, s.Formatted())
	})

	t.Run("FailuresLeaveStoreUnchanged", func(t *testing.T) {
		s := seed(t, "a", "b")
		_ = s.Add("")
		_ = s.RemoveAt(9)
		_ = s.EditAt(9, "z")
		_ = s.EditAt(0, "")
		if !errors.Is(s.RemoveAt(-3), todo.ErrIndexOutOfRange) {
			t.Fatal("expected index error")
		}
		assert.Equal(t, []string{"a", "b"}, s.Items())
	})
}

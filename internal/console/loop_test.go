package console

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/logging"
	"todolist/internal/todo"
)

const menu = "==== TO-DO LIST MENU ====\n" +
	"1. Add new item\n" +
	"2. Remove an item\n" +
	"3. Edit an item\n" +
	"4. Display all items\n" +
	"5. Exit\n" +
	"Choose an option (1-5): "

func run(t *testing.T, store todo.Store, input string) (string, *Loop) {
	t.Helper()
	var out bytes.Buffer
	l := New(strings.NewReader(input), &out, store)
	require.NoError(t, l.Run(context.Background()))
	return out.String(), l
}

func TestLoop_ExitImmediately(t *testing.T) {
	out, l := run(t, todo.New(), "5\n")

	want := "Welcome to the To-Do List App!\n" + menu + "Goodbye!\n\n"
	assert.Equal(t, want, out)
	assert.Equal(t, Stopped, l.State())
}

func TestLoop_AddThenExitTranscript(t *testing.T) {
	if todo.LineBreak != "\n" {
		t.Skip("transcript assumes \\n line breaks")
	}
	store := todo.New()
	out, _ := run(t, store, "1\nBuy milk\n5\n")

	want := "Welcome to the To-Do List App!\n" +
		menu +
		"Enter the new to-do item: " +
		"Item added.\n" +
		"Current to-do list:\n" +
		"1. Buy milk\n" +
		"\n" +
		"\n" +
		menu +
		"Goodbye!\n\n"
	assert.Equal(t, want, out)
	assert.Equal(t, []string{"Buy milk"}, store.Items())
}

func TestLoop_AddKeepsRawText(t *testing.T) {
	store := todo.New()
	run(t, store, "1\n  spaced out  \r\n5\n")
	assert.Equal(t, []string{"  spaced out  "}, store.Items())
}

func TestLoop_AddBlankShowsValidationMessage(t *testing.T) {
	store := todo.New()
	out, _ := run(t, store, "1\n   \n5\n")

	assert.Contains(t, out, "Item description cannot be empty.\n")
	assert.NotContains(t, out, "Item added.")
	assert.Equal(t, 0, store.Len())
}

func TestLoop_InvalidOptions(t *testing.T) {
	out, l := run(t, todo.New(), "abc def\n9\n0\n-2\n5\n")

	assert.Equal(t, 4, strings.Count(out, "Invalid option. Please choose a number from 1 to 5.\n"))
	assert.Equal(t, 5, strings.Count(out, "==== TO-DO LIST MENU ===="))
	assert.Equal(t, Stopped, l.State())
}

func TestLoop_SkipsBlankLinesAndTrailingTokens(t *testing.T) {
	out, _ := run(t, todo.New(), "\n\n4 and more\n5\n")

	assert.NotContains(t, out, "Invalid option")
	assert.Contains(t, out, "Current to-do list:\nThe to-do list is empty.\n")
}

func TestLoop_RemoveOnEmptyDoesNotPrompt(t *testing.T) {
	out, _ := run(t, todo.New(), "2\n5\n")

	assert.Contains(t, out, "The to-do list is empty. Nothing to remove.\n")
	assert.NotContains(t, out, "Enter the item number to remove: ")
}

func TestLoop_Remove(t *testing.T) {
	store := todo.New()
	require.NoError(t, store.Add("a"))
	require.NoError(t, store.Add("b"))
	out, _ := run(t, store, "2\n1\n5\n")

	assert.Contains(t, out, "Enter the item number to remove: Item removed.\n")
	assert.Equal(t, []string{"b"}, store.Items())
}

func TestLoop_RemoveMissingNumber(t *testing.T) {
	store := todo.New()
	require.NoError(t, store.Add("a"))
	out, _ := run(t, store, "2\n7\n2\n0\n5\n")

	assert.Equal(t, 2, strings.Count(out, "That item number does not exist.\n"))
	assert.Equal(t, 1, store.Len())
}

func TestLoop_RemoveMalformedNumber(t *testing.T) {
	store := todo.New()
	require.NoError(t, store.Add("a"))
	out, _ := run(t, store, "2\nfirst\n5\n")

	assert.Contains(t, out, "Invalid option. Please choose a number from 1 to 5.\n")
	assert.Equal(t, 1, store.Len())
}

func TestLoop_EditOnEmptyDoesNotPrompt(t *testing.T) {
	out, _ := run(t, todo.New(), "3\n5\n")

	assert.Contains(t, out, "The to-do list is empty. Nothing to edit.\n")
	assert.NotContains(t, out, "Enter the item number to edit: ")
}

func TestLoop_Edit(t *testing.T) {
	store := todo.New()
	require.NoError(t, store.Add("X"))
	out, _ := run(t, store, "3\n1\nY\n5\n")

	assert.Contains(t, out, "Enter the item number to edit: Enter the new description: Item updated.\n")
	got, err := store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Y", got)
	assert.Equal(t, 1, store.Len())
}

func TestLoop_EditBlankReportedBeforeBounds(t *testing.T) {
	store := todo.New()
	require.NoError(t, store.Add("X"))
	out, _ := run(t, store, "3\n9\n \n3\n9\nZ\n5\n")

	assert.Contains(t, out, "New description cannot be empty.\n")
	assert.Contains(t, out, "That item number does not exist.\n")
	assert.Equal(t, []string{"X"}, store.Items())
}

func TestLoop_EndOfInputStops(t *testing.T) {
	store := todo.New()
	out, l := run(t, store, "1\nlast line without newline")

	assert.Equal(t, Stopped, l.State())
	assert.Equal(t, []string{"last line without newline"}, store.Items())
	assert.NotContains(t, out, "Goodbye!")
}

func TestLoop_EndOfInputMidPrompt(t *testing.T) {
	store := todo.New()
	require.NoError(t, store.Add("a"))
	_, l := run(t, store, "3\n1\n")

	assert.Equal(t, Stopped, l.State())
	assert.Equal(t, []string{"a"}, store.Items())
}

func TestLoop_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	l := New(strings.NewReader("4\n"), &out, todo.New())
	err := l.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "Welcome to the To-Do List App!\n", out.String())
	assert.Equal(t, Running, l.State())
}

type brokenStore struct {
	*todo.List
}

func (brokenStore) Add(string) error {
	return errors.New("disk on fire")
}

func TestLoop_UnexpectedStoreErrorEndsRun(t *testing.T) {
	var out bytes.Buffer
	l := New(strings.NewReader("1\nitem\n5\n"), &out, brokenStore{todo.New()})

	err := l.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestLoop_LogsDispatchAtDebug(t *testing.T) {
	var logs, out bytes.Buffer
	l := New(strings.NewReader("4\n5\n"), &out, todo.New(),
		WithLogger(logging.NewWithWriter(&logs, slog.LevelDebug)))
	require.NoError(t, l.Run(context.Background()))

	assert.Contains(t, logs.String(), "dispatch")
	assert.NotContains(t, out.String(), "dispatch")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
}

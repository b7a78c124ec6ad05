// Package console runs the numbered text menu over a todo.Store.
//
// The loop reads one line at a time. Store errors and malformed numbers are turned into
// messages at a single boundary (report) and never end the loop; only the Exit choice,
// end of input, a cancelled context or a non-domain store error do.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"todolist/internal/logging"
	"todolist/internal/todo"
)

const (
	welcomeMessage = "Welcome to the To-Do List App!"
	menuHeader     = "==== TO-DO LIST MENU ===="
	choicePrompt   = "Choose an option (1-5): "
	invalidOption  = "Invalid option. Please choose a number from 1 to 5."
	noSuchItem     = "That item number does not exist."
	goodbyeMessage = "Goodbye!"
	listHeading    = "Current to-do list:"
	addPrompt      = "Enter the new to-do item: "
	removePrompt   = "Enter the item number to remove: "
	editPrompt     = "Enter the item number to edit: "
	editTextPrompt = "Enter the new description: "
	emptyNoRemove  = "The to-do list is empty. Nothing to remove."
	emptyNoEdit    = "The to-do list is empty. Nothing to edit."
	addedMessage   = "Item added."
	removedMessage = "Item removed."
	updatedMessage = "Item updated."

	lineTerminators = "\r\n"
)

const (
	choiceAdd = iota + 1
	choiceRemove
	choiceEdit
	choiceDisplay
	choiceExit
)

var menuEntries = []string{
	"1. Add new item",
	"2. Remove an item",
	"3. Edit an item",
	"4. Display all items",
	"5. Exit",
}

var errInvalidOption = errors.New("invalid option")

type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

type Loop struct {
	in    *bufio.Reader
	out   io.Writer
	store todo.Store
	log   *slog.Logger
	state State
}

type Option func(*Loop)

func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// New builds a loop that owns store for its lifetime.
func New(in io.Reader, out io.Writer, store todo.Store, opts ...Option) *Loop {
	l := &Loop{
		in:    bufio.NewReader(in),
		out:   out,
		store: store,
		log:   logging.NewNop(),
		state: Running,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) State() State {
	return l.state
}

// Run shows the menu until the user exits or input ends. Both return nil.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, welcomeMessage)

	for l.state == Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.printMenu()
		if err := l.step(); err != nil {
			if errors.Is(err, io.EOF) {
				l.log.Debug("input closed")
				l.state = Stopped
				return nil
			}
			return err
		}
		fmt.Fprintln(l.out)
	}
	return nil
}

func (l *Loop) printMenu() {
	fmt.Fprintln(l.out, menuHeader)
	for _, entry := range menuEntries {
		fmt.Fprintln(l.out, entry)
	}
}

func (l *Loop) step() error {
	fmt.Fprint(l.out, choicePrompt)
	choice, err := l.readInt()
	if err == nil {
		err = l.dispatch(choice)
	}
	return l.report(err)
}

// report prints recoverable errors and passes everything else through.
func (l *Loop) report(err error) error {
	var verr *todo.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errInvalidOption):
		fmt.Fprintln(l.out, invalidOption)
	case errors.As(err, &verr):
		fmt.Fprintln(l.out, verr.Message)
	case errors.Is(err, todo.ErrIndexOutOfRange):
		fmt.Fprintln(l.out, noSuchItem)
	default:
		return err
	}
	l.log.Debug("recovered", "error", err)
	return nil
}

func (l *Loop) dispatch(choice int) error {
	if choice < choiceAdd || choice > choiceExit {
		return errInvalidOption
	}
	l.log.Debug("dispatch", "choice", choice)

	switch choice {
	case choiceAdd:
		return l.handleAdd()
	case choiceRemove:
		return l.handleRemove()
	case choiceEdit:
		return l.handleEdit()
	case choiceDisplay:
		l.display()
	case choiceExit:
		fmt.Fprintln(l.out, goodbyeMessage)
		l.state = Stopped
	}
	return nil
}

func (l *Loop) handleAdd() error {
	fmt.Fprint(l.out, addPrompt)
	text, err := l.readLine()
	if err != nil {
		return err
	}
	if err := l.store.Add(text); err != nil {
		return err
	}
	l.log.Debug("item added", "count", l.store.Len())
	fmt.Fprintln(l.out, addedMessage)
	l.display()
	return nil
}

func (l *Loop) handleRemove() error {
	if l.store.Len() == 0 {
		fmt.Fprintln(l.out, emptyNoRemove)
		return nil
	}
	l.display()
	fmt.Fprint(l.out, removePrompt)
	number, err := l.readInt()
	if err != nil {
		return err
	}
	if err := l.store.RemoveAt(number - 1); err != nil {
		return err
	}
	l.log.Debug("item removed", "number", number, "count", l.store.Len())
	fmt.Fprintln(l.out, removedMessage)
	l.display()
	return nil
}

func (l *Loop) handleEdit() error {
	if l.store.Len() == 0 {
		fmt.Fprintln(l.out, emptyNoEdit)
		return nil
	}
	l.display()
	fmt.Fprint(l.out, editPrompt)
	number, err := l.readInt()
	if err != nil {
		return err
	}
	fmt.Fprint(l.out, editTextPrompt)
	text, err := l.readLine()
	if err != nil {
		return err
	}
	if err := l.store.EditAt(number-1, text); err != nil {
		return err
	}
	l.log.Debug("item updated", "number", number)
	fmt.Fprintln(l.out, updatedMessage)
	l.display()
	return nil
}

func (l *Loop) display() {
	fmt.Fprintln(l.out, listHeading)
	fmt.Fprintln(l.out, l.store.Formatted())
}

// readLine returns the next line without its terminator. A final line
// with no newline is still returned; io.EOF comes on the following call.
func (l *Loop) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, lineTerminators), nil
}

// readInt skips blank lines, parses the first token of the next line
// and discards whatever follows it.
func (l *Loop) readInt() (int, error) {
	for {
		line, err := l.readLine()
		if err != nil {
			return 0, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, errInvalidOption
		}
		return n, nil
	}
}

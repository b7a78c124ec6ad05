package todo

import (
	"runtime"
	"strconv"
	"strings"
)

const (
	EmptyListMessage = "The to-do list is empty."

	addEmptyMessage  = "Item description cannot be empty."
	editEmptyMessage = "New description cannot be empty."
)

// Store is an ordered collection of non-blank text items.
// Positions are zero-based; callers translate from the 1-based numbers users see.
type Store interface {
	Add(text string) error
	RemoveAt(index int) error
	// EditAt validates text before checking index, so a blank
	// replacement is reported even when index is also out of range.
	EditAt(index int, text string) error
	Len() int
	Get(index int) (string, error)
	Items() []string
	Formatted() string
}

// LineBreak terminates every line of a formatted list.
var LineBreak = lineBreakFor(runtime.GOOS)

func lineBreakFor(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Validate returns a *ValidationError carrying message when text is blank.
func Validate(text, message string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Message: message}
	}
	return nil
}

// ValidateNew checks text passed to Add.
func ValidateNew(text string) error {
	return Validate(text, addEmptyMessage)
}

// ValidateEdit checks text passed to EditAt.
func ValidateEdit(text string) error {
	return Validate(text, editEmptyMessage)
}

// CheckIndex returns an *IndexError unless 0 <= index < n.
func CheckIndex(index, n int) error {
	if index < 0 || index >= n {
		return &IndexError{Index: index, Len: n}
	}
	return nil
}

// Format renders items as "1. first", "2. second", ... one per line.
func Format(items []string) string {
	if len(items) == 0 {
		return EmptyListMessage
	}
	var b strings.Builder
	for i, item := range items {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(item)
		b.WriteString(LineBreak)
	}
	return b.String()
}

package todo

import "slices"

var _ Store = (*List)(nil)

// List is the in-memory Store. It is not safe for concurrent use.
type List struct {
	items []string
}

func New() *List {
	return &List{}
}

func (l *List) Add(text string) error {
	if err := ValidateNew(text); err != nil {
		return err
	}
	l.items = append(l.items, text)
	return nil
}

func (l *List) RemoveAt(index int) error {
	if err := CheckIndex(index, len(l.items)); err != nil {
		return err
	}
	l.items = slices.Delete(l.items, index, index+1)
	return nil
}

func (l *List) EditAt(index int, text string) error {
	if err := ValidateEdit(text); err != nil {
		return err
	}
	if err := CheckIndex(index, len(l.items)); err != nil {
		return err
	}
	l.items[index] = text
	return nil
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) Get(index int) (string, error) {
	if err := CheckIndex(index, len(l.items)); err != nil {
		return "", err
	}
	return l.items[index], nil
}

func (l *List) Items() []string {
	return slices.Clone(l.items)
}

func (l *List) Formatted() string {
	return Format(l.items)
}

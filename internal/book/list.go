// Package book implements the in-memory record engine: ordered lists of
// unique records with change notification, a linear undo/redo history over
// them, live filtered views, and a selection that stays valid as its view
// changes. Nothing in this package is safe for concurrent use.
package book

import (
	"fmt"
	"slices"
)

// Entity is the contract a record type must satisfy to live in a List.
// SameAs is the weak identity used for uniqueness; Equal compares every
// attribute.
type Entity[T any] interface {
	SameAs(other T) bool
	Equal(other T) bool
	fmt.Stringer
}

// List is an ordered collection of records in which no two records are
// SameAs each other.
type List[T Entity[T]] struct {
	notifier[T]
	items []T
}

// NewList returns a list holding items in order, or an error if two of them
// are the same entity.
func NewList[T Entity[T]](items ...T) (*List[T], error) {
	l := &List[T]{}
	for _, r := range items {
		if l.Has(r) {
			return nil, duplicate("load", r)
		}
		l.items = append(l.items, r)
	}
	return l, nil
}

func (l *List[T]) indexOf(r T) int {
	return slices.IndexFunc(l.items, func(x T) bool { return x.SameAs(r) })
}

// Has reports whether a record that is the same entity as r is present
func (l *List[T]) Has(r T) bool {
	return l.indexOf(r) >= 0
}

// Add appends r
func (l *List[T]) Add(r T) error {
	if l.Has(r) {
		return duplicate("add", r)
	}
	l.items = append(l.items, r)
	l.emit(Change[T]{From: len(l.items) - 1, Added: []T{r}})
	return nil
}

// Remove deletes the record that is the same entity as r
func (l *List[T]) Remove(r T) error {
	i := l.indexOf(r)
	if i < 0 {
		return notFound("remove", r)
	}
	old := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.emit(Change[T]{From: i, Removed: []T{old}})
	return nil
}

// Replace swaps target for replacement in place. replacement may be the same
// entity as target, but not the same entity as any other record.
func (l *List[T]) Replace(target, replacement T) error {
	i := l.indexOf(target)
	if i < 0 {
		return notFound("replace", target)
	}
	if !target.SameAs(replacement) && l.Has(replacement) {
		return duplicate("replace", replacement)
	}
	old := l.items[i]
	l.items[i] = replacement
	l.emit(Change[T]{From: i, Removed: []T{old}, Added: []T{replacement}})
	return nil
}

// Reset replaces the whole contents with items, in order. Items are trusted
// and not checked for duplicates.
func (l *List[T]) Reset(items []T) {
	old := l.items
	l.items = slices.Clone(items)
	if len(old) == 0 && len(l.items) == 0 {
		return
	}
	l.emit(Change[T]{From: 0, Removed: old, Added: slices.Clone(l.items)})
}

// Items returns a copy of the contents
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the record at index i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Equal reports whether other holds fully equal records in the same order
func (l *List[T]) Equal(other *List[T]) bool {
	return equalAll(l.items, other.items)
}

func equalAll[T Entity[T]](a, b []T) bool {
	return slices.EqualFunc(a, b, func(x, y T) bool { return x.Equal(y) })
}

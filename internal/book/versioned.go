package book

import "slices"

// Versioned is a List with a linear history of committed snapshots and a
// cursor marking the live one. Committing after an undo drops every snapshot
// past the cursor.
type Versioned[T Entity[T]] struct {
	*List[T]
	history [][]T
	cursor  int
}

// NewVersioned returns a versioned list whose first snapshot is initial
func NewVersioned[T Entity[T]](initial ...T) (*Versioned[T], error) {
	l, err := NewList(initial...)
	if err != nil {
		return nil, err
	}
	return &Versioned[T]{
		List:    l,
		history: [][]T{l.Items()},
	}, nil
}

// Commit records the live contents as a new snapshot after the cursor
func (v *Versioned[T]) Commit() {
	v.history = append(v.history[:v.cursor+1], v.List.Items())
	v.cursor = len(v.history) - 1
}

// Undo restores the previous snapshot
func (v *Versioned[T]) Undo() error {
	if !v.CanUndo() {
		return ErrNothingToUndo
	}
	v.cursor--
	v.List.Reset(v.history[v.cursor])
	return nil
}

// Redo restores the snapshot undone most recently
func (v *Versioned[T]) Redo() error {
	if !v.CanRedo() {
		return ErrNothingToRedo
	}
	v.cursor++
	v.List.Reset(v.history[v.cursor])
	return nil
}

func (v *Versioned[T]) CanUndo() bool {
	return v.cursor > 0
}

func (v *Versioned[T]) CanRedo() bool {
	return v.cursor < len(v.history)-1
}

// Cursor returns the index of the live snapshot
func (v *Versioned[T]) Cursor() int {
	return v.cursor
}

// Snapshots returns the number of snapshots in the history
func (v *Versioned[T]) Snapshots() int {
	return len(v.history)
}

// Snapshot returns a copy of the snapshot at index i
func (v *Versioned[T]) Snapshot(i int) []T {
	return slices.Clone(v.history[i])
}

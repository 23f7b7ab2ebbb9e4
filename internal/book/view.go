package book

import "slices"

// Predicate selects the records a View shows
type Predicate[T any] func(T) bool

// ShowAll is the default predicate
func ShowAll[T any](T) bool { return true }

// View is a live, order-preserving projection of a List through a
// predicate. Changes to the source are translated into view-relative changes
// and forwarded to the view's own listeners before the source call returns.
type View[T Entity[T]] struct {
	notifier[T]
	source  *List[T]
	pred    Predicate[T]
	visible []T
	cancel  func()
}

// NewView binds a view showing every record of source
func NewView[T Entity[T]](source *List[T]) *View[T] {
	v := &View[T]{source: source, pred: ShowAll[T]}
	v.visible = v.filter(source.items)
	v.cancel = source.Subscribe(v.onSourceChange)
	return v
}

// Close detaches the view from its source
func (v *View[T]) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// SetPredicate replaces the predicate; nil shows everything. The listeners
// see one change replacing the old contents with the new, and nothing at all
// when the visible contents are unchanged.
func (v *View[T]) SetPredicate(p Predicate[T]) {
	if p == nil {
		p = ShowAll[T]
	}
	old := v.visible
	v.pred = p
	v.visible = v.filter(v.source.items)
	if equalAll(old, v.visible) {
		return
	}
	v.emit(Change[T]{From: 0, Removed: old, Added: slices.Clone(v.visible)})
}

func (v *View[T]) onSourceChange(c Change[T]) {
	from := 0
	for _, r := range v.source.items[:c.From] {
		if v.pred(r) {
			from++
		}
	}
	removed := v.filter(c.Removed)
	added := v.filter(c.Added)
	v.visible = v.filter(v.source.items)
	if len(removed) == 0 && len(added) == 0 {
		return
	}
	v.emit(Change[T]{From: from, Removed: removed, Added: added})
}

func (v *View[T]) filter(items []T) []T {
	var out []T
	for _, r := range items {
		if v.pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Items returns a copy of the visible records
func (v *View[T]) Items() []T {
	return slices.Clone(v.visible)
}

func (v *View[T]) Len() int {
	return len(v.visible)
}

// At returns the visible record at index i. It panics if i is out of range.
func (v *View[T]) At(i int) T {
	return v.visible[i]
}

// Index returns the position of a record fully equal to r, or -1
func (v *View[T]) Index(r T) int {
	return slices.IndexFunc(v.visible, func(x T) bool { return x.Equal(r) })
}

// Contains reports whether a record fully equal to r is visible
func (v *View[T]) Contains(r T) bool {
	return v.Index(r) >= 0
}

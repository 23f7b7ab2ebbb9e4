package book

import "slices"

// Selection tracks at most one record of a View and keeps it pointing at a
// visible record as the view changes:
//
//   - a same-size replacement that covers the selection follows it to the
//     record now at the same position;
//   - a removal of the selected entity moves the selection to the record just
//     before the removal point, or clears it when there is none;
//   - any other change leaves it alone.
type Selection[T Entity[T]] struct {
	view     *View[T]
	selected T
	ok       bool
	cancel   func()
}

// NewSelection returns an empty selection bound to view
func NewSelection[T Entity[T]](view *View[T]) *Selection[T] {
	s := &Selection[T]{view: view}
	s.cancel = view.Subscribe(s.reconcile)
	return s
}

// Close detaches the selection from its view
func (s *Selection[T]) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Selected returns the selected record and whether there is one
func (s *Selection[T]) Selected() (T, bool) {
	return s.selected, s.ok
}

// Select makes r the selection. r must be visible in the bound view.
func (s *Selection[T]) Select(r T) error {
	if !s.view.Contains(r) {
		return notFound("select", r)
	}
	s.selected, s.ok = r, true
	return nil
}

// Clear drops the selection
func (s *Selection[T]) Clear() {
	var zero T
	s.selected, s.ok = zero, false
}

func (s *Selection[T]) reconcile(c Change[T]) {
	if !s.ok {
		return
	}

	if c.WasReplaced() && len(c.Added) == len(c.Removed) {
		i := slices.IndexFunc(c.Removed, func(r T) bool { return r.Equal(s.selected) })
		if i >= 0 {
			s.selected = c.Added[i]
			return
		}
	}

	removed := slices.ContainsFunc(c.Removed, func(r T) bool { return s.selected.SameAs(r) })
	if !removed {
		return
	}
	if c.From > 0 && s.view.Len() > 0 {
		s.selected = s.view.At(c.From - 1)
		return
	}
	s.Clear()
}

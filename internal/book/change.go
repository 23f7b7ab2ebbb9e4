package book

// Change describes one contiguous mutation of a list. From is the index in
// the resulting list where the removed elements used to start and where the
// added elements now start.
type Change[T any] struct {
	From    int
	Removed []T
	Added   []T
}

// WasAdded reports whether the change inserted elements
func (c Change[T]) WasAdded() bool {
	return len(c.Added) > 0
}

// WasRemoved reports whether the change dropped elements
func (c Change[T]) WasRemoved() bool {
	return len(c.Removed) > 0
}

// WasReplaced reports whether elements were both removed and added at From
func (c Change[T]) WasReplaced() bool {
	return c.WasAdded() && c.WasRemoved()
}

// Listener receives changes synchronously, before the mutating call returns
type Listener[T any] func(Change[T])

type subscription[T any] struct {
	id int
	fn Listener[T]
}

// notifier fans a change out to its listeners in subscription order
type notifier[T any] struct {
	subs   []subscription[T]
	nextID int
}

// Subscribe registers fn and returns a function that removes it again
func (n *notifier[T]) Subscribe(fn Listener[T]) (cancel func()) {
	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscription[T]{id: id, fn: fn})
	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

func (n *notifier[T]) emit(c Change[T]) {
	for _, s := range n.subs {
		s.fn(c)
	}
}

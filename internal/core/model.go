// Package core composes the record engine into the contact model used by
// command handlers, and implements the commands themselves.
package core

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/kilupskalvis/abook/internal/book"
	"github.com/kilupskalvis/abook/internal/models"
)

// Contents holds the live records of each collection
type Contents map[models.Kind][]models.Contact

// Model owns the active, archive and pin collections, a filtered view of
// each, a selection over the active view and one over the pin view, and the
// user preferences.
// Every exported method holds one lock for its whole duration.
type Model struct {
	mu        sync.Mutex
	logger    *slog.Logger
	books     [3]*book.Versioned[models.Contact]
	views     [3]*book.View[models.Contact]
	selection *book.Selection[models.Contact]
	pinned    *book.Selection[models.Contact]
	prefs     models.Preferences
}

// Option customises NewModel
type Option func(*Model)

// WithLogger sets the logger structural changes are reported to
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel builds a model whose collections start at data. A missing kind
// starts empty. The loaded contents become each collection's first snapshot.
func NewModel(data Contents, prefs models.Preferences, opts ...Option) (*Model, error) {
	m := &Model{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		prefs:  prefs,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, kind := range models.AllKinds() {
		v, err := book.NewVersioned(data[kind]...)
		if err != nil {
			return nil, fmt.Errorf("load %s collection: %w", kind, err)
		}
		m.books[kind] = v
		m.views[kind] = book.NewView(v.List)
	}
	m.selection = book.NewSelection(m.views[models.KindActive])
	m.pinned = book.NewSelection(m.views[models.KindPin])

	m.logger.Debug("model initialized",
		"active", m.books[models.KindActive].Len(),
		"archive", m.books[models.KindArchive].Len(),
		"pin", m.books[models.KindPin].Len(),
	)
	return m, nil
}

// ==================== Preferences ====================

func (m *Model) Preferences() models.Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

func (m *Model) SetPreferences(p models.Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = p
}

func (m *Model) SetGuiSettings(g models.GuiSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.Gui = g
}

// SetCollectionPath changes where kind is persisted. Empty paths are rejected.
func (m *Model) SetCollectionPath(kind models.Kind, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.prefs.WithCollectionPath(kind, path)
	if err != nil {
		return err
	}
	m.prefs = p
	return nil
}

// ==================== Queries ====================

// Has reports whether kind holds a contact that is the same entity as c
func (m *Model) Has(kind models.Kind, c models.Contact) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[kind].Has(c)
}

// Items returns every contact of kind, ignoring the filter
func (m *Model) Items(kind models.Kind) []models.Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[kind].Items()
}

// Visible returns the contacts of kind that pass its current filter
func (m *Model) Visible(kind models.Kind) []models.Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.views[kind].Items()
}

// VisibleAt returns the contact at the one-based index of kind's filtered list
func (m *Model) VisibleAt(kind models.Kind, index int) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.views[kind]
	if index < 1 || index > v.Len() {
		return models.Contact{}, &IndexError{Index: index, Size: v.Len()}
	}
	return v.At(index - 1), nil
}

// Snapshot returns the live contents of every collection
func (m *Model) Snapshot() Contents {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(Contents, len(m.books))
	for _, kind := range models.AllKinds() {
		out[kind] = m.books[kind].Items()
	}
	return out
}

// ==================== Filters ====================

// SetFilter replaces kind's predicate; nil shows everything
func (m *Model) SetFilter(kind models.Kind, pred book.Predicate[models.Contact]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[kind].SetPredicate(pred)
}

// ==================== Active collection ====================

// Add appends c to the active collection and shows every active contact
func (m *Model) Add(c models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.books[models.KindActive].Add(c); err != nil {
		return err
	}
	m.views[models.KindActive].SetPredicate(nil)
	m.logger.Debug("contact added", "name", c.Name())
	return nil
}

// Delete removes c from the active collection
func (m *Model) Delete(c models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.books[models.KindActive].Remove(c); err != nil {
		return err
	}
	m.logger.Debug("contact deleted", "name", c.Name())
	return nil
}

// Update replaces target with edited in the active collection
func (m *Model) Update(target, edited models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.books[models.KindActive].Replace(target, edited); err != nil {
		return err
	}
	m.logger.Debug("contact updated", "name", target.Name(), "new_name", edited.Name())
	return nil
}

// ResetData replaces kind's live contents without recording history
func (m *Model) ResetData(kind models.Kind, items []models.Contact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[kind].Reset(items)
	m.logger.Debug("collection reset", "collection", kind.String(), "count", len(items))
}

// ==================== Moves ====================

// Archive moves c from the active collection to the archive
func (m *Model) Archive(c models.Contact) error {
	return m.move("archive", c, models.KindActive, models.KindArchive)
}

// Unarchive moves c from the archive back to the active collection
func (m *Model) Unarchive(c models.Contact) error {
	return m.move("unarchive", c, models.KindArchive, models.KindActive)
}

// Pin moves c from the active collection to the pin collection
func (m *Model) Pin(c models.Contact) error {
	return m.move("pin", c, models.KindActive, models.KindPin)
}

// Unpin moves c from the pin collection back to the active collection
func (m *Model) Unpin(c models.Contact) error {
	return m.move("unpin", c, models.KindPin, models.KindActive)
}

// move adds c to dst and removes it from src, then resets the active filter.
// Preconditions are checked first so a failure changes nothing.
func (m *Model) move(op string, c models.Contact, src, dst models.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, to := m.books[src], m.books[dst]
	if !from.Has(c) {
		return &book.RecordError{Op: op, Record: c.String(), Err: book.ErrRecordNotFound}
	}
	if err := to.Add(c); err != nil {
		return err
	}
	if err := from.Remove(c); err != nil {
		return err
	}
	m.views[models.KindActive].SetPredicate(nil)

	m.logger.Debug("contact moved", "op", op, "name", c.Name(), "from", src.String(), "to", dst.String())
	return nil
}

// ==================== History ====================

// Commit records kind's live contents in its history
func (m *Model) Commit(kind models.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[kind].Commit()
}

// Undo restores kind's previous snapshot
func (m *Model) Undo(kind models.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.books[kind].Undo(); err != nil {
		return err
	}
	m.logger.Debug("undo", "collection", kind.String(), "cursor", m.books[kind].Cursor())
	return nil
}

// Redo restores kind's most recently undone snapshot
func (m *Model) Redo(kind models.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.books[kind].Redo(); err != nil {
		return err
	}
	m.logger.Debug("redo", "collection", kind.String(), "cursor", m.books[kind].Cursor())
	return nil
}

func (m *Model) CanUndo(kind models.Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[kind].CanUndo()
}

func (m *Model) CanRedo(kind models.Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[kind].CanRedo()
}

// ==================== Selection ====================

// Selected returns the selected active contact, if any
func (m *Model) Selected() (models.Contact, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection.Selected()
}

// Select makes c the selection; c must be visible in the active list
func (m *Model) Select(c models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection.Select(c)
}

func (m *Model) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection.Clear()
}

// SelectedPin returns the selected pinned contact, if any
func (m *Model) SelectedPin() (models.Contact, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pinned.Selected()
}

// SelectPin makes c the pinned selection; c must be visible in the pin list
func (m *Model) SelectPin(c models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pinned.Select(c)
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilupskalvis/abook/internal/book"
	"github.com/kilupskalvis/abook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	amy = models.MustContact("Amy Bee", "85355255", "amy@gmail.com", "123, Jurong West Ave 6", "friends")
	bob = models.MustContact("Bob Choo", "22222222", "bob@example.com", "Block 123, Bobby Street 3", "husband", "friend")
	cat = models.MustContact("Cat Dee", "33333", "cat@example.com", "catnip lane")
)

var backends = []Backend{BackendBolt, BackendSQLite}

// newTestStore creates a store of the given backend in a temp directory for testing.
func newTestStore(t *testing.T, backend Backend) *Store {
	t.Helper()
	st, err := New(t.TempDir(), backend)
	require.NoError(t, err)
	return st
}

// forEachBackend runs fn once per backend as a subtest
func forEachBackend(t *testing.T, fn func(t *testing.T, st *Store)) {
	for _, b := range backends {
		t.Run(string(b), func(t *testing.T) {
			fn(t, newTestStore(t, b))
		})
	}
}

// ==================== Backend Tests ====================

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendBolt, b)

	b, err = ParseBackend("sqlite")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, b)

	_, err = ParseBackend("csv")
	assert.Error(t, err)

	_, err = New(t.TempDir(), Backend("csv"))
	assert.Error(t, err)
}

// ==================== Collection Tests ====================

func TestStore_CollectionRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		want := []models.Contact{bob, amy, cat}

		require.NoError(t, st.SaveCollection(ctx, models.KindActive, want))

		got, err := st.LoadCollection(ctx, models.KindActive)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestStore_SaveReplacesContents(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		require.NoError(t, st.SaveCollection(ctx, models.KindPin, []models.Contact{amy, bob, cat}))
		require.NoError(t, st.SaveCollection(ctx, models.KindPin, []models.Contact{cat}))

		got, err := st.LoadCollection(ctx, models.KindPin)
		require.NoError(t, err)
		assert.Equal(t, []models.Contact{cat}, got)
	})
}

func TestStore_EmptyCollection(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		require.NoError(t, st.SaveCollection(ctx, models.KindArchive, nil))

		got, err := st.LoadCollection(ctx, models.KindArchive)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_CollectionsAreIndependent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		require.NoError(t, st.SaveCollection(ctx, models.KindActive, []models.Contact{amy}))
		require.NoError(t, st.SaveCollection(ctx, models.KindArchive, []models.Contact{bob}))

		active, err := st.LoadCollection(ctx, models.KindActive)
		require.NoError(t, err)
		archive, err := st.LoadCollection(ctx, models.KindArchive)
		require.NoError(t, err)

		assert.Equal(t, []models.Contact{amy}, active)
		assert.Equal(t, []models.Contact{bob}, archive)
	})
}

func TestStore_MissingCollection(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *Store) {
		_, err := st.LoadCollection(context.Background(), models.KindPin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_CollectionInNestedDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, st *Store) {
		ctx := context.Background()
		prefs := models.DefaultPreferences(t.TempDir())
		prefs, err := prefs.WithCollectionPath(models.KindActive, filepath.Join(t.TempDir(), "a", "b", "book.db"))
		require.NoError(t, err)
		require.NoError(t, st.SavePreferences(prefs))

		require.NoError(t, st.SaveCollection(ctx, models.KindActive, []models.Contact{amy}))

		_, err = os.Stat(prefs.ActivePath)
		assert.NoError(t, err)
		got, err := st.LoadCollection(ctx, models.KindActive)
		require.NoError(t, err)
		assert.Equal(t, []models.Contact{amy}, got)
	})
}

// ==================== Preferences Tests ====================

func TestStore_PreferencesRoundTrip(t *testing.T) {
	st := newTestStore(t, BackendBolt)
	dir := t.TempDir()
	want := models.Preferences{
		Gui:         models.GuiSettings{Width: 1024, Height: 768.5, X: 10, Y: 20},
		ActivePath:  filepath.Join(dir, "mine.db"),
		ArchivePath: filepath.Join(dir, "old.db"),
		PinPath:     filepath.Join(dir, "top.db"),
	}

	require.NoError(t, st.SavePreferences(want))

	got, err := st.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_MissingPreferences(t *testing.T) {
	st := newTestStore(t, BackendBolt)

	_, err := st.LoadPreferences()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PartialPreferencesKeepDefaults(t *testing.T) {
	st := newTestStore(t, BackendBolt)
	content := "[gui]\nwidth = 800.0\nheight = 500.0\n"
	require.NoError(t, os.WriteFile(st.PreferencesPath(), []byte(content), 0644))

	got, err := st.LoadPreferences()
	require.NoError(t, err)

	dir := filepath.Dir(st.PreferencesPath())
	assert.Equal(t, 800.0, got.Gui.Width)
	assert.Equal(t, filepath.Join(dir, "active.db"), got.ActivePath)
	assert.Equal(t, filepath.Join(dir, "pin.db"), got.PinPath)
}

func TestStore_MalformedPreferences(t *testing.T) {
	st := newTestStore(t, BackendBolt)
	require.NoError(t, os.WriteFile(st.PreferencesPath(), []byte("[gui\nwidth = "), 0644))

	_, err := st.LoadPreferences()

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, st.PreferencesPath(), convErr.Path)
}

func TestStore_EmptyPathInPreferences(t *testing.T) {
	st := newTestStore(t, BackendBolt)
	require.NoError(t, os.WriteFile(st.PreferencesPath(), []byte("archive_path = \"\"\n"), 0644))

	_, err := st.LoadPreferences()

	var convErr *ConversionError
	assert.ErrorAs(t, err, &convErr)
}

// ==================== Conversion Tests ====================

func TestToContacts_InvalidField(t *testing.T) {
	_, err := toContacts("x.db", []contactRecord{{Name: "Amy", Phone: "12", Email: "a@b.c", Address: "here"}})

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	var fieldErr *models.FieldError
	assert.ErrorAs(t, err, &fieldErr)
}

func TestToContacts_DuplicateNames(t *testing.T) {
	rec := toRecord(amy)
	_, err := toContacts("x.db", []contactRecord{rec, rec})

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.ErrorIs(t, err, book.ErrDuplicateRecord)
}

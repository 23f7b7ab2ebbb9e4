package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/kilupskalvis/abook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory Storage with injectable failures
type memStorage struct {
	mu       sync.Mutex
	prefs    *models.Preferences
	data     map[models.Kind][]models.Contact
	loadErrs map[models.Kind]error
	saved    []models.Kind
}

func newMemStorage() *memStorage {
	return &memStorage{
		data:     map[models.Kind][]models.Contact{},
		loadErrs: map[models.Kind]error{},
	}
}

func (m *memStorage) LoadCollection(_ context.Context, kind models.Kind) ([]models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadErrs[kind]; err != nil {
		return nil, err
	}
	c, ok := m.data[kind]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", kind, ErrNotFound)
	}
	return c, nil
}

func (m *memStorage) SaveCollection(_ context.Context, kind models.Kind, contacts []models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[kind] = contacts
	m.saved = append(m.saved, kind)
	return nil
}

func (m *memStorage) LoadPreferences() (models.Preferences, error) {
	if m.prefs == nil {
		return models.Preferences{}, ErrNotFound
	}
	return *m.prefs, nil
}

func (m *memStorage) SavePreferences(p models.Preferences) error {
	m.prefs = &p
	return nil
}

func TestManager_LoadAllDefaultsAbsentData(t *testing.T) {
	st := newMemStorage()
	st.data[models.KindArchive] = []models.Contact{amy}
	defaults := models.DefaultPreferences("/data")

	prefs, data, err := NewManager(st, nil).LoadAll(context.Background(), defaults)
	require.NoError(t, err)

	assert.Equal(t, defaults, prefs)
	assert.Empty(t, data[models.KindActive])
	assert.Equal(t, []models.Contact{amy}, data[models.KindArchive])
	assert.Empty(t, data[models.KindPin])
}

func TestManager_LoadAllConversionIsFatal(t *testing.T) {
	st := newMemStorage()
	st.loadErrs[models.KindPin] = &ConversionError{Path: "pin.db", Err: errors.New("bad")}

	_, _, err := NewManager(st, nil).LoadAll(context.Background(), models.Preferences{})

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Contains(t, err.Error(), "load pin collection")
}

func TestManager_LoadAllIOErrorIsFatal(t *testing.T) {
	st := newMemStorage()
	ioErr := errors.New("disk on fire")
	st.loadErrs[models.KindActive] = ioErr

	_, _, err := NewManager(st, nil).LoadAll(context.Background(), models.Preferences{})

	assert.ErrorIs(t, err, ioErr)
}

func TestManager_SaveAllThenLoadAll(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newTestStore(t, BackendSQLite), nil)
	prefs := models.DefaultPreferences(t.TempDir())
	prefs.Gui.Width = 900
	data := map[models.Kind][]models.Contact{
		models.KindActive:  {amy, bob},
		models.KindArchive: {cat},
	}

	require.NoError(t, m.SaveAll(ctx, prefs, data))

	gotPrefs, got, err := m.LoadAll(ctx, models.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, prefs, gotPrefs)
	assert.Equal(t, []models.Contact{amy, bob}, got[models.KindActive])
	assert.Equal(t, []models.Contact{cat}, got[models.KindArchive])
	assert.Empty(t, got[models.KindPin])
}

func TestManager_SaveAllWritesEveryCollection(t *testing.T) {
	st := newMemStorage()

	require.NoError(t, NewManager(st, nil).SaveAll(context.Background(), models.Preferences{}, nil))

	assert.ElementsMatch(t, models.AllKinds(), st.saved)
	assert.NotNil(t, st.prefs)
}

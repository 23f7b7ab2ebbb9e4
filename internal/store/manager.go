package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/kilupskalvis/abook/internal/models"
	"golang.org/x/sync/errgroup"
)

// Manager loads and saves a whole address book through a Storage. The three
// collections are independent files and are read and written concurrently.
type Manager struct {
	st     Storage
	logger *slog.Logger
}

// NewManager returns a manager over st. A nil logger discards output.
func NewManager(st Storage, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{st: st, logger: logger}
}

// LoadAll reads the preferences and then every collection. Absent data
// starts from defaults; data that cannot be converted, and I/O failures,
// are returned as errors.
func (m *Manager) LoadAll(ctx context.Context, defaults models.Preferences) (models.Preferences, map[models.Kind][]models.Contact, error) {
	prefs, err := m.st.LoadPreferences()
	switch {
	case errors.Is(err, ErrNotFound):
		m.logger.Info("preferences not found, using defaults")
		prefs = defaults
	case err != nil:
		return models.Preferences{}, nil, err
	}

	var mu sync.Mutex
	data := make(map[models.Kind][]models.Contact, len(models.AllKinds()))

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range models.AllKinds() {
		g.Go(func() error {
			contacts, err := m.st.LoadCollection(gctx, kind)
			if errors.Is(err, ErrNotFound) {
				m.logger.Info("collection not found, starting empty", "collection", kind.String())
				contacts, err = nil, nil
			}
			if err != nil {
				return fmt.Errorf("load %s collection: %w", kind, err)
			}
			mu.Lock()
			data[kind] = contacts
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Preferences{}, nil, err
	}
	return prefs, data, nil
}

// SaveAll writes the preferences first, so collections go to the locations
// they name, and then every collection in data.
func (m *Manager) SaveAll(ctx context.Context, prefs models.Preferences, data map[models.Kind][]models.Contact) error {
	if err := m.st.SavePreferences(prefs); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range models.AllKinds() {
		g.Go(func() error {
			if err := m.st.SaveCollection(gctx, kind, data[kind]); err != nil {
				return fmt.Errorf("save %s collection: %w", kind, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	m.logger.Debug("address book saved",
		"active", len(data[models.KindActive]),
		"archive", len(data[models.KindArchive]),
		"pin", len(data[models.KindPin]),
	)
	return nil
}

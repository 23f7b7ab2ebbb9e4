// Package store persists the address book. Each collection lives in its own
// embedded database file (bbolt or SQLite) and the user preferences live in a
// TOML file next to them.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/kilupskalvis/abook/internal/models"
	"github.com/pelletier/go-toml/v2"
)

// PreferencesFile is the name of the preferences file inside the data directory
const PreferencesFile = "preferences.toml"

var (
	// ErrNotFound is returned when a collection or preferences file does not exist
	ErrNotFound = errors.New("not found")
)

// ConversionError reports stored data that exists but could not be decoded
// into valid contacts or preferences.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert data in %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Storage loads and saves the three collections and the preferences
type Storage interface {
	LoadCollection(ctx context.Context, kind models.Kind) ([]models.Contact, error)
	SaveCollection(ctx context.Context, kind models.Kind, contacts []models.Contact) error
	LoadPreferences() (models.Preferences, error)
	SavePreferences(p models.Preferences) error
}

// Backend names a collection file format
type Backend string

const (
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend validates a backend name. The empty string selects bolt.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendBolt:
		return BackendBolt, nil
	case BackendSQLite:
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (want bolt or sqlite)", s)
	}
}

// collectionFile reads and writes one collection at a path
type collectionFile interface {
	read(ctx context.Context, path string) ([]models.Contact, error)
	write(ctx context.Context, path string, contacts []models.Contact) error
}

// Store is the file-backed Storage. Collection locations come from the most
// recently loaded or saved preferences.
type Store struct {
	mu        sync.RWMutex
	prefsPath string
	prefs     models.Preferences
	files     collectionFile
	logger    *slog.Logger
}

var _ Storage = (*Store)(nil)

// Option customises New
type Option func(*Store)

// WithLogger sets the logger file access is reported to
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store rooted at dir. Until preferences are loaded the
// collections are expected at their default locations inside dir.
func New(dir string, backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		prefsPath: filepath.Join(dir, PreferencesFile),
		prefs:     models.DefaultPreferences(dir),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	switch backend {
	case "", BackendBolt:
		s.files = boltBackend{}
	case BackendSQLite:
		s.files = sqliteBackend{}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PreferencesPath returns the location of the preferences file
func (s *Store) PreferencesPath() string {
	return s.prefsPath
}

func (s *Store) collectionPath(kind models.Kind) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.CollectionPath(kind)
}

// LoadCollection reads kind's contacts in stored order
func (s *Store) LoadCollection(ctx context.Context, kind models.Kind) ([]models.Contact, error) {
	path := s.collectionPath(kind)
	contacts, err := s.files.read(ctx, path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("collection loaded", "collection", kind.String(), "path", path, "count", len(contacts))
	return contacts, nil
}

// SaveCollection replaces kind's stored contents with contacts
func (s *Store) SaveCollection(ctx context.Context, kind models.Kind, contacts []models.Contact) error {
	path := s.collectionPath(kind)
	if err := s.files.write(ctx, path, contacts); err != nil {
		return err
	}
	s.logger.Debug("collection saved", "collection", kind.String(), "path", path, "count", len(contacts))
	return nil
}

// LoadPreferences reads the preferences file. Keys missing from the file keep
// their default values.
func (s *Store) LoadPreferences() (models.Preferences, error) {
	data, err := os.ReadFile(s.prefsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Preferences{}, fmt.Errorf("preferences %s: %w", s.prefsPath, ErrNotFound)
		}
		return models.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.DefaultPreferences(filepath.Dir(s.prefsPath))
	if err := toml.Unmarshal(data, &p); err != nil {
		return models.Preferences{}, &ConversionError{Path: s.prefsPath, Err: err}
	}
	for _, kind := range models.AllKinds() {
		if p.CollectionPath(kind) == "" {
			return models.Preferences{}, &ConversionError{Path: s.prefsPath, Err: fmt.Errorf("%s collection path is empty", kind)}
		}
	}
	s.prefs = p
	return p, nil
}

// SavePreferences writes p to the preferences file and uses its collection
// locations from then on.
func (s *Store) SavePreferences(p models.Preferences) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.prefsPath), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(s.prefsPath, data, 0644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}

	s.mu.Lock()
	s.prefs = p
	s.mu.Unlock()
	return nil
}

// ensureDir creates the parent directory of path
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	return nil
}

// exists reports whether path is present, mapping absence to ErrNotFound
func exists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("collection %s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}

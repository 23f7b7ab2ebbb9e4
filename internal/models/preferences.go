package models

import (
	"fmt"
	"path/filepath"
)

// GuiSettings holds window geometry
type GuiSettings struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	X      int     `toml:"x" json:"x"`
	Y      int     `toml:"y" json:"y"`
}

// DefaultGuiSettings returns the geometry used when no preferences exist
func DefaultGuiSettings() GuiSettings {
	return GuiSettings{Width: 740, Height: 600}
}

// Preferences holds the user's GUI settings and the locations of the
// three persisted collections.
type Preferences struct {
	Gui         GuiSettings `toml:"gui" json:"gui"`
	ActivePath  string      `toml:"active_path" json:"active_path"`
	ArchivePath string      `toml:"archive_path" json:"archive_path"`
	PinPath     string      `toml:"pin_path" json:"pin_path"`
}

// DefaultPreferences returns preferences with collection files placed under dir
func DefaultPreferences(dir string) Preferences {
	return Preferences{
		Gui:         DefaultGuiSettings(),
		ActivePath:  filepath.Join(dir, "active.db"),
		ArchivePath: filepath.Join(dir, "archive.db"),
		PinPath:     filepath.Join(dir, "pin.db"),
	}
}

// CollectionPath returns the file location configured for kind
func (p Preferences) CollectionPath(kind Kind) string {
	switch kind {
	case KindArchive:
		return p.ArchivePath
	case KindPin:
		return p.PinPath
	default:
		return p.ActivePath
	}
}

// WithCollectionPath returns a copy of p with kind's location set to path
func (p Preferences) WithCollectionPath(kind Kind, path string) (Preferences, error) {
	if path == "" {
		return p, fmt.Errorf("%s collection path must not be empty", kind)
	}
	switch kind {
	case KindActive:
		p.ActivePath = path
	case KindArchive:
		p.ArchivePath = path
	case KindPin:
		p.PinPath = path
	default:
		return p, fmt.Errorf("unknown collection kind %d", kind)
	}
	return p, nil
}

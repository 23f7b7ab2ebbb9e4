package models

import (
	"fmt"
	"strings"
)

// Kind identifies one of the three contact collections
type Kind int

const (
	KindActive Kind = iota
	KindArchive
	KindPin
)

// AllKinds returns every collection kind in a stable order
func AllKinds() []Kind {
	return []Kind{KindActive, KindArchive, KindPin}
}

// String returns the short name used in file names and messages
func (k Kind) String() string {
	switch k {
	case KindActive:
		return "active"
	case KindArchive:
		return "archive"
	case KindPin:
		return "pin"
	default:
		return "unknown"
	}
}

// ParseKind converts a short name back into a Kind, ignoring case
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown collection %q", s)
}

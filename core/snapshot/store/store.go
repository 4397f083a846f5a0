package store

import (
	"errors"

	"fansly-utils/core/snapshot"
)

// ErrNoSnapshot is returned by Load when no snapshot has been persisted yet.
var ErrNoSnapshot = errors.New("no snapshot found")

// IsNoSnapshot reports whether err means the snapshot simply does not exist.
func IsNoSnapshot(err error) bool {
	return errors.Is(err, ErrNoSnapshot)
}

// Config holds settings for the local snapshot file.
type Config struct {
	// File is the path of the JSON snapshot. Also used to derive sibling
	// artifacts (the .bak copy, the HTML report).
	File string `mapstructure:"file" default:"fansly-backup.json"`
}

// Store persists snapshots. Implementations must preserve the canonical sort
// order on save; the engine is agnostic to whether the backing medium is a
// flat document or a relational database.
type Store interface {
	// Load returns the persisted snapshot, or ErrNoSnapshot.
	Load() (*snapshot.Snapshot, error)
	// Save persists the snapshot, replacing any previous one.
	Save(*snapshot.Snapshot) error
}

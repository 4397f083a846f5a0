package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"fansly-utils/core/snapshot"
)

// JSONStore persists the snapshot as a single indented JSON document.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the given file path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads and decodes the snapshot file.
func (s *JSONStore) Load() (*snapshot.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap := snapshot.New()
	if err := json.Unmarshal(raw, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return snap, nil
}

// Save canonicalizes and writes the snapshot. The first overwrite of an
// existing file leaves a .bak copy of the previous content behind.
func (s *JSONStore) Save(snap *snapshot.Snapshot) error {
	snap.Canonicalize()

	if err := s.backupExisting(); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	// Write through a temp file so an interrupted save never truncates the
	// only copy.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *JSONStore) backupExisting() error {
	bak := s.path + ".bak"
	if _, err := os.Stat(bak); err == nil {
		return nil
	}

	src, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open snapshot for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(bak)
	if err != nil {
		return fmt.Errorf("create snapshot backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy snapshot backup: %w", err)
	}
	return nil
}

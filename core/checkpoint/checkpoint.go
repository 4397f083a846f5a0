package checkpoint

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// File is a durable, line-oriented set of account ids. The destructive
// driver persists the reachable-id set here after every stage, so a crashed
// run resumes with everything already discovered instead of starting empty.
type File struct {
	path string
}

// New creates a checkpoint handle for the given path. The file itself is
// created on the first Persist.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the persisted id set. A missing file is an empty set, not an
// error: the first run of a wipe has no checkpoint yet.
func (f *File) Load() (map[string]struct{}, error) {
	file, err := os.Open(f.path)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open checkpoint: %w", err)
	}
	defer file.Close()

	ids := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ids[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	return ids, nil
}

// Persist writes the full id set, replacing the previous content, and
// flushes it to disk before returning. Sorted output keeps the file diffable
// between runs.
func (f *File) Persist(ids map[string]struct{}) error {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	tmp := f.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create checkpoint: %w", err)
	}

	w := bufio.NewWriter(file)
	for _, id := range sorted {
		if _, err := fmt.Fprintln(w, id); err != nil {
			file.Close()
			return fmt.Errorf("write checkpoint: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flush checkpoint: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("sync checkpoint: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close checkpoint: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace checkpoint: %w", err)
	}
	return nil
}

// Remove deletes the checkpoint file. Callers decide whether to retain the
// checkpoint after a completed run.
func (f *File) Remove() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

package listimport

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"fansly-utils/core/api"
	"fansly-utils/core/resolver"
)

// Pause window between input files. Each file spends several remote calls,
// so consecutive files get the same coarse spacing a human would produce.
const (
	filePauseMin = 15 * time.Second
	filePauseMax = 60 * time.Second
)

// API is the remote surface needed to populate lists from files.
type API interface {
	AccountsByUsernames(ctx context.Context, usernames []string) ([]api.Account, error)
	Lists(ctx context.Context) ([]api.ListInfo, error)
	ListItems(ctx context.Context, listID string) ([]string, error)
	CreateList(ctx context.Context, label string) (string, error)
	AddListItems(ctx context.Context, listID string, accountIDs []string) error
}

// Service imports curated lists from plain text files: one username per
// line, the file name (without extension) is the list label.
type Service struct {
	api API
	log *zap.Logger

	// pace inserts the inter-file delay. A nil invoker disables it.
	pace func(ctx context.Context) error

	// creators caches username -> id across input files, since the same
	// creator commonly appears in several lists.
	creators map[string]string
}

func NewService(remote API, inv *api.Invoker, log *zap.Logger) *Service {
	pace := func(ctx context.Context) error { return nil }
	if inv != nil {
		pace = func(ctx context.Context) error {
			return inv.Pause(ctx, filePauseMin, filePauseMax)
		}
	}
	return &Service{
		api:      remote,
		log:      log,
		pace:     pace,
		creators: map[string]string{},
	}
}

// Run imports every file in order, pausing between files.
func (s *Service) Run(ctx context.Context, paths []string) error {
	existing, err := s.api.Lists(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch lists: %w", err)
	}

	for i, path := range paths {
		if i > 0 {
			if err := s.pace(ctx); err != nil {
				return err
			}
		}
		if err := s.importFile(ctx, path, &existing); err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
	}
	return nil
}

func (s *Service) importFile(ctx context.Context, path string, existing *[]api.ListInfo) error {
	usernames, err := readUsernames(path)
	if err != nil {
		return err
	}
	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s.log.Info("importing list",
		zap.String("label", label),
		zap.Int("usernames", len(usernames)))

	ids, err := s.resolve(ctx, usernames)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		s.log.Warn("no resolvable usernames, skipping file", zap.String("label", label))
		return nil
	}

	listID, err := s.findOrCreateList(ctx, label, existing)
	if err != nil {
		return err
	}

	current, err := s.api.ListItems(ctx, listID)
	if err != nil {
		return err
	}
	present := make(map[string]struct{}, len(current))
	for _, id := range current {
		present[id] = struct{}{}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		s.log.Info("list already complete", zap.String("label", label))
		return nil
	}

	if err := s.api.AddListItems(ctx, listID, missing); err != nil {
		return err
	}
	s.log.Info("list updated",
		zap.String("label", label),
		zap.Int("added", len(missing)))
	return nil
}

// resolve maps usernames to ids via the cache, hitting the remote only for
// cache misses. Unresolvable usernames are logged and dropped.
func (s *Service) resolve(ctx context.Context, usernames []string) ([]string, error) {
	var misses []string
	for _, username := range usernames {
		if _, ok := s.creators[strings.ToLower(username)]; !ok {
			misses = append(misses, username)
		}
	}

	if len(misses) > 0 {
		found, dead, err := resolver.Resolve(misses, resolver.DefaultChunkSize,
			func(chunk []string) ([]api.Account, error) {
				return s.api.AccountsByUsernames(ctx, chunk)
			},
			func(a api.Account) string { return a.Username })
		if err != nil {
			return nil, err
		}
		for _, account := range found {
			s.creators[strings.ToLower(account.Username)] = account.ID
		}
		for username := range dead {
			s.log.Warn("username does not resolve", zap.String("username", username))
		}
	}

	ids := make([]string, 0, len(usernames))
	for _, username := range usernames {
		if id, ok := s.creators[strings.ToLower(username)]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// findOrCreateList matches the label case-insensitively against the known
// lists and creates the list when no match exists.
func (s *Service) findOrCreateList(ctx context.Context, label string, existing *[]api.ListInfo) (string, error) {
	for _, list := range *existing {
		if strings.EqualFold(list.Label, label) {
			return list.ID, nil
		}
	}

	id, err := s.api.CreateList(ctx, label)
	if err != nil {
		return "", err
	}
	s.log.Info("list created", zap.String("label", label), zap.String("id", id))
	*existing = append(*existing, api.ListInfo{ID: id, Label: label})
	return id, nil
}

func readUsernames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var usernames []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		username := strings.TrimSpace(scanner.Text())
		if username == "" || strings.HasPrefix(username, "#") {
			continue
		}
		key := strings.ToLower(username)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		usernames = append(usernames, username)
	}
	return usernames, scanner.Err()
}

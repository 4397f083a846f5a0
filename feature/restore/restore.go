package restore

import (
	"context"

	"fansly-utils/core/api"
	"fansly-utils/core/resolver"
	"fansly-utils/core/snapshot"

	"go.uber.org/zap"
)

// API is the remote surface the restore operation consumes.
type API interface {
	Follow(ctx context.Context, accountID string) error
	CreateList(ctx context.Context, label string) (string, error)
	AddListItems(ctx context.Context, listID string, accountIDs []string) error
	AddNote(ctx context.Context, accountID, title, data string) (string, error)
	AccountsByIDs(ctx context.Context, ids []string) ([]api.Account, error)
}

// Service replays a snapshot back onto the remote service. Replay is
// best-effort: accounts known to be dead are skipped up front, drift
// discovered along the way is logged but the source snapshot is never
// modified.
type Service struct {
	api API
	log *zap.Logger
}

// NewService creates the restore service.
func NewService(remote API, log *zap.Logger) *Service {
	return &Service{api: remote, log: log}
}

// Run replays the snapshot: re-follows, recreates lists and their surviving
// members, re-adds notes, then re-validates every surviving account.
func (s *Service) Run(ctx context.Context, snap *snapshot.Snapshot) error {
	deleted := snap.DeletedSet()

	s.log.Info("Re-following previously followed accounts")
	for _, accountID := range snap.Following {
		if _, dead := deleted[accountID]; dead {
			continue
		}
		if err := s.api.Follow(ctx, accountID); err != nil {
			return err
		}
	}

	s.log.Info("Recreating user lists", zap.Int("count", len(snap.Lists)))
	for _, list := range snap.Lists {
		s.log.Info("Recreating list", zap.String("label", list.Label))

		listID, err := s.api.CreateList(ctx, list.Label)
		if err != nil {
			return err
		}

		items := make([]string, 0, len(list.Items))
		for _, accountID := range list.Items {
			if _, dead := deleted[accountID]; !dead {
				items = append(items, accountID)
			}
		}
		if err := s.api.AddListItems(ctx, listID, items); err != nil {
			return err
		}
	}

	var surviving []snapshot.AccountRecord
	for i := range snap.Accounts {
		if _, dead := deleted[snap.Accounts[i].ID]; !dead {
			surviving = append(surviving, snap.Accounts[i])
		}
	}

	s.log.Info("Recreating notes")
	for _, account := range surviving {
		for _, note := range account.Notes {
			if _, err := s.api.AddNote(ctx, account.ID, note.Title, note.Data); err != nil {
				return err
			}
		}
	}

	return s.revalidate(ctx, surviving)
}

// revalidate probes every surviving account once more and logs any drift
// found during the replay. Nothing is corrected here.
func (s *Service) revalidate(ctx context.Context, accounts []snapshot.AccountRecord) error {
	s.log.Info("Checking accounts", zap.Int("count", len(accounts)))

	ids := make([]string, 0, len(accounts))
	byID := make(map[string]*snapshot.AccountRecord, len(accounts))
	for i := range accounts {
		ids = append(ids, accounts[i].ID)
		byID[accounts[i].ID] = &accounts[i]
	}

	found, dead, err := resolver.Resolve(ids, api.DefaultChunkSize, func(chunk []string) ([]api.Account, error) {
		return s.api.AccountsByIDs(ctx, chunk)
	}, func(a api.Account) string { return a.ID })
	if err != nil {
		return err
	}

	for id := range dead {
		s.log.Warn("Account deleted since the snapshot was taken",
			zap.String("username", byID[id].Username),
			zap.String("id", id),
		)
	}
	for _, account := range found {
		record := byID[account.ID]
		if record != nil && record.Username != account.Username {
			s.log.Warn("Account changed name since the snapshot was taken",
				zap.String("old", record.Username),
				zap.String("new", account.Username),
			)
		}
	}
	return nil
}

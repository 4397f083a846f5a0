package backup

import (
	"context"

	"fansly-utils/core/api"
	"fansly-utils/core/resolver"

	"go.uber.org/zap"
)

// UpdateAccounts refreshes only the account records of the persisted
// snapshot: usernames are re-resolved (renames append to the history log)
// and ids that stopped resolving move to the deleted set. Nothing else in
// the snapshot is touched.
func (s *Service) UpdateAccounts(ctx context.Context) error {
	snap, err := s.store.Load()
	if err != nil {
		return err
	}

	deleted := snap.DeletedSet()
	var ids []string
	for i := range snap.Accounts {
		if _, dead := deleted[snap.Accounts[i].ID]; !dead {
			ids = append(ids, snap.Accounts[i].ID)
		}
	}

	s.log.Info("Checking accounts", zap.Int("count", len(ids)))
	found, dead, err := resolver.Resolve(ids, api.DefaultChunkSize, func(chunk []string) ([]api.Account, error) {
		return s.api.AccountsByIDs(ctx, chunk)
	}, func(a api.Account) string { return a.ID })
	if err != nil {
		return err
	}

	fresh := make(map[string]api.Account, len(found))
	for _, account := range found {
		fresh[account.ID] = account
	}

	for i := range snap.Accounts {
		record := &snap.Accounts[i]

		if _, gone := dead[record.ID]; gone {
			s.log.Warn("Account deleted or disabled for your region",
				zap.String("username", record.Username),
				zap.String("id", record.ID),
			)
			snap.Deleted = append(snap.Deleted, record.ID)
			continue
		}

		account, ok := fresh[record.ID]
		if !ok {
			continue
		}
		if account.Username != record.Username {
			s.log.Warn("Account changed name",
				zap.String("old", record.Username),
				zap.String("new", account.Username),
			)
			record.OldNames = append(record.OldNames, record.Username)
			record.Username = account.Username
		}
		record.DisplayName = account.DisplayName
	}

	s.log.Info("Persisting updated snapshot")
	return s.store.Save(snap)
}

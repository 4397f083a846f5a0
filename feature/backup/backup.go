package backup

import (
	"context"
	"time"

	"fansly-utils/core/api"
	"fansly-utils/core/pager"
	"fansly-utils/core/resolver"
	"fansly-utils/core/snapshot"
	"fansly-utils/core/snapshot/store"

	"go.uber.org/zap"
)

// API is the remote surface the backup operation consumes.
type API interface {
	Lists(ctx context.Context) ([]api.ListInfo, error)
	ListItems(ctx context.Context, listID string) ([]string, error)
	Following(ctx context.Context, limit, offset int) ([]string, error)
	AccountsByIDs(ctx context.Context, ids []string) ([]api.Account, error)
	Payments(ctx context.Context, limit, offset int) ([]api.Payment, error)
}

// Options controls a backup run.
type Options struct {
	// Update merges the fresh collection with the previously persisted
	// snapshot instead of replacing it.
	Update bool
}

// Service collects the remote account state into a snapshot and reconciles
// it with the previous one.
type Service struct {
	api   API
	store store.Store
	log   *zap.Logger

	// pace inserts a randomized delay before the batch-resolution phase to
	// avoid tripping the limiter right after the paged collection burst.
	pace func(ctx context.Context) error
}

// NewService creates the backup service. A nil invoker disables pacing.
func NewService(remote API, st store.Store, inv *api.Invoker, log *zap.Logger) *Service {
	pace := func(ctx context.Context) error { return nil }
	if inv != nil {
		pace = func(ctx context.Context) error {
			return inv.Pause(ctx, 5*time.Second, 15*time.Second)
		}
	}
	return &Service{api: remote, store: st, log: log, pace: pace}
}

// Run collects the remote state, optionally merges it with the previous
// snapshot, persists the result and returns it together with the drift
// report.
func (s *Service) Run(ctx context.Context, opts Options) (*snapshot.Snapshot, *snapshot.DiffReport, error) {
	remote, err := s.collect(ctx)
	if err != nil {
		return nil, nil, err
	}

	var previous *snapshot.Snapshot
	if opts.Update {
		previous, err = s.loadPrevious()
		if err != nil {
			return nil, nil, err
		}
	}

	merged, report, err := snapshot.Merge(remote, previous, s.reprobe(ctx))
	if err != nil {
		return nil, nil, err
	}
	s.logReport(report)

	s.log.Info("Persisting snapshot",
		zap.Int("accounts", len(merged.Accounts)),
		zap.Int("following", len(merged.Following)),
		zap.Int("lists", len(merged.Lists)),
		zap.Int("payments", len(merged.Payments)),
	)
	if err := s.store.Save(merged); err != nil {
		return nil, nil, err
	}
	return merged, report, nil
}

// collect walks every remote collection and assembles the fresh snapshot.
func (s *Service) collect(ctx context.Context) (*snapshot.Snapshot, error) {
	snap := snapshot.New()
	reachable := map[string]struct{}{}

	s.log.Info("Collecting user lists")
	lists, err := s.api.Lists(ctx)
	if err != nil {
		return nil, err
	}
	for _, info := range lists {
		s.log.Info("Collecting list members", zap.String("label", info.Label))
		items, err := s.api.ListItems(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range items {
			reachable[id] = struct{}{}
		}
		snap.Lists = append(snap.Lists, snapshot.ListRecord{
			ID:    info.ID,
			Label: info.Label,
			Items: items,
		})
	}
	s.log.Info("Collected lists", zap.Int("count", len(snap.Lists)))

	s.log.Info("Collecting followed accounts")
	following, err := pager.Collect(pager.Offset(pager.DefaultLimit, func(limit, offset int) ([]string, error) {
		return s.api.Following(ctx, limit, offset)
	}))
	if err != nil {
		return nil, err
	}
	snap.Following = following
	for _, id := range following {
		reachable[id] = struct{}{}
	}
	s.log.Info("Collected followed accounts", zap.Int("count", len(following)))

	s.log.Info("Resolving account records")
	if err := s.pace(ctx); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(reachable))
	for id := range reachable {
		ids = append(ids, id)
	}
	found, dead, err := resolver.Resolve(ids, api.DefaultChunkSize, func(chunk []string) ([]api.Account, error) {
		return s.api.AccountsByIDs(ctx, chunk)
	}, func(a api.Account) string { return a.ID })
	if err != nil {
		return nil, err
	}
	for _, account := range found {
		snap.Accounts = append(snap.Accounts, toRecord(account))
	}
	for id := range dead {
		s.log.Warn("Detected dead or unavailable account", zap.String("id", id))
		snap.Deleted = append(snap.Deleted, id)
	}

	s.log.Info("Collecting payments")
	payments, err := pager.Collect(pager.Offset(pager.DefaultLimit, func(limit, offset int) ([]api.Payment, error) {
		return s.api.Payments(ctx, limit, offset)
	}))
	if err != nil {
		return nil, err
	}
	for _, payment := range payments {
		snap.Payments = append(snap.Payments, snapshot.PaymentRecord{
			AccountID:     payment.AccountID,
			TransactionID: payment.TransactionID,
			CreatedAt:     payment.CreatedAt,
			Price:         payment.Price,
		})
	}
	s.log.Info("Collected payments", zap.Int("count", len(payments)))

	return snap, nil
}

// reprobe returns the merge callback that gives locally known but freshly
// missing ids one more chance through the batch resolver.
func (s *Service) reprobe(ctx context.Context) snapshot.ReprobeFunc {
	return func(ids []string) ([]snapshot.AccountRecord, map[string]struct{}, error) {
		found, dead, err := resolver.Resolve(ids, api.DefaultChunkSize, func(chunk []string) ([]api.Account, error) {
			return s.api.AccountsByIDs(ctx, chunk)
		}, func(a api.Account) string { return a.ID })
		if err != nil {
			return nil, nil, err
		}
		records := make([]snapshot.AccountRecord, 0, len(found))
		for _, account := range found {
			records = append(records, toRecord(account))
		}
		return records, dead, nil
	}
}

func (s *Service) loadPrevious() (*snapshot.Snapshot, error) {
	previous, err := s.store.Load()
	if err == nil {
		return previous, nil
	}
	if store.IsNoSnapshot(err) {
		s.log.Debug("No previous snapshot to merge with")
		return nil, nil
	}
	return nil, err
}

func (s *Service) logReport(report *snapshot.DiffReport) {
	for _, rename := range report.Renames {
		s.log.Warn("Account changed name",
			zap.String("id", rename.AccountID),
			zap.String("old", rename.OldName),
			zap.String("new", rename.NewName),
		)
	}
	for _, id := range report.NewDead {
		s.log.Warn("Account no longer resolves", zap.String("id", id))
	}
	for label, ids := range report.NewListMembers {
		s.log.Info("List gained members",
			zap.String("label", label),
			zap.Int("count", len(ids)),
		)
	}
}

func toRecord(account api.Account) snapshot.AccountRecord {
	notes := make([]snapshot.NoteRecord, 0, len(account.Notes))
	for _, note := range account.Notes {
		notes = append(notes, snapshot.NoteRecord{
			ID:        note.ID,
			Title:     note.Title,
			Data:      note.Data,
			CreatedAt: note.CreatedAt,
			UpdatedAt: note.UpdatedAt,
		})
	}
	return snapshot.AccountRecord{
		ID:          account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Notes:       notes,
		OldNames:    []string{},
	}
}

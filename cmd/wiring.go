package cmd

import (
	"fmt"

	"fansly-utils/core/api"
	"fansly-utils/core/config"
	"fansly-utils/core/database"
	"fansly-utils/core/logger"
	"fansly-utils/core/snapshot"
	"fansly-utils/core/snapshot/store"

	"go.uber.org/zap"
)

// runtime bundles the pieces every command starts from.
type runtime struct {
	cfg *config.Config
	log *zap.Logger
}

// setup loads configuration and builds the logger. Every command calls this
// first.
func setup() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	return &runtime{cfg: cfg, log: l}, nil
}

// applyBackupPath lets an optional positional argument override the
// configured snapshot file.
func (r *runtime) applyBackupPath(args []string) {
	if len(args) == 1 {
		r.cfg.Backup.File = args[0]
	}
}

// client builds the authenticated remote client.
func (r *runtime) client() (*api.Client, error) {
	c, err := api.NewClient(r.cfg.API, r.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return c, nil
}

// store opens the snapshot store selected by the database driver: the flat
// JSON file by default, sqlite or mysql when configured.
func (r *runtime) store() (store.Store, error) {
	if !r.cfg.Database.UsesDatabase() {
		return store.NewJSONStore(r.cfg.Backup.File), nil
	}

	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	st, err := store.NewGormStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare snapshot store: %w", err)
	}
	return st, nil
}

// loadSnapshot loads the persisted snapshot, failing with a clear message
// when no backup exists yet.
func (r *runtime) loadSnapshot() (*snapshotAndStore, error) {
	st, err := r.store()
	if err != nil {
		return nil, err
	}
	snap, err := st.Load()
	if err != nil {
		if store.IsNoSnapshot(err) {
			return nil, fmt.Errorf("no backup found, run 'fansly-utils backup' first")
		}
		return nil, fmt.Errorf("failed to load backup: %w", err)
	}
	return &snapshotAndStore{Snapshot: snap, Store: st}, nil
}

type snapshotAndStore struct {
	Snapshot *snapshot.Snapshot
	Store    store.Store
}

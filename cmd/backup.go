package cmd

import (
	"context"
	"fmt"

	"fansly-utils/core/storage"
	"fansly-utils/feature/backup"
	"fansly-utils/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backupUpdate       bool
	backupAccountsOnly bool
	backupHTML         bool
	backupArchive      bool
)

// backupCmd captures the full remote account state into the local snapshot.
var backupCmd = &cobra.Command{
	Use:   "backup [file]",
	Short: "Capture the remote account state into the local snapshot",
	Args:  cobra.MaximumNArgs(1),
	Long: `Fetches lists, followed accounts, account details, notes and payments from
the remote service and persists them locally.

Without flags an existing snapshot is replaced by the fresh capture. With
--update the capture is merged into the previous snapshot: renames are
recorded, vanished accounts are re-checked and marked deleted, and nothing
ever leaves the snapshot.

Examples:
  # First full backup
  fansly-utils backup

  # Refresh an existing backup, keeping history
  fansly-utils backup --update

  # Only re-check known accounts for renames and deletions
  fansly-utils backup --only-update-accounts

  # Backup, render the HTML report and archive the snapshot to S3
  fansly-utils backup --update --html --archive`,
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().BoolVar(&backupUpdate, "update", false, "Merge into the existing snapshot instead of replacing it")
	backupCmd.Flags().BoolVar(&backupAccountsOnly, "only-update-accounts", false, "Only re-check known accounts (renames, deletions)")
	backupCmd.Flags().BoolVar(&backupHTML, "html", false, "Render the HTML report after the backup")
	backupCmd.Flags().BoolVar(&backupArchive, "archive", false, "Upload the snapshot to the configured S3 bucket")

	RootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync()
	rt.applyBackupPath(args)

	client, err := rt.client()
	if err != nil {
		return err
	}
	st, err := rt.store()
	if err != nil {
		return err
	}

	svc := backup.NewService(client, st, client.Invoker(), rt.log)

	if backupAccountsOnly {
		if err := svc.UpdateAccounts(ctx); err != nil {
			return fmt.Errorf("failed to update accounts: %w", err)
		}
	} else {
		snap, _, err := svc.Run(ctx, backup.Options{Update: backupUpdate})
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		rt.log.Info("Backup complete",
			zap.Int("accounts", len(snap.Accounts)),
			zap.Int("lists", len(snap.Lists)),
			zap.Int("payments", len(snap.Payments)),
		)
	}

	if backupHTML {
		if err := renderReport(rt); err != nil {
			return err
		}
	}

	if backupArchive {
		if err := archiveSnapshot(ctx, rt); err != nil {
			return err
		}
	}
	return nil
}

// renderReport renders the HTML report next to the snapshot file.
func renderReport(rt *runtime) error {
	loaded, err := rt.loadSnapshot()
	if err != nil {
		return err
	}
	_, err = report.NewWriter(rt.log).Write(loaded.Snapshot, rt.cfg.Backup.File)
	return err
}

// archiveSnapshot uploads the snapshot file to the configured bucket.
func archiveSnapshot(ctx context.Context, rt *runtime) error {
	client, err := storage.NewClient(rt.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	object, err := storage.ArchiveSnapshot(ctx, client, rt.cfg.Storage, rt.cfg.Backup.File)
	if err != nil {
		return fmt.Errorf("failed to archive snapshot: %w", err)
	}
	rt.log.Info("Snapshot archived", zap.String("object", object))
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"fansly-utils/feature/restore"

	"github.com/spf13/cobra"
)

// restoreCmd replays the local snapshot onto the remote account.
var restoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Replay the local snapshot onto the remote account",
	Args:  cobra.MaximumNArgs(1),
	Long: `Re-follows every followed account, recreates curated lists with their
members and re-adds account notes from the local snapshot.

Accounts recorded as deleted are skipped. Already-present state is left
alone; the command is safe to re-run.`,
	RunE: runRestore,
}

func init() {
	RootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync()
	rt.applyBackupPath(args)

	loaded, err := rt.loadSnapshot()
	if err != nil {
		return err
	}
	client, err := rt.client()
	if err != nil {
		return err
	}

	if err := restore.NewService(client, rt.log).Run(ctx, loaded.Snapshot); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	return nil
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fansly-utils/core/checkpoint"
	"fansly-utils/feature/wipe"

	"github.com/spf13/cobra"
)

var (
	wipeSilent     bool
	wipeCheckpoint string
)

// wipeCmd irreversibly clears the remote account.
var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Irreversibly clear the remote account",
	Long: `Deletes the account's remote footprint stage by stage: curated lists,
collection items, own comments, own messages, followed accounts, notes,
subscriptions and finally all other active sessions. Payments are inspected
but never deleted.

Progress is checkpointed after every stage; an interrupted wipe resumes
where it stopped when re-run with the same checkpoint file.

Examples:
  # Interactive wipe (asks for confirmation)
  fansly-utils wipe

  # Non-interactive
  fansly-utils wipe --silent

  # Resume with an explicit checkpoint file
  fansly-utils wipe --checkpoint wipe-progress.txt`,
	RunE: runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeSilent, "silent", false, "Skip the interactive confirmation prompt")
	wipeCmd.Flags().StringVar(&wipeCheckpoint, "checkpoint", "fansly-wipe.checkpoint", "Path of the wipe progress file")

	RootCmd.AddCommand(wipeCmd)
}

func runWipe(cmd *cobra.Command, args []string) error {
	// An interrupt cancels the context instead of killing the process, so
	// the driver's checkpoint-persist-on-exit still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	if !confirmWipe() {
		rt.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	client, err := rt.client()
	if err != nil {
		return err
	}

	driver := wipe.NewDriver(client, checkpoint.New(wipeCheckpoint), rt.log)
	if err := driver.Run(ctx); err != nil {
		return fmt.Errorf("wipe failed: %w", err)
	}
	return nil
}

// confirmWipe prompts the user for confirmation or uses --silent.
func confirmWipe() bool {
	if wipeSilent {
		return true
	}

	fmt.Print("This permanently clears the remote account. Type 'yes' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

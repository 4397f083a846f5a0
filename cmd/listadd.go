package cmd

import (
	"context"
	"fmt"

	"fansly-utils/feature/listimport"

	"github.com/spf13/cobra"
)

// listaddCmd populates curated lists from plain text files.
var listaddCmd = &cobra.Command{
	Use:   "listadd <file>...",
	Short: "Populate curated lists from text files",
	Long: `Reads one username per line from each file and adds the resolved accounts
to the list named after the file (without its extension). Missing lists are
created; labels match case-insensitively. Lines starting with '#' and
unresolvable usernames are skipped with a warning.

Example:
  # Adds the usernames in favorites.txt to the "favorites" list
  fansly-utils listadd favorites.txt archive.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runListadd,
}

func init() {
	RootCmd.AddCommand(listaddCmd)
}

func runListadd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	client, err := rt.client()
	if err != nil {
		return err
	}

	svc := listimport.NewService(client, client.Invoker(), rt.log)
	if err := svc.Run(ctx, args); err != nil {
		return fmt.Errorf("list import failed: %w", err)
	}
	return nil
}

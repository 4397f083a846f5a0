package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"fansly-utils/core/snapshot"
	"fansly-utils/feature/info"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var infoRaw bool

// infoCmd looks up a single account by id or username.
var infoCmd = &cobra.Command{
	Use:   "info <id-or-username>",
	Short: "Show what is known about an account",
	Long: `Resolves the account remotely and cross-references the local snapshot:
old usernames, list memberships, following state, notes. Numeric arguments
are treated as ids, everything else as usernames.

Accounts that no longer resolve remotely fall back to the snapshot record,
so deleted accounts remain inspectable.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoRaw, "raw", false, "Print the unprojected remote payload as JSON")

	RootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
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
	svc := info.NewService(client)

	if infoRaw {
		payload, err := svc.Raw(ctx, args[0])
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}
		var pretty map[string]any
		if err := json.Unmarshal(payload, &pretty); err != nil {
			return err
		}
		out, err := json.MarshalIndent(pretty, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	// The snapshot is optional context here: lookups work without a backup.
	var snap *snapshot.Snapshot
	if loaded, err := rt.loadSnapshot(); err == nil {
		snap = loaded.Snapshot
	} else {
		rt.log.Debug("no local snapshot for cross-reference", zap.Error(err))
	}

	result, err := svc.Lookup(ctx, args[0], snap)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	fmt.Print(info.Render(result))
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"
)

// htmlCmd renders the HTML report from the local snapshot.
var htmlCmd = &cobra.Command{
	Use:   "html [file]",
	Short: "Render the snapshot as a static HTML report",
	Args:  cobra.MaximumNArgs(1),
	Long: `Renders the local snapshot into a single HTML page with one row per
account: username, display name, rename history, following state, list
memberships and notes. The page is written next to the snapshot file.`,
	RunE: runHTML,
}

func init() {
	RootCmd.AddCommand(htmlCmd)
}

func runHTML(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync()
	rt.applyBackupPath(args)

	return renderReport(rt)
}

package cmd

import (
	"fmt"

	"fansly-utils/feature/payments"

	"github.com/spf13/cobra"
)

var (
	paymentsByAccounts bool
	paymentsByYears    bool
	paymentsTotal      bool
)

// paymentsCmd reports on recorded wallet transactions.
var paymentsCmd = &cobra.Command{
	Use:   "payments [file]",
	Short: "Report on recorded payments",
	Args:  cobra.MaximumNArgs(1),
	Long: `Aggregates the payments held in the local snapshot.

Examples:
  # Spending per account, cheapest first
  fansly-utils payments --by-accounts

  # Spending per calendar year
  fansly-utils payments --by-years

  # Overall total and the period it spans
  fansly-utils payments --total`,
	RunE: runPayments,
}

func init() {
	paymentsCmd.Flags().BoolVar(&paymentsByAccounts, "by-accounts", false, "Aggregate spending per account")
	paymentsCmd.Flags().BoolVar(&paymentsByYears, "by-years", false, "Aggregate spending per calendar year")
	paymentsCmd.Flags().BoolVar(&paymentsTotal, "total", false, "Print the overall total")
	paymentsCmd.MarkFlagsOneRequired("by-accounts", "by-years", "total")
	paymentsCmd.MarkFlagsMutuallyExclusive("by-accounts", "by-years", "total")

	RootCmd.AddCommand(paymentsCmd)
}

func runPayments(cmd *cobra.Command, args []string) error {
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
	snap := loaded.Snapshot

	switch {
	case paymentsByAccounts:
		for _, total := range payments.ByAccounts(snap) {
			fmt.Printf("%-32s $%.2f\n", total.Name, payments.Amount(total.Price))
		}
	case paymentsByYears:
		for _, total := range payments.ByYears(snap) {
			fmt.Printf("%d  $%.2f\n", total.Year, payments.Amount(total.Price))
		}
	case paymentsTotal:
		summary := payments.Total(snap)
		if summary == nil {
			fmt.Println("No payments recorded.")
			return nil
		}
		if span := summary.Span(); span != "" {
			fmt.Printf("Total spent: $%.2f over %s\n", payments.Amount(summary.Total), span)
		} else {
			fmt.Printf("Total spent: $%.2f\n", payments.Amount(summary.Total))
		}
	}
	return nil
}

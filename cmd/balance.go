package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [amount]",
	Short: "Show or set the current balance",
	Long:  "With no argument, prints the stored balance. With an amount, records it as the new starting balance for projections.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(_ *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	cur := currencySymbol()
	_, balance := ledger.Snapshot()

	if len(args) == 0 {
		fmt.Printf("\n  Balance: %s  (%d transactions)\n", cli.FormatMoney(balance, cur), ledger.Count())
		return nil
	}

	amount, err := parseAmount(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}
	if err := ledger.SetStartingBalance(amount); err != nil {
		return err
	}

	fmt.Printf("\n  Balance: %s → %s\n", cli.FormatMoney(balance, cur), cli.FormatMoney(amount, cur))
	return nil
}

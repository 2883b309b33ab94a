package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id> [id...]",
	Short: "Delete transactions by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	cur := currencySymbol()
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid id %q", arg)
		}

		tx, err := ledger.Get(id)
		if err != nil {
			return err
		}
		if err := ledger.Delete(id); err != nil {
			return err
		}

		fmt.Printf("\n  Deleted #%d  %s  %s  (%s)\n",
			id, cli.FormatMoney(tx.Amount, cur), tx.Description, cli.FormatDate(tx.Date))
	}

	return nil
}

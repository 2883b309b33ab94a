package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/model"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of an existing transaction",
	Example: `  cashburn edit 12 --status confirmed
  cashburn edit 12 --amount 1300 --date 2026-09-05`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

var (
	editType        string
	editAmount      string
	editDate        string
	editDesc        string
	editStatus      string
	editProbability int
)

func init() {
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "income or expense")
	editCmd.Flags().StringVarP(&editAmount, "amount", "a", "", "Amount, e.g. 1200.50")
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "Date as YYYY-MM-DD")
	editCmd.Flags().StringVar(&editDesc, "desc", "", "Description")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "confirmed, pending, or projected")
	editCmd.Flags().IntVarP(&editProbability, "probability", "p", 0, "Likelihood 0-100")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	ledger, err := openLedger()
	if err != nil {
		return err
	}

	tx, err := ledger.Get(id)
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("type") {
		tx.Type, err = parseTxType(editType)
		if err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("amount") {
		tx.Amount, err = parseAmount(editAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", editAmount, err)
		}
		changed = true
	}
	if cmd.Flags().Changed("date") {
		tx.Date, err = model.ParseDate(editDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", editDate, err)
		}
		changed = true
	}
	if cmd.Flags().Changed("desc") {
		tx.Description = strings.TrimSpace(editDesc)
		changed = true
	}
	if cmd.Flags().Changed("status") {
		tx.Status, err = parseTxStatus(editStatus)
		if err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("probability") {
		tx.Probability = editProbability
		changed = true
	}

	if !changed {
		fmt.Println("\n  Nothing to change. Pass at least one field flag.")
		return nil
	}

	if err := ledger.Update(id, tx); err != nil {
		return err
	}

	fmt.Printf("\n  Updated #%d  %s\n", id, tx.Description)
	return nil
}

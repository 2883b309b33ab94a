package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Transaction list with details",
	RunE:  runList,
}

var (
	listLimit  int
	listType   string
	listStatus string
)

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 20, "Number of transactions to show (0 for all)")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Filter by type: income or expense")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status: confirmed, pending, or projected")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	txs, _ := ledger.Snapshot()
	if len(txs) == 0 {
		fmt.Println("\n  No transactions yet.")
		return nil
	}

	txs, err = filterTxs(txs, listType, listStatus)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("\n  No transactions match the selected filters.")
		return nil
	}

	// Sort by date descending, newest id first on ties
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID > txs[j].ID
	})

	total := len(txs)
	if listLimit > 0 && len(txs) > listLimit {
		txs = txs[:listLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRANSACTIONS  %d of %d", len(txs), total)))
	fmt.Println()

	cur := currencySymbol()
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		amount := cli.FormatMoney(tx.Amount, cur)
		if tx.Type == model.Expense {
			amount = "-" + amount
		}
		rows = append(rows, []string{
			fmt.Sprintf("#%d", tx.ID),
			cli.FormatDate(tx.Date),
			string(tx.Type),
			string(tx.Status),
			cli.FormatProbability(tx.Probability),
			amount,
			truncate(tx.Description, 28),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Date", "Type", "Status", "Prob", "Amount", "Description"},
		Rows:    rows,
	}))

	return nil
}

// filterTxs narrows txs by the optional type and status names.
func filterTxs(txs []model.Transaction, typeName, statusName string) ([]model.Transaction, error) {
	if typeName != "" {
		txType, err := parseTxType(typeName)
		if err != nil {
			return nil, err
		}
		kept := txs[:0:0]
		for _, tx := range txs {
			if tx.Type == txType {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	if statusName != "" {
		status, err := parseTxStatus(statusName)
		if err != nil {
			return nil, err
		}
		kept := txs[:0:0]
		for _, tx := range txs {
			if tx.Status == status {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	return txs, nil
}

func parseTxType(s string) (model.TxType, error) {
	t := model.TxType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown type %q (want income or expense)", s)
	}
	return t, nil
}

func parseTxStatus(s string) (model.TxStatus, error) {
	status := model.TxStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q (want confirmed, pending, or projected)", s)
	}
	return status, nil
}

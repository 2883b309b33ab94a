package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all transactions and reset the balance",
	RunE:  runClear,
}

var clearForce bool

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(_ *cobra.Command, _ []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	count := ledger.Count()
	if count == 0 {
		fmt.Println("\n  Ledger is already empty.")
		return nil
	}

	if !clearForce {
		fmt.Printf("\n  This deletes all %d transactions and resets the balance.\n", count)
		fmt.Print("  Type 'yes' to continue: ")

		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("  Aborted.")
			return nil
		}
	}

	if err := ledger.Clear(); err != nil {
		return err
	}

	fmt.Printf("\n  Cleared %d transactions.\n", count)
	return nil
}

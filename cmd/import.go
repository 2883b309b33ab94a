package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the ledger with a JSON export",
	Long:  "Validates the given JSON file and replaces the entire ledger with its contents. The existing ledger is overwritten.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importForce bool

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path) //nolint:gosec // user-chosen import path
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ledger, err := openLedger()
	if err != nil {
		// A corrupt ledger is exactly what an import recovers from; the
		// file gets replaced wholesale once the incoming data validates.
		if !errors.Is(err, store.ErrCorrupt) {
			return err
		}
		fmt.Fprintf(os.Stderr, "  Existing ledger is corrupt, replacing it\n")
		ledger = store.NewLedger(dataFilePath())
	}

	if existing := ledger.Count(); existing > 0 && !importForce {
		fmt.Printf("\n  This replaces the current ledger (%d transactions).\n", existing)
		fmt.Print("  Type 'yes' to continue: ")

		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("  Aborted.")
			return nil
		}
	}

	n, err := ledger.ImportJSON(raw)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Imported %d transactions from %s\n", n, path)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the ledger as JSON",
	Long:  "Writes the full ledger dataset to the given file, or to stdout when no file is named.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	ledger, err := openLedger()
	if err != nil {
		return err
	}

	buf, err := ledger.ExportJSON()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(buf)
		return err
	}

	path := args[0]
	if err := os.WriteFile(path, buf, 0o644); err != nil { //nolint:gosec // user-chosen export path
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("\n  Exported %d transactions to %s\n", ledger.Count(), path)
	return nil
}

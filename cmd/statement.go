package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/config"
	"github.com/theirongolddev/cashburn/internal/gemini"
	"github.com/theirongolddev/cashburn/internal/statement"
	"github.com/theirongolddev/cashburn/internal/store"
)

var statementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Import bank statements with Gemini",
}

var statementImportCmd = &cobra.Command{
	Use:   "import [dir | file...]",
	Short: "Extract transactions from statement files into the ledger",
	Long: "Runs each statement file through Gemini and merges the extracted " +
		"transactions into the ledger. Files unchanged since their last import " +
		"are skipped unless --force is set. With no argument the configured " +
		"statement directory is used.",
	RunE: runStatementImport,
}

var statementHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past statement imports",
	RunE:  runStatementHistory,
}

var (
	statementForce   bool
	statementModel   string
	statementHistLim int
)

func init() {
	statementImportCmd.Flags().BoolVar(&statementForce, "force", false, "Re-import files even when unchanged")
	statementImportCmd.Flags().StringVarP(&statementModel, "model", "m", "", "Gemini model (default from config)")
	statementHistoryCmd.Flags().IntVarP(&statementHistLim, "limit", "l", 10, "Number of imports to show")

	statementCmd.AddCommand(statementImportCmd)
	statementCmd.AddCommand(statementHistoryCmd)
	rootCmd.AddCommand(statementCmd)
}

func runStatementImport(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	apiKey := config.GetGeminiAPIKey(cfg)
	if apiKey == "" {
		return fmt.Errorf("no Gemini API key configured; run 'cashburn setup' or set GEMINI_API_KEY")
	}

	modelName := statementModel
	if modelName == "" {
		modelName = cfg.Gemini.Model
	}
	client := gemini.NewClient(apiKey, modelName)
	if client == nil {
		return fmt.Errorf("Gemini API key looks invalid; run 'cashburn setup' to replace it")
	}

	ledger, err := openLedger()
	if err != nil {
		return err
	}

	// The cache only skips re-imports; extraction works without it.
	var cache *store.Cache
	if c, err := store.OpenCache(statement.CachePath()); err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Import cache unavailable, processing every file\n")
		}
	} else {
		cache = c
		defer cache.Close()
	}

	importer := statement.NewImporter(ledger, cache, client)

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Extracting [%d/%d]", current, total)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *statement.ImportResult
	switch {
	case len(args) == 0:
		dir := cfg.General.StatementDir
		if dir == "" {
			return fmt.Errorf("no statement directory configured; pass a path or set it with 'cashburn config set general.statement_dir <dir>'")
		}
		result, err = importer.ImportDir(ctx, dir, statementForce, progressFn)
	case len(args) == 1 && isDir(args[0]):
		result, err = importer.ImportDir(ctx, args[0], statementForce, progressFn)
	default:
		result, err = importer.ImportFiles(ctx, args, statementForce, progressFn)
	}
	if err != nil {
		return err
	}
	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r                        \r")
	}

	if result.TotalFiles == 0 {
		fmt.Println("\n  No statement files found (.pdf, .csv, or .txt).")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("STATEMENT IMPORT"))
	fmt.Println()

	rows := [][]string{
		{"Files", cli.FormatNumber(int64(result.TotalFiles))},
		{"Imported", cli.FormatNumber(int64(result.Imported))},
		{"Skipped", fmt.Sprintf("%s (unchanged)", cli.FormatNumber(int64(result.Skipped)))},
		{"Too short", cli.FormatNumber(int64(result.TooShort))},
		{"Failed", cli.FormatNumber(int64(result.Failed))},
		{"---"},
		{"Transactions", fmt.Sprintf("%s added", cli.FormatNumber(int64(result.Added)))},
	}
	if result.BalanceSet {
		rows = append(rows, []string{"Balance", "updated from statement"})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	for _, fe := range result.Errors {
		fmt.Fprintf(os.Stderr, "\n  %s: %v\n", fe.Path, fe.Err)
	}

	return nil
}

func runStatementHistory(_ *cobra.Command, _ []string) error {
	cache, err := store.OpenCache(statement.CachePath())
	if err != nil {
		return fmt.Errorf("opening import cache: %w", err)
	}
	defer cache.Close()

	records, err := cache.ImportHistory(statementHistLim)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("\n  No imports recorded yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("IMPORT HISTORY  Last %d", len(records))))
	fmt.Println()

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		balance := ""
		if rec.BalanceSeen {
			balance = "yes"
		}
		rows = append(rows, []string{
			rec.ImportedAt.Local().Format("Jan 02 15:04"),
			truncate(rec.FilePath, 32),
			cli.FormatNumber(int64(rec.TxCount)),
			shortModel(rec.Model),
			balance,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"When", "File", "Txs", "Model", "Balance"},
		Rows:    rows,
	}))

	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// shortModel drops the family prefix: "gemini-2.5-flash" renders as "2.5-flash".
func shortModel(name string) string {
	return strings.TrimPrefix(name, "gemini-")
}

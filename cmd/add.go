package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a transaction to the ledger",
	Long:  "Adds one transaction. With --type and --amount the entry is created directly; without them an interactive form asks for every field.",
	Example: `  cashburn add --type income --amount 2500 --date 2026-09-01 "Invoice #42"
  cashburn add -t expense -a 1200 --status pending "Rent"
  cashburn add`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

var (
	addType        string
	addAmount      string
	addDate        string
	addStatus      string
	addProbability int
)

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "income or expense")
	addCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "Amount, e.g. 1200.50")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", string(model.Confirmed), "confirmed, pending, or projected")
	addCmd.Flags().IntVarP(&addProbability, "probability", "p", 100, "Likelihood 0-100 for pending entries")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var (
		tx  model.Transaction
		err error
	)

	if cmd.Flags().Changed("type") || cmd.Flags().Changed("amount") {
		tx, err = txFromFlags(args)
	} else {
		tx, err = txFromForm()
	}
	if err != nil {
		return err
	}

	ledger, err := openLedger()
	if err != nil {
		return err
	}

	id, err := ledger.Add(tx)
	if err != nil {
		return err
	}

	sign := "+"
	if tx.Type == model.Expense {
		sign = "-"
	}
	fmt.Printf("\n  Added #%d  %s%s  %s  (%s, %s)\n",
		id, sign, cli.FormatMoney(tx.Amount, currencySymbol()),
		tx.Description, string(tx.Type), cli.FormatDate(tx.Date))

	return nil
}

func txFromFlags(args []string) (model.Transaction, error) {
	var tx model.Transaction

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return tx, fmt.Errorf("a description is required, e.g. cashburn add -t expense -a 40 \"Groceries\"")
	}
	if addType == "" || addAmount == "" {
		return tx, fmt.Errorf("--type and --amount are both required in flag mode")
	}

	txType, err := parseTxType(addType)
	if err != nil {
		return tx, err
	}
	status, err := parseTxStatus(addStatus)
	if err != nil {
		return tx, err
	}
	amount, err := parseAmount(addAmount)
	if err != nil {
		return tx, fmt.Errorf("invalid amount %q: %w", addAmount, err)
	}

	date := model.Today()
	if addDate != "" {
		date, err = model.ParseDate(addDate)
		if err != nil {
			return tx, fmt.Errorf("invalid date %q: %w", addDate, err)
		}
	}

	return model.Transaction{
		Type:        txType,
		Amount:      amount,
		Date:        date,
		Description: description,
		Status:      status,
		Probability: addProbability,
	}, nil
}

// txFromForm collects every field interactively.
func txFromForm() (model.Transaction, error) {
	var tx model.Transaction

	typeStr := string(model.Expense)
	statusStr := string(model.Confirmed)
	amountStr := ""
	dateStr := ""
	description := ""
	probabilityStr := "100"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&typeStr),
			huh.NewInput().
				Title("Amount").
				Placeholder("1200.50").
				Validate(func(s string) error {
					v, err := parseAmount(s)
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if v.IsNegative() {
						return fmt.Errorf("must not be negative")
					}
					return nil
				}).
				Value(&amountStr),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD, empty for today").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := model.ParseDate(strings.TrimSpace(s))
					return err
				}).
				Value(&dateStr),
			huh.NewInput().
				Title("Description").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("required")
					}
					return nil
				}).
				Value(&description),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Confirmed", string(model.Confirmed)),
					huh.NewOption("Pending", string(model.Pending)),
					huh.NewOption("Projected", string(model.Projected)),
				).
				Value(&statusStr),
			huh.NewInput().
				Title("Probability").
				Description("Likelihood 0-100, matters for pending entries").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 || n > 100 {
						return fmt.Errorf("want 0-100")
					}
					return nil
				}).
				Value(&probabilityStr),
		),
	).WithTheme(huh.ThemeBase16())

	if err := form.Run(); err != nil {
		return tx, err
	}

	amount, err := parseAmount(amountStr)
	if err != nil {
		return tx, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	date := model.Today()
	if s := strings.TrimSpace(dateStr); s != "" {
		date, err = model.ParseDate(s)
		if err != nil {
			return tx, fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
	}

	probability, _ := strconv.Atoi(strings.TrimSpace(probabilityStr))

	return model.Transaction{
		Type:        model.TxType(typeStr),
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(description),
		Status:      model.TxStatus(statusStr),
		Probability: probability,
	}, nil
}

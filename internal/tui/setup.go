package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/cashburn/internal/config"
	"github.com/theirongolddev/cashburn/internal/pipeline"
	"github.com/theirongolddev/cashburn/internal/tui/theme"
)

// setupValues collects first-run answers. The form writes through pointers
// into this struct, so App holds a single shared allocation; a plain value
// field would leave each copy of App reading its own stale snapshot.
type setupValues struct {
	geminiKey string
	window    int
	themeName string
}

// newSetupForm builds the first-run form shown when no config file exists.
func newSetupForm(txCount int, dataFile string, vals *setupValues) *huh.Form {
	vals.window = pipeline.DefaultUpcomingDays
	vals.themeName = theme.Active.Name

	welcome := fmt.Sprintf("Ledger: %s (%d transactions)\nA few quick settings and you're in. Esc skips everything.", dataFile, txCount)
	if txCount == 0 {
		welcome = fmt.Sprintf("Ledger: %s (empty)\nA few quick settings and you're in. Esc skips everything.", dataFile)
	}

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("◆ Welcome to cashburn").
				Description(welcome),
			huh.NewInput().
				Title("Gemini API key").
				Description("Powers AI statement imports. Leave blank to skip.").
				Placeholder("AIza...").
				EchoMode(huh.EchoModePassword).
				Value(&vals.geminiKey),
			huh.NewSelect[int]().
				Title("Alert window").
				Description("How far ahead to flag upcoming transactions.").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("14 days", 14),
					huh.NewOption("30 days", 30),
				).
				Value(&vals.window),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),
		),
	).WithTheme(huh.ThemeBase16())
}

// saveSetupConfig writes the first-run answers to the config file and
// applies them to the running app.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()

	if key := strings.TrimSpace(a.setupVals.geminiKey); key != "" {
		cfg.Gemini.APIKey = key
		a.geminiKeyHint = maskKey(key)
	}
	if a.setupVals.window > 0 {
		cfg.General.UpcomingDays = a.setupVals.window
		a.upcomingDays = a.setupVals.window
	}
	if a.setupVals.themeName != "" {
		cfg.Appearance.Theme = a.setupVals.themeName
		theme.SetActive(a.setupVals.themeName)
	}

	return config.Save(cfg)
}

// Package tui provides the interactive Bubble Tea dashboard for cashburn.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/config"
	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/pipeline"
	"github.com/theirongolddev/cashburn/internal/store"
	"github.com/theirongolddev/cashburn/internal/tui/components"
	"github.com/theirongolddev/cashburn/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// LedgerLoadedMsg is sent when the initial ledger load finishes.
type LedgerLoadedMsg struct {
	Transactions []model.Transaction
	Balance      decimal.Decimal
	Err          error
	LoadTime     time.Duration
}

// RefreshMsg is sent when a background ledger reload completes.
type RefreshMsg struct {
	Transactions []model.Transaction
	Balance      decimal.Decimal
	Err          error
	LoadTime     time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Ledger snapshot
	txs      []model.Transaction
	balance  decimal.Decimal
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Pre-computed for the current scenario
	result pipeline.Result

	// Transactions sorted for the list tab (most recent first)
	listTxs []model.Transaction

	// Scenario knobs, applied live on recompute
	scenario pipeline.ScenarioParams

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	txState    transactionsState
	projOffset int
	scen       scenarioState
	settings   settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	// Loading
	spinner spinner.Model

	dataFile      string
	upcomingDays  int
	currency      string
	geminiKeyHint string
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(dataFile string) App {
	needSetup := !config.Exists()

	cfg := loadConfigOrDefault()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < time.Second {
		refreshInterval = 5 * time.Second
	}

	upcoming := cfg.General.UpcomingDays
	if upcoming <= 0 {
		upcoming = pipeline.DefaultUpcomingDays
	}

	currency := cfg.Appearance.Currency
	if currency == "" {
		currency = "$"
	}

	delay := cfg.Scenario.DelayDays
	if delay < 0 {
		delay = 0
	}

	return App{
		dataFile:        dataFile,
		upcomingDays:    upcoming,
		currency:        currency,
		geminiKeyHint:   maskKey(cfg.Gemini.APIKey),
		needSetup:       needSetup,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		scenario: pipeline.ScenarioParams{
			Scenario:  pipeline.ScenarioBase,
			DelayDays: delay,
		},
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadLedgerCmd(a.dataFile),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) recompute() {
	a.result = pipeline.Run(a.txs, a.balance, pipeline.Params{
		Scenario:     a.scenario,
		Today:        model.Today(),
		UpcomingDays: a.upcomingDays,
	})

	// The list tab shows the raw ledger, not the scenario copy, so edits and
	// searches line up with what the store actually holds.
	a.listTxs = make([]model.Transaction, len(a.txs))
	copy(a.listTxs, a.txs)
	sort.SliceStable(a.listTxs, func(i, j int) bool {
		if !a.listTxs[i].Date.Equal(a.listTxs[j].Date) {
			return a.listTxs[i].Date.After(a.listTxs[j].Date)
		}
		return a.listTxs[i].ID > a.listTxs[j].ID
	})

	// Clamp the transactions cursor to the new list bounds
	if a.txState.cursor >= len(a.listTxs) {
		a.txState.cursor = len(a.listTxs) - 1
	}
	if a.txState.cursor < 0 {
		a.txState.cursor = 0
	}
	a.txState.detailScroll = 0
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			switch a.activeTab {
			case 1:
				if a.projOffset > 0 {
					a.projOffset--
				}
			case 2:
				if !a.txState.searching && a.txState.cursor > 0 {
					a.txState.cursor--
					a.txState.detailScroll = 0
				}
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			switch a.activeTab {
			case 1:
				if a.projOffset < len(a.result.Points)-1 {
					a.projOffset++
				}
			case 2:
				if !a.txState.searching {
					filtered := a.getSearchFilteredTxs()
					if a.txState.cursor < len(filtered)-1 {
						a.txState.cursor++
						a.txState.detailScroll = 0
					}
				}
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Check if click is in the header area (tab bar + filter pill)
			if msg.Y <= 1 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Field editors capture keys while a text input is focused
		if a.activeTab == 4 && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		if a.activeTab == 3 && a.scen.editing {
			return a.updateScenarioInput(msg)
		}

		// Transactions search mode intercepts all keys when active
		if a.activeTab == 2 && a.txState.searching {
			return a.updateTransactionsSearch(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Projection tab scrolling
		if a.activeTab == 1 {
			maxOff := len(a.result.Points) - 1
			if maxOff < 0 {
				maxOff = 0
			}
			switch key {
			case "j", "down":
				if a.projOffset < maxOff {
					a.projOffset++
				}
				return a, nil
			case "k", "up":
				if a.projOffset > 0 {
					a.projOffset--
				}
				return a, nil
			case "g":
				a.projOffset = 0
				return a, nil
			case "G":
				a.projOffset = maxOff
				return a, nil
			case "ctrl+d":
				a.projOffset += a.halfPage()
				if a.projOffset > maxOff {
					a.projOffset = maxOff
				}
				return a, nil
			case "ctrl+u":
				a.projOffset -= a.halfPage()
				if a.projOffset < 0 {
					a.projOffset = 0
				}
				return a, nil
			}
		}

		// Transactions tab has its own keybindings
		if a.activeTab == 2 {
			compact := a.isCompactLayout()
			filtered := a.getSearchFilteredTxs()

			switch key {
			case "/":
				// Start search mode
				a.txState.searching = true
				a.txState.searchInput = newSearchInput()
				a.txState.searchInput.Focus()
				return a, textinput.Blink
			case "q":
				if !compact && a.txState.viewMode == txViewDetail {
					a.txState.viewMode = txViewSplit
					return a, nil
				}
				return a, tea.Quit
			case "enter", "f":
				if compact {
					return a, nil
				}
				if a.txState.viewMode == txViewSplit {
					a.txState.viewMode = txViewDetail
				}
				return a, nil
			case "esc":
				// Clear search if active, otherwise exit detail view
				if a.txState.searchQuery != "" {
					a.txState.searchQuery = ""
					a.txState.cursor = 0
					a.txState.offset = 0
					return a, nil
				}
				if compact {
					return a, nil
				}
				if a.txState.viewMode == txViewDetail {
					a.txState.viewMode = txViewSplit
				}
				return a, nil
			case "j", "down":
				if a.txState.cursor < len(filtered)-1 {
					a.txState.cursor++
					a.txState.detailScroll = 0
				}
				return a, nil
			case "k", "up":
				if a.txState.cursor > 0 {
					a.txState.cursor--
					a.txState.detailScroll = 0
				}
				return a, nil
			case "g":
				a.txState.cursor = 0
				a.txState.offset = 0
				a.txState.detailScroll = 0
				return a, nil
			case "G":
				a.txState.cursor = len(filtered) - 1
				if a.txState.cursor < 0 {
					a.txState.cursor = 0
				}
				a.txState.detailScroll = 0
				return a, nil
			case "J":
				a.txState.detailScroll++
				return a, nil
			case "K":
				if a.txState.detailScroll > 0 {
					a.txState.detailScroll--
				}
				return a, nil
			case "ctrl+d":
				a.txState.detailScroll += a.halfPage()
				return a, nil
			case "ctrl+u":
				a.txState.detailScroll -= a.halfPage()
				if a.txState.detailScroll < 0 {
					a.txState.detailScroll = 0
				}
				return a, nil
			}
		}

		// Scenario tab navigation (non-editing mode)
		if a.activeTab == 3 {
			switch key {
			case "j", "down":
				if a.scen.cursor < scenFieldCount-1 {
					a.scen.cursor++
				}
				return a, nil
			case "k", "up":
				if a.scen.cursor > 0 {
					a.scen.cursor--
				}
				return a, nil
			case "left", "h":
				a.scenarioNudge(-1)
				return a, nil
			case "right", "l":
				a.scenarioNudge(1)
				return a, nil
			case "enter":
				return a.scenarioStartEdit()
			case "0":
				a.scenarioReset()
				return a, nil
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == 4 {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// Global quit from non-transactions tabs
		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, refreshLedgerCmd(a.dataFile)
		}

		// Toggle auto-refresh
		if key == "R" {
			a.autoRefresh = !a.autoRefresh
			// Persist to config (best-effort, ignore errors)
			cfg := loadConfigOrDefault()
			cfg.TUI.AutoRefresh = a.autoRefresh
			_ = config.Save(cfg)
			return a, nil
		}

		// Tab navigation
		switch key {
		case "o":
			a.activeTab = 0
		case "p":
			a.activeTab = 1
		case "t":
			a.activeTab = 2
		case "s":
			a.activeTab = 3
		case "x":
			a.activeTab = 4
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case LedgerLoadedMsg:
		a.txs = msg.Transactions
		a.balance = msg.Balance
		a.loadErr = msg.Err
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.recompute()

		// Activate first-run setup after the ledger loads
		if a.needSetup {
			a.setupVals = &setupValues{}
			a.setupForm = newSetupForm(len(a.txs), a.dataFile, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}

		// Auto-refresh picks up ledger edits made by other cashburn commands
		if a.loaded && a.autoRefresh && !a.refreshing {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshLedgerCmd(a.dataFile))
			}
		}

		return a, tea.Batch(cmds...)

	case RefreshMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err == nil {
			a.txs = msg.Transactions
			a.balance = msg.Balance
			a.loadErr = nil
			a.loadTime = msg.LoadTime
			a.recompute()
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) halfPage() int {
	half := (a.height - scrollOverhead) / 2
	if half < minHalfPageScroll {
		half = minHalfPageScroll
	}
	return half
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  cashburn needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◆ cashburn"))
	b.WriteString(subtitleStyle.Render(" · Cash-Flow Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading ledger..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◆ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o p t s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"J K", "Scroll detail pane"},
		{"^d ^u", "Half-page scroll"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"/", "Search transactions"},
		{"Enter", "Expand / Edit / Confirm"},
		{"Esc", "Back / Cancel"},
		{"← →", "Adjust scenario field"},
		{"0", "Reset scenario"},
		{"r", "Reload ledger"},
		{"R", "Toggle auto-reload"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + scenario pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pillStr := pillStyle.Render(" ") +
		pillAccentStyle.Render(fmt.Sprintf("alerts %dd", a.upcomingDays))
	if a.scenario.Scenario == pipeline.ScenarioDelays {
		pillStr += pillStyle.Render(" │ ") +
			pillAccentStyle.Render(fmt.Sprintf("delays +%dd", a.scenario.DelayDays))
	}
	if a.scenario.WhatIfExpense.IsPositive() {
		pillStr += pillStyle.Render(" │ ") +
			pillAccentStyle.Render("what-if "+a.currency+a.scenario.WhatIfExpense.StringFixed(0))
	}
	if a.txState.searchQuery != "" {
		pillStr += pillStyle.Render(" │ ") + pillAccentStyle.Render("/"+a.txState.searchQuery)
	}
	pillStr += pillStyle.Render(" ")

	// Pad pill line to full width
	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pillStr)

	// 2. Render status bar
	statusBar := components.RenderStatusBar(w, formatDataAge(a.lastRefresh), a.refreshing, a.autoRefresh)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	if a.loadErr != nil {
		content = a.renderLoadError(cw)
	} else {
		switch a.activeTab {
		case 0:
			content = a.renderOverviewTab(cw)
		case 1:
			content = a.renderProjectionTab(cw, contentH)
		case 2:
			filtered := a.getSearchFilteredTxs()
			content = a.renderTransactionsContent(filtered, cw, contentH)
		case 3:
			content = a.renderScenarioTab(cw)
		case 4:
			content = a.renderSettingsTab(cw)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure the entire terminal is filled with background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderLoadError(cw int) string {
	t := theme.Active

	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := errStyle.Render(a.loadErr.Error()) + "\n\n" +
		dimStyle.Render("Fix or remove the ledger file, then press r to retry.\n"+a.dataFile)

	return components.ContentCard("Ledger Error", body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadLedgerCmd reads the ledger in a background goroutine.
func loadLedgerCmd(path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		led, err := store.OpenLedger(path)
		if err != nil {
			return LedgerLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		txs, bal := led.Snapshot()
		return LedgerLoadedMsg{Transactions: txs, Balance: bal, LoadTime: time.Since(start)}
	}
}

// refreshLedgerCmd re-reads the ledger for auto or manual refresh.
func refreshLedgerCmd(path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		led, err := store.OpenLedger(path)
		if err != nil {
			return RefreshMsg{Err: err, LoadTime: time.Since(start)}
		}
		txs, bal := led.Snapshot()
		return RefreshMsg{Transactions: txs, Balance: bal, LoadTime: time.Since(start)}
	}
}

func formatDataAge(since time.Time) string {
	if since.IsZero() {
		return ""
	}
	age := time.Since(since)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	return fmt.Sprintf("%dm ago", int(age.Minutes()))
}

// projChartLabels builds compact X-axis labels for a chronological date
// series. First label and month boundaries show the month abbreviation,
// everything else just the day number.
func projChartLabels(points []model.ProjectionPoint) []string {
	labels := make([]string, len(points))
	prevMonth := time.Month(0)
	for i, p := range points {
		dt := p.Date.Time()
		m := dt.Month()
		switch {
		case i == 0 || m != prevMonth:
			labels[i] = dt.Format("Jan")
		default:
			labels[i] = strconv.Itoa(dt.Day())
		}
		prevMonth = m
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/config"
	"github.com/theirongolddev/cashburn/internal/tui/components"
	"github.com/theirongolddev/cashburn/internal/tui/theme"
)

// Settings tab fields
const (
	settingsFieldTheme = iota
	settingsFieldUpcomingDays
	settingsFieldCurrency
	settingsFieldAutoRefresh
	settingsFieldInterval
	settingsFieldAPIKey
	settingsFieldCount
)

type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	status  string
}

// settingsStartEdit handles Enter on a settings field. Toggle and cycle
// fields apply immediately; text fields open an inline input.
func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	switch a.settings.cursor {

	case settingsFieldTheme:
		idx := 0
		for i, th := range theme.All {
			if th.Name == theme.Active.Name {
				idx = i
			}
		}
		next := theme.All[(idx+1)%len(theme.All)]
		theme.SetActive(next.Name)

		cfg := loadConfigOrDefault()
		cfg.Appearance.Theme = next.Name
		a.settings.status = saveStatus(config.Save(cfg), "theme: "+next.Name)
		return a, nil

	case settingsFieldAutoRefresh:
		a.autoRefresh = !a.autoRefresh

		cfg := loadConfigOrDefault()
		cfg.TUI.AutoRefresh = a.autoRefresh
		state := "off"
		if a.autoRefresh {
			state = "on"
		}
		a.settings.status = saveStatus(config.Save(cfg), "auto-reload "+state)
		return a, nil

	case settingsFieldUpcomingDays:
		return a.settingsOpenInput(strconv.Itoa(a.upcomingDays), 3)

	case settingsFieldCurrency:
		return a.settingsOpenInput(a.currency, 3)

	case settingsFieldInterval:
		return a.settingsOpenInput(strconv.Itoa(int(a.refreshInterval.Seconds())), 4)

	case settingsFieldAPIKey:
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 80
		ti.Width = 44
		ti.EchoMode = textinput.EchoPassword
		ti.Placeholder = "AIza..."
		ti.Focus()
		a.settings.input = ti
		a.settings.editing = true
		return a, textinput.Blink
	}
	return a, nil
}

func (a App) settingsOpenInput(current string, limit int) (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = limit + 4
	ti.SetValue(current)
	ti.Focus()
	a.settings.input = ti
	a.settings.editing = true
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsCommit()
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		a.settings.status = ""
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsCommit() {
	raw := strings.TrimSpace(a.settings.input.Value())
	cfg := loadConfigOrDefault()

	switch a.settings.cursor {

	case settingsFieldUpcomingDays:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 90 {
			a.settings.status = "alert window must be 1-90 days"
			return
		}
		cfg.General.UpcomingDays = n
		a.upcomingDays = n
		a.settings.status = saveStatus(config.Save(cfg), fmt.Sprintf("alert window: %dd", n))
		a.recompute()

	case settingsFieldCurrency:
		if raw == "" {
			a.settings.status = "currency symbol cannot be empty"
			return
		}
		cfg.Appearance.Currency = raw
		a.currency = raw
		a.settings.status = saveStatus(config.Save(cfg), "currency: "+raw)

	case settingsFieldInterval:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 3600 {
			a.settings.status = "interval must be 1-3600 seconds"
			return
		}
		cfg.TUI.RefreshIntervalSec = n
		a.refreshInterval = time.Duration(n) * time.Second
		a.settings.status = saveStatus(config.Save(cfg), fmt.Sprintf("reload every %ds", n))

	case settingsFieldAPIKey:
		if raw == "" {
			a.settings.status = "API key unchanged"
			return
		}
		cfg.Gemini.APIKey = raw
		a.geminiKeyHint = maskKey(raw)
		a.settings.status = saveStatus(config.Save(cfg), "API key saved")
	}
}

func saveStatus(err error, ok string) string {
	if err != nil {
		return "save failed: " + err.Error()
	}
	return ok
}

// maskKey shows only the last 4 characters of a secret.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return "••••"
	}
	return "••••" + string(runes[len(runes)-4:])
}

func (a App) renderSettingsTab(cw int) string {
	if a.isCompactLayout() {
		var b strings.Builder
		b.WriteString(components.ContentCard("Settings", a.renderSettingsFields(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("About", a.renderSettingsInfo(components.CardInnerWidth(cw)), cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	left := components.ContentCard("Settings", a.renderSettingsFields(), widths[0])
	right := components.ContentCard("About", a.renderSettingsInfo(components.CardInnerWidth(widths[1])), widths[1])
	return components.CardRow([]string{left, right})
}

func (a App) renderSettingsFields() string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	row := func(field int, label, value string) string {
		marker := lipgloss.NewStyle().Background(t.Surface).Render("  ")
		if a.settings.cursor == field {
			marker = markerStyle.Render("▸ ")
		}
		if a.settings.editing && a.settings.cursor == field {
			value = a.settings.input.View()
		}
		return marker + labelStyle.Render(fmt.Sprintf("%-15s", label)) + value
	}

	onOff := dimStyle.Render("off")
	if a.autoRefresh {
		onOff = accentStyle.Render("on")
	}

	keyVal := dimStyle.Render("not set")
	if a.geminiKeyHint != "" {
		keyVal = valueStyle.Render(a.geminiKeyHint)
	}

	var b strings.Builder
	b.WriteString(row(settingsFieldTheme, "theme", accentStyle.Render(theme.Active.Name)))
	b.WriteString("\n")
	b.WriteString(row(settingsFieldUpcomingDays, "alert window", valueStyle.Render(fmt.Sprintf("%dd", a.upcomingDays))))
	b.WriteString("\n")
	b.WriteString(row(settingsFieldCurrency, "currency", valueStyle.Render(a.currency)))
	b.WriteString("\n")
	b.WriteString(row(settingsFieldAutoRefresh, "auto-reload", onOff))
	b.WriteString("\n")
	b.WriteString(row(settingsFieldInterval, "reload every", valueStyle.Render(fmt.Sprintf("%ds", int(a.refreshInterval.Seconds())))))
	b.WriteString("\n")
	b.WriteString(row(settingsFieldAPIKey, "gemini key", keyVal))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[j/k] field  [Enter] edit or toggle"))

	if a.settings.status != "" {
		b.WriteString("\n")
		b.WriteString(accentStyle.Render(a.settings.status))
	}

	return b.String()
}

func (a App) renderSettingsInfo(innerW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	pathW := innerW - 15
	if pathW < 12 {
		pathW = 12
	}

	field := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
	}

	var b strings.Builder
	b.WriteString(field("ledger", truncStr(a.dataFile, pathW)))
	b.WriteString("\n")
	b.WriteString(field("entries", fmt.Sprintf("%d", len(a.txs))))
	b.WriteString("\n")
	b.WriteString(field("start balance", cli.FormatMoney(a.balance, a.currency)))
	b.WriteString("\n")
	b.WriteString(field("config", truncStr(config.ConfigPath(), pathW)))

	return b.String()
}

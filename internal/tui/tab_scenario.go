package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/pipeline"
	"github.com/theirongolddev/cashburn/internal/tui/components"
	"github.com/theirongolddev/cashburn/internal/tui/theme"
)

// Scenario tab fields
const (
	scenFieldMode = iota
	scenFieldDelay
	scenFieldWhatIf
	scenFieldCount
)

const (
	maxDelayDays   = 60
	whatIfStep     = 100
	scenSparkDays  = 90
	scenCompareBar = 24
)

type scenarioState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

// scenarioNudge adjusts the selected field in place with left/right keys.
func (a *App) scenarioNudge(dir int) {
	switch a.scen.cursor {
	case scenFieldMode:
		if a.scenario.Scenario == pipeline.ScenarioBase {
			a.scenario.Scenario = pipeline.ScenarioDelays
		} else {
			a.scenario.Scenario = pipeline.ScenarioBase
		}
	case scenFieldDelay:
		d := a.scenario.DelayDays + dir
		if d < 0 {
			d = 0
		}
		if d > maxDelayDays {
			d = maxDelayDays
		}
		a.scenario.DelayDays = d
	case scenFieldWhatIf:
		v := a.scenario.WhatIfExpense.Add(decimal.NewFromInt(whatIfStep * int64(dir)))
		if v.IsNegative() {
			v = decimal.Zero
		}
		a.scenario.WhatIfExpense = v
	}
	a.recompute()
}

// scenarioReset returns to the unmodified base case.
func (a *App) scenarioReset() {
	a.scenario.Scenario = pipeline.ScenarioBase
	a.scenario.WhatIfExpense = decimal.Zero
	a.recompute()
}

func (a App) scenarioStartEdit() (tea.Model, tea.Cmd) {
	switch a.scen.cursor {
	case scenFieldMode:
		a.scenarioNudge(1)
		return a, nil

	case scenFieldDelay:
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 3
		ti.Width = 8
		ti.SetValue(strconv.Itoa(a.scenario.DelayDays))
		ti.Focus()
		a.scen.input = ti
		a.scen.editing = true
		return a, textinput.Blink

	case scenFieldWhatIf:
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 14
		if a.scenario.WhatIfExpense.IsPositive() {
			ti.SetValue(a.scenario.WhatIfExpense.StringFixed(2))
		}
		ti.Focus()
		a.scen.input = ti
		a.scen.editing = true
		return a, textinput.Blink
	}
	return a, nil
}

func (a App) updateScenarioInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.scenarioCommitEdit()
		a.scen.editing = false
		return a, nil
	case "esc":
		a.scen.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.scen.input, cmd = a.scen.input.Update(msg)
	return a, cmd
}

func (a *App) scenarioCommitEdit() {
	raw := strings.TrimSpace(a.scen.input.Value())

	switch a.scen.cursor {
	case scenFieldDelay:
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n <= maxDelayDays {
			a.scenario.DelayDays = n
		}
	case scenFieldWhatIf:
		raw = strings.TrimPrefix(raw, a.currency)
		raw = strings.ReplaceAll(raw, ",", "")
		if v, err := decimal.NewFromString(raw); err == nil && !v.IsNegative() {
			a.scenario.WhatIfExpense = v
		}
	}
	a.recompute()
}

func (a App) renderScenarioTab(cw int) string {
	compact := a.isCompactLayout()

	if compact {
		var b strings.Builder
		b.WriteString(components.ContentCard("Scenario Controls",
			a.renderScenarioControls(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Impact vs Base",
			a.renderScenarioImpact(components.CardInnerWidth(cw)), cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	controls := components.ContentCard("Scenario Controls",
		a.renderScenarioControls(components.CardInnerWidth(widths[0])), widths[0])
	impact := components.ContentCard("Impact vs Base",
		a.renderScenarioImpact(components.CardInnerWidth(widths[1])), widths[1])
	return components.CardRow([]string{controls, impact})
}

func (a App) renderScenarioControls(innerW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	row := func(field int, label, value string) string {
		marker := "  "
		if a.scen.cursor == field {
			marker = markerStyle.Render("▸ ")
		} else {
			marker = lipgloss.NewStyle().Background(t.Surface).Render(marker)
		}
		if a.scen.editing && a.scen.cursor == field {
			value = a.scen.input.View()
		}
		return marker + labelStyle.Render(fmt.Sprintf("%-16s", label)) + value
	}

	mode := valueStyle.Render("base case")
	if a.scenario.Scenario == pipeline.ScenarioDelays {
		mode = accentStyle.Render("payment delays")
	}

	delay := valueStyle.Render(fmt.Sprintf("+%dd", a.scenario.DelayDays))
	if a.scenario.Scenario != pipeline.ScenarioDelays {
		delay = dimStyle.Render(fmt.Sprintf("+%dd (inactive)", a.scenario.DelayDays))
	}

	whatIf := dimStyle.Render("off")
	if a.scenario.WhatIfExpense.IsPositive() {
		due := model.Today().AddDays(3)
		whatIf = accentStyle.Render(cli.FormatMoney(a.scenario.WhatIfExpense, a.currency)) +
			dimStyle.Render(" due "+due.Format("Jan 02"))
	}

	var b strings.Builder
	b.WriteString(row(scenFieldMode, "scenario", mode))
	b.WriteString("\n")
	b.WriteString(row(scenFieldDelay, "income delay", delay))
	b.WriteString("\n")
	b.WriteString(row(scenFieldWhatIf, "what-if expense", whatIf))
	b.WriteString("\n\n")

	// Show the shock as a share of cash on hand
	if a.scenario.WhatIfExpense.IsPositive() && a.result.Health.CurrentBalance.IsPositive() {
		share := a.scenario.WhatIfExpense.Div(a.result.Health.CurrentBalance).InexactFloat64()
		if share > 1 {
			share = 1
		}
		barW := innerW - 22
		if barW < 10 {
			barW = 10
		}
		b.WriteString(labelStyle.Render("share of cash  "))
		b.WriteString(components.ProgressBar(share, barW))
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render("[j/k] field  [←/→] adjust  [Enter] edit  [0] reset"))

	return b.String()
}

// renderScenarioImpact re-runs the base pipeline and shows the deltas the
// current scenario causes.
func (a App) renderScenarioImpact(innerW int) string {
	t := theme.Active

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	baseActive := a.scenario.Scenario == pipeline.ScenarioBase && !a.scenario.WhatIfExpense.IsPositive()
	if baseActive {
		return dimStyle.Render("Matches the base case.\n\nSwitch on payment delays or add a what-if\nexpense to see the impact.")
	}

	base := pipeline.Run(a.txs, a.balance, pipeline.Params{
		Scenario:     pipeline.ScenarioParams{Scenario: pipeline.ScenarioBase},
		Today:        model.Today(),
		UpcomingDays: a.upcomingDays,
	})

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	arrowStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	worseStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	row := func(label, baseV, curV string, worse bool) string {
		cur := valueStyle.Render(fmt.Sprintf("%12s", curV))
		if worse {
			cur = worseStyle.Render(fmt.Sprintf("%12s", curV))
		}
		return labelStyle.Render(fmt.Sprintf("%-15s", label)) +
			valueStyle.Render(fmt.Sprintf("%12s", baseV)) +
			arrowStyle.Render(" → ") +
			cur
	}

	bh := base.Health
	ch := a.result.Health

	var b strings.Builder
	b.WriteString(row("health score",
		fmt.Sprintf("%d", bh.HealthScore),
		fmt.Sprintf("%d", ch.HealthScore),
		ch.HealthScore < bh.HealthScore))
	b.WriteString("\n")
	b.WriteString(row("lowest point",
		cli.FormatMoney(bh.MinBalance, a.currency),
		cli.FormatMoney(ch.MinBalance, a.currency),
		ch.MinBalance.LessThan(bh.MinBalance)))
	b.WriteString("\n")
	b.WriteString(row("days to danger",
		cli.FormatDangerDays(bh.DaysUntilDanger),
		cli.FormatDangerDays(ch.DaysUntilDanger),
		dangerWorse(bh.DaysUntilDanger, ch.DaysUntilDanger)))
	b.WriteString("\n")
	b.WriteString(row("runway",
		cli.FormatRunway(bh.MonthlyRunway),
		cli.FormatRunway(ch.MonthlyRunway),
		runwayWorse(bh.MonthlyRunway, ch.MonthlyRunway)))
	b.WriteString("\n\n")

	// Balance shape, base over scenario
	sparkW := innerW - 10
	if sparkW < scenCompareBar {
		sparkW = scenCompareBar
	}
	baseVals := sparkValues(base.Points, sparkW)
	curVals := sparkValues(a.result.Points, sparkW)

	b.WriteString(labelStyle.Render(fmt.Sprintf("%-9s", "base")))
	b.WriteString(components.Sparkline(baseVals, t.Accent))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-9s", "scenario")))
	b.WriteString(components.Sparkline(curVals, t.Orange))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("next %dd", scenSparkDays)))

	return b.String()
}

// sparkValues samples the first scenSparkDays balances down to width points.
func sparkValues(points []model.ProjectionPoint, width int) []float64 {
	n := len(points)
	if n > scenSparkDays {
		n = scenSparkDays
	}
	if n == 0 {
		return nil
	}

	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = points[i].Balance.InexactFloat64()
	}
	if n <= width {
		return vals
	}

	sampled := make([]float64, width)
	for i := 0; i < width; i++ {
		sampled[i] = vals[i*n/width]
	}
	return sampled
}

func dangerWorse(base, cur *int) bool {
	if cur == nil {
		return false
	}
	if base == nil {
		return true
	}
	return *cur < *base
}

func runwayWorse(base, cur *decimal.Decimal) bool {
	if cur == nil {
		return false
	}
	if base == nil {
		return true
	}
	return cur.LessThan(*base)
}

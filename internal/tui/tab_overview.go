package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/pipeline"
	"github.com/theirongolddev/cashburn/internal/tui/components"
	"github.com/theirongolddev/cashburn/internal/tui/theme"
)

const (
	overviewChartDays   = 90
	overviewAlertRows   = 6
	overviewUpcomingTop = 5
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	h := a.result.Health
	compact := a.isCompactLayout()

	var b strings.Builder

	// Row 1: headline metrics
	dangerDelta := "no shortfall ahead"
	if h.DaysUntilDanger != nil {
		dangerDelta = "on " + model.Today().AddDays(*h.DaysUntilDanger).Format("Jan 02")
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Balance", cli.FormatMoney(h.CurrentBalance, a.currency), cli.FormatTrend(h.TrendDirection, a.currency) + "/day"},
		{"Health Score", fmt.Sprintf("%d/100", h.HealthScore), healthBand(h.HealthScore)},
		{"Runway", cli.FormatRunway(h.MonthlyRunway), "at current burn"},
		{"Days to Danger", cli.FormatDangerDays(h.DaysUntilDanger), dangerDelta},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: projected balance chart
	points := a.result.Points
	window := len(points)
	if window > overviewChartDays+1 {
		window = overviewChartDays + 1
	}
	chartPts := points[:window]

	vals := make([]float64, len(chartPts))
	for i, p := range chartPts {
		vals[i] = p.Balance.InexactFloat64()
	}

	chart := components.BarChart(vals, projChartLabels(chartPts), t.Blue, components.CardInnerWidth(cw), 12)
	chartTitle := fmt.Sprintf("Projected Balance · next %dd", window-1)
	b.WriteString(components.ContentCard(chartTitle, chart, cw))
	b.WriteString("\n")

	// Row 3: health detail and alerts side by side
	widths := components.LayoutRow(cw, 2)
	if compact {
		b.WriteString(components.ContentCard("Cash Health", a.renderHealthBody(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard(fmt.Sprintf("Alerts · %dd window", a.upcomingDays),
			a.renderAlertsBody(components.CardInnerWidth(cw)), cw))
	} else {
		healthCard := components.ContentCard("Cash Health", a.renderHealthBody(components.CardInnerWidth(widths[0])), widths[0])
		alertsCard := components.ContentCard(fmt.Sprintf("Alerts · %dd window", a.upcomingDays),
			a.renderAlertsBody(components.CardInnerWidth(widths[1])), widths[1])
		b.WriteString(components.CardRow([]string{healthCard, alertsCard}))
	}
	b.WriteString("\n")

	// Row 4: largest upcoming transactions
	b.WriteString(components.ContentCard("Largest Upcoming · 30d",
		a.renderUpcomingBody(components.CardInnerWidth(cw)), cw))

	return b.String()
}

func (a App) renderHealthBody(innerW int) string {
	t := theme.Active
	h := a.result.Health

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	redStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	barW := innerW - 18
	if barW < 10 {
		barW = 10
	}

	minBal := valueStyle.Render(cli.FormatMoney(h.MinBalance, a.currency))
	if h.MinBalance.IsNegative() {
		minBal = redStyle.Render(cli.FormatMoney(h.MinBalance, a.currency))
	}

	trendStyle := valueStyle
	if h.TrendDirection.IsNegative() {
		trendStyle = lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	} else if h.TrendDirection.IsPositive() {
		trendStyle = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	}

	var b strings.Builder
	b.WriteString(components.HealthBar("score", h.HealthScore, 6, barW))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n",
		labelStyle.Render(fmt.Sprintf("%-14s", "lowest point")), minBal)
	fmt.Fprintf(&b, "%s %s\n",
		labelStyle.Render(fmt.Sprintf("%-14s", "daily trend")),
		trendStyle.Render(cli.FormatTrend(h.TrendDirection, a.currency)))
	fmt.Fprintf(&b, "%s %s",
		labelStyle.Render(fmt.Sprintf("%-14s", "runway")),
		valueStyle.Render(cli.FormatRunway(h.MonthlyRunway)))

	return b.String()
}

func (a App) renderAlertsBody(innerW int) string {
	t := theme.Active
	alerts := a.result.Alerts

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if len(alerts) == 0 {
		return dimStyle.Render(fmt.Sprintf("Nothing due in the next %dd.", a.upcomingDays))
	}

	overdueStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	soonStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	descW := innerW - 30
	if descW < 8 {
		descW = 8
	}

	var b strings.Builder
	shown := len(alerts)
	if shown > overviewAlertRows {
		shown = overviewAlertRows
	}

	for i := 0; i < shown; i++ {
		al := alerts[i]

		var lead string
		switch {
		case al.Kind == pipeline.AlertOverdue:
			lead = overdueStyle.Render(fmt.Sprintf("%-11s", fmt.Sprintf("▲ %dd late", -al.DaysOut)))
		case al.DaysOut == 0:
			lead = soonStyle.Render(fmt.Sprintf("%-11s", "● today"))
		default:
			lead = soonStyle.Render(fmt.Sprintf("%-11s", fmt.Sprintf("● in %dd", al.DaysOut)))
		}

		tx := al.Transaction
		amtStyle := expenseStyle
		amt := "-" + cli.FormatMoney(tx.Amount, a.currency)
		if tx.Type == model.Income {
			amtStyle = incomeStyle
			amt = "+" + cli.FormatMoney(tx.Amount, a.currency)
		}

		fmt.Fprintf(&b, "%s %s %s",
			lead,
			descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))),
			amtStyle.Render(fmt.Sprintf("%12s", amt)))
		if i < shown-1 {
			b.WriteString("\n")
		}
	}

	if len(alerts) > shown {
		fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf("+%d more", len(alerts)-shown)))
	}

	return b.String()
}

// renderUpcomingBody lists the largest transactions due in the next 30 days
// with bars proportional to the biggest amount.
func (a App) renderUpcomingBody(innerW int) string {
	t := theme.Active
	today := model.Today()
	horizon := today.AddDays(30)

	var upcoming []model.Transaction
	for _, tx := range a.result.Transactions {
		if tx.Date.IsZero() || tx.Date.Before(today) || tx.Date.After(horizon) {
			continue
		}
		upcoming = append(upcoming, tx)
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if len(upcoming) == 0 {
		return dimStyle.Render("No transactions scheduled in the next 30d.")
	}

	sortTxsByAmountDesc(upcoming)
	if len(upcoming) > overviewUpcomingTop {
		upcoming = upcoming[:overviewUpcomingTop]
	}
	maxAmt := upcoming[0].Amount

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	incomeBarStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	expenseBarStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	descW := 18
	barMax := innerW - descW - 28
	if barMax < 6 {
		barMax = 6
	}

	var b strings.Builder
	for i, tx := range upcoming {
		frac := 1.0
		if maxAmt.IsPositive() {
			frac = tx.Amount.Div(maxAmt).InexactFloat64()
		}
		barW := int(frac * float64(barMax))
		if barW < 1 {
			barW = 1
		}

		barStyle := expenseBarStyle
		if tx.Type == model.Income {
			barStyle = incomeBarStyle
		}

		fmt.Fprintf(&b, "%s %s %s %s",
			dateStyle.Render(tx.Date.Format("Jan 02")),
			descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))),
			barStyle.Render(strings.Repeat("█", barW)),
			amtStyle.Render(cli.FormatMoney(tx.Amount, a.currency)))
		if i < len(upcoming)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func sortTxsByAmountDesc(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Amount.GreaterThan(txs[j].Amount)
	})
}

func healthBand(score int) string {
	switch {
	case score >= 80:
		return "healthy"
	case score >= 60:
		return "stable"
	case score >= 40:
		return "strained"
	default:
		return "critical"
	}
}

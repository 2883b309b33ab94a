package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/tui/components"
	"github.com/theirongolddev/cashburn/internal/tui/theme"
)

// renderProjectionTab shows the full day-by-day balance table. The chart on
// the overview tab covers the shape; this tab is for reading exact numbers.
func (a App) renderProjectionTab(cw, contentH int) string {
	t := theme.Active
	points := a.result.Points

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if len(points) == 0 {
		return components.ContentCard("Daily Projection", dimStyle.Render("No projection available."), cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	weekendStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	todayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	balStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	negStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	incStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	expStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	netUpStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	netDownStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)

	const (
		dateW = 12
		balW  = 13
		incW  = 11
		expW  = 11
		netW  = 12
	)

	// Rows that fit: card chrome, header, two rules, footer
	visible := contentH - 9
	if visible < 3 {
		visible = 3
	}
	if visible > len(points) {
		visible = len(points)
	}

	maxStart := len(points) - visible
	offset := a.projOffset
	if offset > maxStart {
		offset = maxStart
	}
	if offset < 0 {
		offset = 0
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s  %s  %s\n",
		headerStyle.Render(fmt.Sprintf("%-*s", dateW, "Date")),
		headerStyle.Render(fmt.Sprintf("%*s", balW, "Balance")),
		headerStyle.Render(fmt.Sprintf("%*s", incW, "Income")),
		headerStyle.Render(fmt.Sprintf("%*s", expW, "Expenses")),
		headerStyle.Render(fmt.Sprintf("%*s", netW, "Net")))
	b.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	for i := offset; i < offset+visible; i++ {
		p := points[i]

		ds := dateStyle
		wd := p.Date.Time().Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			ds = weekendStyle
		}
		if i == 0 {
			ds = todayStyle
		}
		dateCell := ds.Render(fmt.Sprintf("%-*s", dateW, p.Date.Format("Jan 02 Mon")))

		bs := balStyle
		if p.Balance.IsNegative() {
			bs = negStyle
		}
		balCell := bs.Render(fmt.Sprintf("%*s", balW, cli.FormatMoney(p.Balance, a.currency)))

		incCell := dimStyle.Render(fmt.Sprintf("%*s", incW, "·"))
		if p.DailyIncome.IsPositive() {
			incCell = incStyle.Render(fmt.Sprintf("%*s", incW, cli.FormatMoney(p.DailyIncome, a.currency)))
		}

		expCell := dimStyle.Render(fmt.Sprintf("%*s", expW, "·"))
		if p.DailyExpenses.IsPositive() {
			expCell = expStyle.Render(fmt.Sprintf("%*s", expW, cli.FormatMoney(p.DailyExpenses, a.currency)))
		}

		netCell := dimStyle.Render(fmt.Sprintf("%*s", netW, "·"))
		if p.NetFlow.IsPositive() {
			netCell = netUpStyle.Render(fmt.Sprintf("%*s", netW, cli.FormatTrend(p.NetFlow, a.currency)))
		} else if p.NetFlow.IsNegative() {
			netCell = netDownStyle.Render(fmt.Sprintf("%*s", netW, cli.FormatTrend(p.NetFlow, a.currency)))
		}

		fmt.Fprintf(&b, "%s  %s  %s  %s  %s\n", dateCell, balCell, incCell, expCell, netCell)
	}

	b.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("days %d-%d of %d · [j/k] scroll  [^d/^u] page  [g/G] ends",
		offset+1, offset+visible, len(points))))

	title := fmt.Sprintf("Daily Projection · %s → %s",
		points[0].Date.Format("Jan 02"),
		points[len(points)-1].Date.Format("Jan 02, 2006"))

	return components.ContentCard(title, b.String(), cw)
}

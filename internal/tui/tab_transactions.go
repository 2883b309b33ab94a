package tui

import (
	"fmt"
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

// Transactions tab view modes
const (
	txViewSplit = iota
	txViewDetail
)

type transactionsState struct {
	cursor       int
	viewMode     int
	offset       int
	detailScroll int
	searching    bool
	searchInput  textinput.Model
	searchQuery  string
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "description, type, status, amount..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// updateTransactionsSearch handles keys while the search input is focused.
func (a App) updateTransactionsSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.txState.searchQuery = strings.TrimSpace(a.txState.searchInput.Value())
		a.txState.searching = false
		a.txState.cursor = 0
		a.txState.offset = 0
		a.txState.detailScroll = 0
		return a, nil
	case "esc":
		a.txState.searching = false
		a.txState.searchQuery = ""
		a.txState.cursor = 0
		a.txState.offset = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.txState.searchInput, cmd = a.txState.searchInput.Update(msg)
	return a, cmd
}

// getSearchFilteredTxs returns the ledger list filtered by the active search
// query. Matches description, type, status and the formatted amount.
func (a App) getSearchFilteredTxs() []model.Transaction {
	q := strings.ToLower(strings.TrimSpace(a.txState.searchQuery))
	if a.txState.searching {
		q = strings.ToLower(strings.TrimSpace(a.txState.searchInput.Value()))
	}
	if q == "" {
		return a.listTxs
	}

	var out []model.Transaction
	for _, tx := range a.listTxs {
		if strings.Contains(strings.ToLower(tx.Description), q) ||
			strings.Contains(strings.ToLower(string(tx.Type)), q) ||
			strings.Contains(strings.ToLower(string(tx.Status)), q) ||
			strings.Contains(tx.Amount.StringFixed(2), q) {
			out = append(out, tx)
		}
	}
	return out
}

func (a App) renderTransactionsContent(filtered []model.Transaction, cw, contentH int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(a.listTxs) == 0 {
		body := dimStyle.Render("The ledger is empty.\n\nAdd entries with `cashburn add` or import a bank statement\nwith `cashburn statement import`, then press r to reload.")
		return components.ContentCard("Transactions", body, cw)
	}

	// Search bar row above the list
	var searchBar string
	if a.txState.searching {
		searchBar = lipgloss.NewStyle().Background(t.Surface).Width(cw).
			Render(" " + a.txState.searchInput.View())
	} else if a.txState.searchQuery != "" {
		searchBar = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Width(cw).
			Render(fmt.Sprintf(" /%s · %d matches · esc clears", a.txState.searchQuery, len(filtered)))
	}

	listH := contentH
	if searchBar != "" {
		listH--
	}

	var content string
	compact := a.isCompactLayout()
	switch {
	case compact:
		content = a.renderTxList(filtered, cw, listH)
	case a.txState.viewMode == txViewDetail:
		content = a.renderTxDetail(filtered, cw, listH)
	default:
		listW := cw / 3
		if listW < 34 {
			listW = 34
		}
		detailW := cw - listW - 1
		list := a.renderTxList(filtered, listW, listH)
		detail := a.renderTxDetail(filtered, detailW, listH)
		content = components.CardRow([]string{list, detail})
	}

	if searchBar == "" {
		return content
	}
	return searchBar + "\n" + content
}

func (a App) renderTxList(filtered []model.Transaction, w, h int) string {
	t := theme.Active

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if len(filtered) == 0 {
		return components.ContentCard("Transactions", dimStyle.Render("No matches."), w)
	}

	innerW := components.CardInnerWidth(w)

	visible := h - 6
	if visible < 3 {
		visible = 3
	}
	if visible > len(filtered) {
		visible = len(filtered)
	}

	// Keep the cursor inside the window
	off := a.txState.offset
	if a.txState.cursor < off {
		off = a.txState.cursor
	}
	if a.txState.cursor >= off+visible {
		off = a.txState.cursor - visible + 1
	}
	if off < 0 {
		off = 0
	}

	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true)

	descW := innerW - 25
	if descW < 6 {
		descW = 6
	}

	var b strings.Builder
	for i := off; i < off+visible && i < len(filtered); i++ {
		tx := filtered[i]

		amt := "-" + cli.FormatMoney(tx.Amount, a.currency)
		amtColor := t.Orange
		if tx.Type == model.Income {
			amt = "+" + cli.FormatMoney(tx.Amount, a.currency)
			amtColor = t.Green
		}

		bg := t.Surface
		if i == a.txState.cursor {
			bg = t.SurfaceHover
		}

		dateCell := lipgloss.NewStyle().Foreground(t.TextDim).Background(bg).Render(tx.Date.Format("Jan 02"))
		dotCell := lipgloss.NewStyle().Foreground(statusColor(tx.Status)).Background(bg).Render("●")
		amtCell := lipgloss.NewStyle().Foreground(amtColor).Background(bg).Render(fmt.Sprintf("%12s", amt))
		descCell := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg).
			Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW)))

		marker := lipgloss.NewStyle().Background(bg).Render("  ")
		if i == a.txState.cursor {
			marker = selStyle.Render("▸ ")
		}

		spacer := lipgloss.NewStyle().Background(bg).Render(" ")
		b.WriteString(marker + dateCell + spacer + dotCell + spacer + amtCell + spacer + descCell)
		if i < off+visible-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d · [/] search  [Enter] expand", a.txState.cursor+1, len(filtered))))

	return components.ContentCard("Transactions", b.String(), w)
}

func (a App) renderTxDetail(filtered []model.Transaction, w, h int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(filtered) == 0 || a.txState.cursor >= len(filtered) {
		return components.ContentCard("Detail", dimStyle.Render("Nothing selected."), w)
	}
	tx := filtered[a.txState.cursor]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	amtStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
	amt := "-" + cli.FormatMoney(tx.Amount, a.currency)
	if tx.Type == model.Income {
		amtStyle = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
		amt = "+" + cli.FormatMoney(tx.Amount, a.currency)
	}

	today := model.Today()
	rel := "today"
	if d := tx.Date.DaysSince(today); d > 0 {
		rel = fmt.Sprintf("in %dd", d)
	} else if d < 0 {
		rel = fmt.Sprintf("%dd ago", -d)
	}

	field := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-13s", label)) + valueStyle.Render(value)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncStr(tx.Description, components.CardInnerWidth(w))))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", "amount")) + amtStyle.Render(amt))
	b.WriteString("\n")
	b.WriteString(field("date", fmt.Sprintf("%s · %s", cli.FormatDate(tx.Date), rel)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", "status")) +
		lipgloss.NewStyle().Foreground(statusColor(tx.Status)).Background(t.Surface).Render(string(tx.Status)))
	b.WriteString("\n")
	b.WriteString(field("type", string(tx.Type)))
	b.WriteString("\n")
	b.WriteString(field("probability", cli.FormatProbability(tx.Probability)))

	if tx.Status == model.Pending && tx.Probability < 100 {
		expected := tx.Amount.Mul(probabilityFactor(tx.Probability))
		b.WriteString("\n")
		b.WriteString(field("expected", cli.FormatMoney(expected, a.currency)))
	}

	b.WriteString("\n")
	b.WriteString(field("id", fmt.Sprintf("#%d", tx.ID)))

	// Alert note when this entry is flagged
	for _, al := range a.result.Alerts {
		if al.Transaction.ID != tx.ID {
			continue
		}
		b.WriteString("\n\n")
		if al.Kind == pipeline.AlertOverdue {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
				Render(fmt.Sprintf("▲ %d days overdue", -al.DaysOut)))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).
				Render(fmt.Sprintf("● due within %dd", a.upcomingDays)))
		}
		break
	}

	b.WriteString("\n\n")
	if a.txState.viewMode == txViewDetail {
		b.WriteString(dimStyle.Render("[q/esc] back  [j/k] navigate  [J/K] scroll"))
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("edit: cashburn edit %d", tx.ID)))
	}

	body := b.String()

	// Apply detail scroll
	if a.txState.detailScroll > 0 {
		lines := strings.Split(body, "\n")
		scroll := a.txState.detailScroll
		if scroll >= len(lines) {
			scroll = len(lines) - 1
		}
		body = strings.Join(lines[scroll:], "\n")
	}

	return components.ContentCard(fmt.Sprintf("Detail · #%d", tx.ID), body, w)
}

func probabilityFactor(p int) decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(decimal.NewFromInt(100))
}

func statusColor(s model.TxStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.Confirmed:
		return t.Green
	case model.Pending:
		return t.Yellow
	default:
		return t.Blue
	}
}

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/cashburn/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

// Cards of uneven height joined into a row must all reach the tallest
// card's height, with every line spanning the full joined width. Without
// this the area under a short card renders as bare terminal cells.
func TestCardRowPadsShortCards(t *testing.T) {
	tall := ContentCard("Tall", "one\ntwo\nthree\nfour", 30)
	short := ContentCard("Short", "one", 30)

	row := CardRow([]string{tall, short})

	if got, want := lipgloss.Height(row), lipgloss.Height(tall); got != want {
		t.Fatalf("row height = %d, want %d", got, want)
	}

	wantW := lipgloss.Width(tall) + lipgloss.Width(short)
	for i, line := range strings.Split(row, "\n") {
		if got := lipgloss.Width(line); got != wantW {
			t.Errorf("line %d width = %d, want %d", i, got, wantW)
		}
	}
}

func TestCardRowSingleCardUnchanged(t *testing.T) {
	card := ContentCard("Solo", "body", 28)
	if got := CardRow([]string{card}); got != card {
		t.Errorf("single-card row should be the card itself")
	}
}

func TestMetricCardRowSpansTotalWidth(t *testing.T) {
	cards := []struct{ Label, Value, Delta string }{
		{"Balance", "$1,200.00", "↑ $40.00/day"},
		{"Health Score", "82/100", "healthy"},
		{"Runway", "3.4 months", "at current burn"},
		{"Days to Danger", "∞", "no shortfall ahead"},
	}

	row := MetricCardRow(cards, 120)
	for i, line := range strings.Split(row, "\n") {
		if got := lipgloss.Width(line); got != 120 {
			t.Errorf("line %d width = %d, want 120", i, got)
		}
	}
}

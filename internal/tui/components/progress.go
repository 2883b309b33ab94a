package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/cashburn/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a visually appealing progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	// Color gradient based on progress
	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForScore returns green/yellow/orange/red for a 0-100 health score.
// Higher scores are healthier.
func ColorForScore(score int) string {
	t := theme.Active
	switch {
	case score >= 80:
		return string(t.Green)
	case score >= 60:
		return string(t.Yellow)
	case score >= 40:
		return string(t.Orange)
	default:
		return string(t.Red)
	}
}

// HealthBar renders a labeled progress bar for a 0-100 health score.
func HealthBar(label string, score int, labelW, barWidth int) string {
	t := theme.Active

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	pct := float64(score) / 100

	bar := progress.New(
		progress.WithSolidFill(ColorForScore(score)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	scoreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForScore(score))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		scoreStyle.Render(fmt.Sprintf("%3d/100", score))
}

// CompactScoreBar renders a tiny status-bar-sized health indicator.
func CompactScoreBar(label string, score int, width int) string {
	t := theme.Active

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	pct := float64(score) / 100

	barW := width - lipgloss.Width(label) - 6
	if barW < 4 {
		barW = 4
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForScore(score)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	scoreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForScore(score))).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(label) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		scoreStyle.Render(fmt.Sprintf("%3d", score))
}

package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/cashburn/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values. Values are normalized
// over their own range so a series that dips negative still reads correctly.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	if span == 0 {
		return style.Render(strings.Repeat("▄", len(values)))
	}

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders a bar chart with gradient-style coloring. Negative values
// are supported: bars hang below a zero axis in red, and the axis itself is
// drawn dashed in red as the danger line whenever the series crosses it.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	// Find the positive ceiling and negative floor
	hi := 0.0
	lo := 0.0
	for _, v := range values {
		if v > hi {
			hi = v
		}
		if v < lo {
			lo = v
		}
	}
	if hi == 0 && lo == 0 {
		hi = 1
	}

	// Y-axis: snap both extremes to a shared tick step
	tickStep := chartTickStep(math.Max(hi, -lo))
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		n := int(math.Ceil(hi/tickStep)) + int(math.Ceil(-lo/tickStep))
		if n <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	ceiling := math.Ceil(hi/tickStep) * tickStep
	floor := -math.Ceil(-lo/tickStep) * tickStep
	span := ceiling - floor
	if span == 0 {
		span = 1
	}

	// Partition rows between the positive and negative regions
	chartH := height
	rowsBelow := int(math.Round(float64(chartH) * -floor / span))
	if floor < 0 && rowsBelow < 1 {
		rowsBelow = 1
	}
	if rowsBelow > chartH-1 && ceiling > 0 {
		rowsBelow = chartH - 1
	}
	if rowsBelow > chartH {
		rowsBelow = chartH
	}
	rowsAbove := chartH - rowsBelow

	// Pre-compute tick labels for the positive region
	yLabelW := len(formatChartLabel(ceiling)) + 1
	if floor < 0 {
		if w := len(formatChartLabel(floor)) + 1; w > yLabelW {
			yLabelW = w
		}
	}
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	if rowsAbove > 0 && ceiling > 0 {
		numIntervals := int(math.Round(ceiling / tickStep))
		for i := 1; i <= numIntervals; i++ {
			row := int(math.Round(float64(rowsAbove) * tickStep * float64(i) / ceiling))
			if row >= 1 && row <= rowsAbove {
				tickLabels[row] = formatChartLabel(tickStep * float64(i))
			}
		}
	}

	// Chart area width
	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	n := len(values)

	// Bar sizing
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := 2
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else if n == 1 {
		barW = chartW
	}
	if barW < 2 && n > 1 {
		maxN := (chartW + 1) / 3
		if maxN < 2 {
			maxN = 2
		}
		sampled := make([]float64, maxN)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, maxN)
		}
		for i := range sampled {
			srcIdx := i * (n - 1) / (maxN - 1)
			sampled[i] = values[srcIdx]
			if sampledLabels != nil {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		values = sampled
		labels = sampledLabels
		n = maxN
		barW = 2
	}
	if barW > 6 {
		barW = 6
	}
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	dangerStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	negStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	gapStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder

	// Positive region, rendered top to bottom
	for row := rowsAbove; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(rowsAbove)
		rowBottom := ceiling * float64(row-1) / float64(rowsAbove)
		rowPct := float64(row) / float64(rowsAbove) // how high in the region

		// Gradient effect by row height
		var barColor lipgloss.Color
		switch {
		case rowPct > 0.8:
			barColor = t.AccentBright
		case rowPct > 0.5:
			barColor = color
		default:
			barColor = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		label := tickLabels[row]
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(gapStyle.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(gapStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	// Zero axis. Dashed red when the series can cross it, dim otherwise.
	zeroStyle := axisStyle
	axisRune := "─"
	corner := "└"
	if rowsBelow > 0 {
		zeroStyle = dangerStyle
		axisRune = "╌"
		corner = "├"
	}
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(zeroStyle.Render(corner))
	b.WriteString(zeroStyle.Render(strings.Repeat(axisRune, axisLen)))

	// Negative region, rendered away from the axis
	for row := 1; row <= rowsBelow; row++ {
		depthTop := -floor * float64(row) / float64(rowsBelow)
		depthBottom := -floor * float64(row-1) / float64(rowsBelow)

		b.WriteString("\n")
		label := ""
		if row == rowsBelow {
			label = formatChartLabel(floor)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(gapStyle.Render(strings.Repeat(" ", gap)))
			}
			depth := -v
			switch {
			case depth >= depthTop:
				b.WriteString(negStyle.Render(strings.Repeat("█", barW)))
			case depth > depthBottom:
				b.WriteString(negStyle.Render(strings.Repeat("▀", barW)))
			default:
				b.WriteString(gapStyle.Render(strings.Repeat(" ", barW)))
			}
		}
	}

	// X-axis labels
	if len(labels) == n && n > 0 {
		buf := make([]byte, axisLen)
		for i := range buf {
			buf[i] = ' '
		}

		minSpacing := 8
		labelStep := max(1, (n*minSpacing)/(axisLen+1))

		lastEnd := -1
		for i := 0; i < n; i += labelStep {
			pos := i * (barW + gap)
			lbl := labels[i]
			end := pos + len(lbl)
			if pos <= lastEnd {
				continue
			}
			if end > axisLen {
				end = axisLen
				if end-pos < 3 {
					continue
				}
				lbl = lbl[:end-pos]
			}
			copy(buf[pos:end], lbl)
			lastEnd = end + 1
		}
		if n > 1 {
			lbl := labels[n-1]
			pos := (n - 1) * (barW + gap)
			end := pos + len(lbl)
			if end > axisLen {
				pos = axisLen - len(lbl)
				end = axisLen
			}
			if pos >= 0 && pos > lastEnd {
				for j := pos; j < end; j++ {
					buf[j] = ' '
				}
				copy(buf[pos:end], lbl)
			}
		}

		b.WriteString("\n")
		labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(gapStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(labelStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

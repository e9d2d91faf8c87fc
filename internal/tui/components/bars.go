package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

// HBars renders one labelled horizontal bar per value, scaled to the
// largest value. Each value is printed after its bar using format.
func HBars(labels []string, values []float64, format func(float64) string, width int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)
	valueStyle := lipgloss.NewStyle().Foreground(t.Money)

	labelW := 0
	valueW := 0
	peak := 0.0
	for i, v := range values {
		if i < len(labels) {
			labelW = max(labelW, lipgloss.Width(labels[i]))
		}
		valueW = max(valueW, lipgloss.Width(format(v)))
		peak = max(peak, v)
	}
	barMax := width - labelW - valueW - 3
	if barMax < 1 {
		barMax = 1
	}

	var b strings.Builder
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		n := 0
		if peak > 0 {
			n = int(v / peak * float64(barMax))
		}
		fmt.Fprintf(&b, "%s %s%s %s\n",
			labelStyle.Render(label+strings.Repeat(" ", labelW-lipgloss.Width(label))),
			barStyle.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barMax-n),
			valueStyle.Render(format(v)))
	}
	return strings.TrimRight(b.String(), "\n")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/report"
	"github.com/theirongolddev/bcalc/internal/tui/components"
	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

const topItemCount = 5

func (a App) renderSummary(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	if len(a.budgets) == 0 {
		return "\n" + lipgloss.PlaceHorizontal(cw, lipgloss.Center, muted.Render("Nothing to summarize yet."))
	}

	s := report.Summarize(a.budgets)
	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budgets", Value: cli.FormatNumber(int64(s.Budgets))},
		{Label: "Expenses", Value: cli.FormatNumber(int64(s.Expenses))},
		{Label: "Grand total", Value: cli.FormatMoney(s.GrandTotal)},
		{Label: "Average", Value: cli.FormatMoney(s.Average)},
	}, cw))
	b.WriteString("\n")

	half := components.LayoutRow(cw, 2)

	months := report.ByMonth(a.budgets)
	labels := make([]string, len(months))
	values := make([]float64, len(months))
	for i, m := range months {
		labels[i] = m.Month
		values[i] = m.Total
	}
	monthBody := components.HBars(labels, values, cli.FormatMoney, components.CardInnerWidth(half[0]))

	items := report.TopItems(a.budgets, topItemCount)
	labels = make([]string, len(items))
	values = make([]float64, len(items))
	for i, it := range items {
		labels[i] = cli.Truncate(it.Name, 16)
		values[i] = it.Total
	}
	itemBody := components.HBars(labels, values, cli.FormatMoney, components.CardInnerWidth(half[1]))

	b.WriteString(components.CardRow([]string{
		components.ContentCard("By month", monthBody, half[0]),
		components.ContentCard(fmt.Sprintf("Top %d items", len(items)), itemBody, half[1]),
	}))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf(" Largest: %s (%s)", s.Largest.Title, cli.FormatMoney(s.Largest.Total))))
	return b.String()
}

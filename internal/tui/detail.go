package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/tui/components"
	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

func (a App) updateDetail(key string) (tea.Model, tea.Cmd, bool) {
	if a.cursor >= len(a.budgets) {
		a.detail = false
		return a, nil, true
	}
	b := a.budgets[a.cursor]

	switch key {
	case "esc", "backspace", "h":
		a.detail = false
	case "s":
		m, cmd := a.startShare(b)
		return m, cmd, true
	case "p":
		a.notice = components.Notice{Text: "Exporting…"}
		return a, exportCmd(b, a.product, a.exportDir), true
	case "d":
		a.confirmDelete = true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderDetail(cw int) string {
	b := a.budgets[a.cursor]
	return components.ContentCard("", renderBudget(b, components.CardInnerWidth(min(cw, 64))), min(cw, 64))
}

// renderBudget lays out a budget as the title, the date, the numbered
// expenses with right-aligned amounts, and the total.
func renderBudget(b budget.Budget, width int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Money)
	totalStyle := lipgloss.NewStyle().Foreground(t.Money).Bold(true)

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var sb strings.Builder
	sb.WriteString(center(titleStyle.Render(b.Title)))
	sb.WriteString("\n")
	sb.WriteString(center(mutedStyle.Render(b.Date)))
	sb.WriteString("\n\n")

	if len(b.Expenses) == 0 {
		sb.WriteString(mutedStyle.Render("No expenses"))
		sb.WriteString("\n")
	}
	for i, e := range b.Expenses {
		amount := cli.FormatAmount(e.Amount)
		left := fmt.Sprintf("%d. %s", i+1, e.Name)
		left = cli.Truncate(left, max(width-lipgloss.Width(amount)-1, 4))
		gap := max(width-lipgloss.Width(left)-lipgloss.Width(amount), 1)
		sb.WriteString(nameStyle.Render(left))
		sb.WriteString(strings.Repeat(" ", gap))
		sb.WriteString(moneyStyle.Render(amount))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	total := "Total: " + cli.FormatAmount(b.Total)
	sb.WriteString(strings.Repeat(" ", max(width-lipgloss.Width(total), 0)))
	sb.WriteString(totalStyle.Render(total))
	return sb.String()
}

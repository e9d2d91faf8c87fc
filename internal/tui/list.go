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

// updateList handles keys for the budgets list. ok is false when the key
// should fall through to the global bindings.
func (a App) updateList(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = max(len(a.budgets)-1, 0)
	case "enter":
		if len(a.budgets) > 0 {
			a.detail = true
			a.notice = components.Notice{}
		}
	case "d", "delete":
		if len(a.budgets) > 0 {
			a.confirmDelete = true
		}
	case "s":
		if len(a.budgets) > 0 {
			m, cmd := a.startShare(a.budgets[a.cursor])
			return m, cmd, true
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	a.confirmDelete = false
	if key != "y" && key != "Y" {
		a.notice = components.Notice{}
		return a, nil
	}

	b := a.budgets[a.cursor]
	err := a.store.Delete(b.ID)
	a.reload()
	a.detail = false
	if err != nil {
		a.notice = storageNotice(err)
		return a, nil
	}
	a.notice = components.Notice{Text: fmt.Sprintf("Deleted %q", b.Title)}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	if a.cursor >= len(a.budgets) {
		a.cursor = len(a.budgets) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) renderList(cw, h int) string {
	t := theme.Active

	if len(a.budgets) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "\n" + lipgloss.PlaceHorizontal(cw, lipgloss.Center,
			muted.Render("No saved budgets yet!")+"\n\n"+
				lipgloss.PlaceHorizontal(cw, lipgloss.Center, muted.Render("Press a to add one.")))
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Money)
	selStyle := lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true)

	const (
		numW   = 4
		idW    = 8
		dateW  = 12
		itemsW = 6
		totalW = 14
	)
	titleW := max(cw-numW-idW-dateW-itemsW-totalW-7, 10)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(" %*s %-*s %-*s %-*s %*s %*s",
		numW, "#", idW, "ID", titleW, "Title", dateW, "Date", itemsW, "Items", totalW, "Total")))
	b.WriteString("\n")

	// Keep the cursor visible within the rows that fit.
	visible := max(h-2, 1)
	offset := 0
	if a.cursor >= visible {
		offset = a.cursor - visible + 1
	}

	end := min(offset+visible, len(a.budgets))
	for i := offset; i < end; i++ {
		bg := a.budgets[i]
		title := cli.Truncate(bg.Title, titleW)
		line := fmt.Sprintf(" %*d %s %s %s %*d %s",
			numW, i+1,
			mutedStyle.Render(fmt.Sprintf("%-*s", idW, budget.ShortID(bg.ID))),
			rowStyle.Render(title+strings.Repeat(" ", max(titleW-lipgloss.Width(title), 0))),
			mutedStyle.Render(fmt.Sprintf("%-*s", dateW, cli.Truncate(bg.Date, dateW))),
			itemsW, len(bg.Expenses),
			moneyStyle.Render(fmt.Sprintf("%*s", totalW, cli.FormatMoney(bg.Total))))
		if i == a.cursor {
			line = selStyle.Render(line + strings.Repeat(" ", max(cw-lipgloss.Width(line), 0)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(a.budgets) > visible {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %d/%d", a.cursor+1, len(a.budgets))))
	}
	return b.String()
}

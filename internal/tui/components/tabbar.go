package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines the dashboard tabs in order.
var Tabs = []Tab{
	{Name: "Budgets", Key: 'b', KeyPos: 0},
	{Name: "Add", Key: 'a', KeyPos: 0},
	{Name: "Summary", Key: 'm', KeyPos: 3},
}

// tabSep separates tabs in the bar.
const tabSep = "  "

// RenderTabBar renders the tab bar with the given active index, with the
// product name on the right.
func RenderTabBar(activeIdx int, product string, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	brandStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = activeStyle.Render(tab.Name)
			continue
		}
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			parts[i] = inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
				keyStyle.Render(string(tab.Name[tab.KeyPos])) +
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:])
		} else {
			parts[i] = inactiveStyle.Render(tab.Name)
		}
	}

	left := " " + strings.Join(parts, tabSep)
	right := brandStyle.Render("◈ " + product + " ")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// TabAtX returns the tab under column x of the bar, or -1.
func TabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range Tabs {
		w := lipgloss.Width(tab.Name)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabSep)
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

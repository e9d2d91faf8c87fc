package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

// NoticeKind selects the color of a status bar notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarn
	NoticeError
)

// Notice is a one-line message shown on the right of the status bar.
type Notice struct {
	Text string
	Kind NoticeKind
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the current notice, if any, on the right.
func RenderStatusBar(width int, hints string, n Notice) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	noticeColor := t.TextPrimary
	switch n.Kind {
	case NoticeWarn:
		noticeColor = t.Warn
	case NoticeError:
		noticeColor = t.Error
	}
	noticeStyle := lipgloss.NewStyle().
		Foreground(noticeColor).
		Background(t.Surface)

	left := " " + hints
	right := ""
	if n.Text != "" {
		right = n.Text + " "
	}

	// Notice wins over hints when both don't fit.
	if room := width - lipgloss.Width(right); lipgloss.Width(left) > room {
		left = truncateWidth(left, max(room, 0))
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + noticeStyle.Render(right))
}

func truncateWidth(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > w {
		r = r[:len(r)-1]
	}
	return string(r)
}

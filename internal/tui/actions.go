package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/report"
	"github.com/theirongolddev/bcalc/internal/share"
	"github.com/theirongolddev/bcalc/internal/tui/components"
)

// NewSharer builds the dashboard's share dispatcher. Printing to stdout would
// corrupt the alternate screen, so the stdout method copies instead.
func NewSharer(method string, command []string) (share.Dispatcher, error) {
	if method == share.MethodStdout {
		method = share.MethodClipboard
	}
	return share.New(method, command, os.Stderr)
}

type shareDoneMsg struct {
	title  string
	result share.Result
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

// startShare runs the share in the background. Esc cancels it, which makes
// the dispatcher fall back to the clipboard.
func (a App) startShare(b budget.Budget) (tea.Model, tea.Cmd) {
	if a.sharer == nil {
		a.notice = components.Notice{Text: "Sharing is not configured", Kind: components.NoticeError}
		return a, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelShare = cancel
	a.notice = components.Notice{Text: "Sharing…"}

	text := share.Render(b, a.product)
	sharer := a.sharer
	return a, func() tea.Msg {
		defer cancel()
		res, err := sharer.Share(ctx, text)
		return shareDoneMsg{title: b.Title, result: res, err: err}
	}
}

func shareNotice(msg shareDoneMsg) components.Notice {
	switch {
	case msg.err != nil:
		return components.Notice{Text: "Share failed: " + msg.err.Error(), Kind: components.NoticeError}
	case msg.result.FellBack():
		reason := "share unavailable"
		if errors.Is(msg.result.Cause, context.Canceled) {
			reason = "share cancelled"
		}
		return components.Notice{Text: fmt.Sprintf("Copied %q to clipboard (%s)", msg.title, reason), Kind: components.NoticeWarn}
	case msg.result.Via == share.ViaClipboard:
		return components.Notice{Text: fmt.Sprintf("Copied %q to clipboard", msg.title)}
	}
	return components.Notice{Text: fmt.Sprintf("Shared %q", msg.title)}
}

func exportCmd(b budget.Budget, product, dir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, report.FileName(b))
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if err := report.WritePDF(f, b, product); err != nil {
			_ = f.Close()
			return exportDoneMsg{err: err}
		}
		if err := f.Close(); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// storageNotice turns a persistence failure into a warning. The change is
// still visible; it will be written by the next successful save.
func storageNotice(err error) components.Notice {
	var serr *budget.StorageError
	if errors.As(err, &serr) {
		return components.Notice{Text: "Not saved to disk: " + serr.Err.Error(), Kind: components.NoticeWarn}
	}
	return components.Notice{Text: err.Error(), Kind: components.NoticeError}
}

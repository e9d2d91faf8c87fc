// Package tui provides the interactive Bubble Tea dashboard for bcalc.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/share"
	"github.com/theirongolddev/bcalc/internal/tui/components"
	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

// Sharer delivers share text. share.Dispatcher implements it.
type Sharer interface {
	Share(ctx context.Context, text string) (share.Result, error)
}

// Options configures a new App.
type Options struct {
	Store   *budget.Store
	Sharer  Sharer
	Product string
	// ExportDir is where PDF statements are written.
	ExportDir string
	// NeedSetup shows the first-run setup form before the dashboard.
	NeedSetup bool
}

const (
	tabBudgets = iota
	tabAdd
	tabSummary
)

// App is the root Bubble Tea model.
type App struct {
	store     *budget.Store
	sharer    Sharer
	product   string
	exportDir string

	budgets []budget.Budget

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	notice    components.Notice

	// Budgets tab
	cursor        int
	detail        bool
	confirmDelete bool

	// Add tab
	form addForm

	// In-flight share, cancelled with esc
	cancelShare context.CancelFunc

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 50
	maxContentWidth  = 120
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	product := opts.Product
	if product == "" {
		product = "AYSHLYN"
	}
	a := App{
		store:     opts.Store,
		sharer:    opts.Sharer,
		product:   product,
		exportDir: opts.ExportDir,
		budgets:   opts.Store.List(),
		form:      newAddForm(),
		needSetup: opts.NeedSetup,
	}
	if a.needSetup {
		a.setupVals = DefaultSetupValues()
		a.setupVals.ProductName = product
		a.setupForm = NewSetupForm(a.setupVals, false)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabBudgets && !a.detail {
				a.moveCursor(-1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabBudgets && !a.detail {
				a.moveCursor(1)
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := components.TabAtX(msg.X); tab >= 0 {
					return a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			if a.cancelShare != nil {
				a.cancelShare()
			}
			return a, tea.Quit
		}

		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// A running share can be cancelled; it then falls back to the clipboard.
		if a.cancelShare != nil {
			if key == "esc" {
				a.cancelShare()
				a.cancelShare = nil
				a.notice = components.Notice{Text: "Share cancelled, copying to clipboard…"}
			}
			return a, nil
		}

		// The add form owns the keyboard, including letters.
		if a.activeTab == tabAdd {
			return a.updateForm(msg)
		}

		if a.confirmDelete {
			return a.updateConfirmDelete(key)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabBudgets {
			if a.detail {
				if m, cmd, ok := a.updateDetail(key); ok {
					return m, cmd
				}
			} else if m, cmd, ok := a.updateList(key); ok {
				return m, cmd
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "left", "shift+tab":
			return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case "right", "tab":
			return a.switchTab((a.activeTab + 1) % len(components.Tabs))
		}
		if r := []rune(key); len(r) == 1 {
			if tab := components.TabIdxByKey(r[0]); tab >= 0 {
				return a.switchTab(tab)
			}
		}
		return a, nil

	case shareDoneMsg:
		a.cancelShare = nil
		a.notice = shareNotice(msg)
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.notice = components.Notice{Text: "Export failed: " + msg.err.Error(), Kind: components.NoticeError}
		} else {
			a.notice = components.Notice{Text: "Saved " + msg.path}
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == tabAdd {
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) switchTab(tab int) (tea.Model, tea.Cmd) {
	a.activeTab = tab
	a.detail = false
	a.confirmDelete = false
	if tab == tabAdd {
		cmd := a.form.setFocus(a.form.focus)
		return a, cmd
	}
	a.form.blur()
	return a, nil
}

// reload refreshes the cached list after a mutation and clamps the cursor.
func (a *App) reload() {
	a.budgets = a.store.List()
	if a.cursor >= len(a.budgets) {
		a.cursor = len(a.budgets) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  bcalc needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, a.product, w)
	statusBar := components.RenderStatusBar(w, a.hints(), a.currentNotice())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar) - 1
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabBudgets:
		if a.detail {
			content = a.renderDetail(cw)
		} else {
			content = a.renderList(cw, contentH)
		}
	case tabAdd:
		content = a.form.view(cw)
	case tabSummary:
		content = a.renderSummary(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, "", content, statusBar)
}

func (a App) hints() string {
	switch {
	case a.cancelShare != nil:
		return "[esc] cancel share"
	case a.activeTab == tabAdd:
		return "[tab] next  [^n] add row  [^s] save  [^r] clear  [esc] cancel"
	case a.activeTab == tabBudgets && a.detail:
		return "[s]hare  [p]df  [esc] back  [q]uit"
	case a.activeTab == tabBudgets:
		return "[j/k] move  [enter] view  [a]dd  [d]elete  [s]hare  [?]help  [q]uit"
	}
	return "[←/→] tabs  [?]help  [q]uit"
}

func (a App) currentNotice() components.Notice {
	if a.confirmDelete && a.cursor < len(a.budgets) {
		return components.Notice{
			Text: fmt.Sprintf("Delete %q? y/n", a.budgets[a.cursor].Title),
			Kind: components.NoticeError,
		}
	}
	return a.notice
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"b a m", "Budgets / Add / Summary"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move selection"},
		{"enter", "Open budget"},
		{"d", "Delete budget"},
		{"s", "Share budget"},
		{"p", "Export budget as PDF"},
		{"^n", "Add expense row"},
		{"^s", "Save budget"},
		{"^r", "Clear form"},
		{"esc", "Back / Cancel"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}

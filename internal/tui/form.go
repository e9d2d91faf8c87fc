package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/tui/components"
	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

// now is replaced in tests.
var now = time.Now

// addForm is the new-budget form: title, date and a growing list of
// expense rows with a running total.
type addForm struct {
	title    textinput.Model
	date     textinput.Model
	rows     []expenseRow
	focus    int    // index into inputs()
	errField string // field named by the last ValidationError
	total    float64
}

type expenseRow struct {
	name   textinput.Model
	amount textinput.Model
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

func newExpenseRow() expenseRow {
	return expenseRow{
		name:   newInput("List", 64),
		amount: newInput("Amount", 16),
	}
}

func newAddForm() addForm {
	f := addForm{
		title: newInput("Budget title", 80),
		date:  newInput("YYYY-MM-DD", 32),
		rows:  []expenseRow{newExpenseRow()},
	}
	f.date.SetValue(now().Format("2006-01-02"))
	return f
}

// inputs returns pointers to every input in focus order.
func (f *addForm) inputs() []*textinput.Model {
	in := make([]*textinput.Model, 0, 2+2*len(f.rows))
	in = append(in, &f.title, &f.date)
	for i := range f.rows {
		in = append(in, &f.rows[i].name, &f.rows[i].amount)
	}
	return in
}

func (f *addForm) setFocus(i int) tea.Cmd {
	in := f.inputs()
	i = max(min(i, len(in)-1), 0)
	f.focus = i
	var cmd tea.Cmd
	for j, ti := range in {
		if j == i {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

func (f *addForm) blur() {
	for _, ti := range f.inputs() {
		ti.Blur()
	}
}

func (f *addForm) addRow() tea.Cmd {
	f.rows = append(f.rows, newExpenseRow())
	return f.setFocus(len(f.inputs()) - 2)
}

func (f addForm) items() []budget.ExpenseInput {
	items := make([]budget.ExpenseInput, len(f.rows))
	for i, r := range f.rows {
		items[i] = budget.ExpenseInput{Name: r.name.Value(), Amount: r.amount.Value()}
	}
	return items
}

func (f *addForm) recompute() {
	f.total = budget.Sum(budget.NewExpenses(f.items()))
}

// update forwards msg to the focused input and recomputes the total.
func (f addForm) update(msg tea.Msg) (addForm, tea.Cmd) {
	in := f.inputs()
	if f.focus >= len(in) {
		return f, nil
	}
	var cmd tea.Cmd
	*in[f.focus], cmd = in[f.focus].Update(msg)

	if _, ok := msg.(tea.KeyMsg); ok {
		switch {
		case f.errField == "title" && f.focus == 0,
			f.errField == "date" && f.focus == 1:
			f.errField = ""
		}
		f.recompute()
	}
	return f, cmd
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return a.saveForm()
	case "ctrl+n":
		cmd := a.form.addRow()
		return a, cmd
	case "ctrl+r":
		a.form = newAddForm()
		cmd := a.form.setFocus(0)
		return a, cmd
	case "esc":
		a.form = newAddForm()
		a.activeTab = tabBudgets
		return a, nil
	case "tab", "down", "enter":
		cmd := a.form.setFocus((a.form.focus + 1) % len(a.form.inputs()))
		return a, cmd
	case "shift+tab", "up":
		n := len(a.form.inputs())
		cmd := a.form.setFocus((a.form.focus - 1 + n) % n)
		return a, cmd
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.update(msg)
	return a, cmd
}

func (a App) saveForm() (tea.Model, tea.Cmd) {
	f := &a.form
	b, err := a.store.Add(f.title.Value(), f.date.Value(), f.items())

	var verr *budget.ValidationError
	if errors.As(err, &verr) {
		if verr.Reason != "" {
			a.notice = components.Notice{Text: "Not saved: " + verr.Error(), Kind: components.NoticeError}
			return a, nil
		}
		f.errField = verr.Field
		focus := 0
		if verr.Field == "date" {
			focus = 1
		}
		cmd := f.setFocus(focus)
		return a, cmd
	}

	a.reload()
	a.cursor = len(a.budgets) - 1
	a.form = newAddForm()
	a.activeTab = tabBudgets
	if err != nil {
		a.notice = storageNotice(err)
	} else {
		a.notice = components.Notice{Text: fmt.Sprintf("Saved %q (%s)", b.Title, cli.FormatAmount(b.Total))}
	}
	return a, nil
}

func (f addForm) view(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Error)
	totalLabel := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	totalStyle := lipgloss.NewStyle().Foreground(t.Money).Bold(true)

	width := min(cw, 64)
	inner := components.CardInnerWidth(width)

	box := func(ti textinput.Model, w int, focused, invalid bool) string {
		border := t.Border
		switch {
		case invalid:
			border = t.Error
		case focused:
			border = t.BorderAccent
		}
		ti.Width = max(w-3, 1)
		return lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(border).
			Width(w).
			Render(ti.View())
	}

	var sb strings.Builder
	field := func(label string, idx int, ti textinput.Model) {
		name := strings.ToLower(label)
		sb.WriteString(labelStyle.Render(label))
		if f.errField == name {
			sb.WriteString("  ")
			sb.WriteString(errStyle.Render("⚠ Please enter a " + name))
		}
		sb.WriteString("\n")
		sb.WriteString(box(ti, inner, f.focus == idx, f.errField == name))
		sb.WriteString("\n")
	}
	field("Title", 0, f.title)
	field("Date", 1, f.date)

	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Expenses"))
	sb.WriteString("\n")
	amountW := 14
	nameW := inner - amountW - 1
	for i, r := range f.rows {
		idx := 2 + 2*i
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			box(r.name, nameW, f.focus == idx, false),
			" ",
			box(r.amount, amountW, f.focus == idx+1, false)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	total := cli.FormatAmount(f.total)
	label := "Total: "
	sb.WriteString(strings.Repeat(" ", max(inner-lipgloss.Width(label)-lipgloss.Width(total), 0)))
	sb.WriteString(totalLabel.Render(label))
	sb.WriteString(totalStyle.Render(total))

	return components.ContentCard("New budget", sb.String(), width)
}

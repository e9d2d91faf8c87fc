package tui

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/config"
	"github.com/theirongolddev/bcalc/internal/share"
	"github.com/theirongolddev/bcalc/internal/storage"
	"github.com/theirongolddev/bcalc/internal/tui/components"
)

func init() {
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
}

type fakeSharer struct {
	texts  []string
	result share.Result
	err    error
}

func (f *fakeSharer) Share(_ context.Context, text string) (share.Result, error) {
	f.texts = append(f.texts, text)
	return f.result, f.err
}

func newTestApp(t *testing.T, kv storage.KV, titles ...string) (App, *budget.Store) {
	t.Helper()
	st := budget.NewStore(kv, budget.WithLogger(log.New(io.Discard, "", 0)))
	for _, title := range titles {
		if _, err := st.Add(title, "2024-05-01", []budget.ExpenseInput{{Name: "Item", Amount: "1"}}); err != nil {
			t.Fatalf("seeding %q: %v", title, err)
		}
	}
	a := NewApp(Options{Store: st, Sharer: &fakeSharer{result: share.Result{Via: share.ViaPlatform}}, Product: "AYSHLYN", ExportDir: t.TempDir()})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(App), st
}

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"down":      tea.KeyDown,
	"up":        tea.KeyUp,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+n":    tea.KeyCtrlN,
	"ctrl+r":    tea.KeyCtrlR,
}

func keyMsg(k string) tea.KeyMsg {
	if kt, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to the app, discarding commands.
func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func TestAddFormSavesBudget(t *testing.T) {
	a, st := newTestApp(t, storage.NewMemory())

	a = press(a, "a")
	if a.activeTab != tabAdd {
		t.Fatalf("activeTab = %d, want add", a.activeTab)
	}
	if got := a.form.date.Value(); got != "2024-05-01" {
		t.Errorf("date prefill = %q, want today", got)
	}

	a = press(a, "Groceries", "tab", "tab", "Milk", "tab", "3.5", "ctrl+n", "tab", "bad")
	if a.form.total != 3.5 {
		t.Errorf("running total = %v, want 3.5", a.form.total)
	}

	a = press(a, "ctrl+s")
	if a.activeTab != tabBudgets {
		t.Errorf("activeTab after save = %d, want budgets", a.activeTab)
	}
	if st.Len() != 1 {
		t.Fatalf("store has %d budgets, want 1", st.Len())
	}
	b, _ := st.At(0)
	want := []budget.Expense{{Name: "Milk", Amount: 3.5}, {Name: "Unnamed", Amount: 0}}
	if len(b.Expenses) != 2 || b.Expenses[0] != want[0] || b.Expenses[1] != want[1] {
		t.Errorf("expenses = %+v, want %+v", b.Expenses, want)
	}
	if !strings.Contains(a.notice.Text, "Groceries") {
		t.Errorf("notice = %q", a.notice.Text)
	}
	if a.form.title.Value() != "" || len(a.form.rows) != 1 {
		t.Error("form should be reset after save")
	}
}

func TestRunningTotalTracksEveryKeystroke(t *testing.T) {
	a, _ := newTestApp(t, storage.NewMemory())
	a = press(a, "a", "tab", "tab", "tab", "1")
	if a.form.total != 1 {
		t.Fatalf("total = %v, want 1", a.form.total)
	}
	a = press(a, "0")
	if a.form.total != 10 {
		t.Fatalf("total = %v, want 10", a.form.total)
	}
	a = press(a, "ctrl+n", "tab", "0.5")
	if a.form.total != 10.5 {
		t.Fatalf("total = %v, want 10.5", a.form.total)
	}
}

func TestAddFormValidation(t *testing.T) {
	a, st := newTestApp(t, storage.NewMemory())

	a = press(a, "a", "ctrl+s")
	if a.form.errField != "title" {
		t.Errorf("errField = %q, want title", a.form.errField)
	}
	if a.activeTab != tabAdd || st.Len() != 0 {
		t.Error("failed validation must keep the form open and the store unchanged")
	}

	// Typing into the title clears the error.
	a = press(a, "T")
	if a.form.errField != "" {
		t.Errorf("errField = %q after typing", a.form.errField)
	}

	a = press(a, "tab")
	a.form.date.SetValue("   ")
	a = press(a, "ctrl+s")
	if a.form.errField != "date" || a.form.focus != 1 {
		t.Errorf("errField = %q focus = %d, want date/1", a.form.errField, a.form.focus)
	}
}

func TestAddFormClearAndCancel(t *testing.T) {
	a, st := newTestApp(t, storage.NewMemory())

	a = press(a, "a", "Trip", "ctrl+n", "ctrl+n")
	if len(a.form.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(a.form.rows))
	}
	a = press(a, "ctrl+r")
	if a.form.title.Value() != "" || len(a.form.rows) != 1 || a.form.total != 0 {
		t.Error("ctrl+r should clear every field")
	}
	if a.activeTab != tabAdd {
		t.Error("ctrl+r should keep the form open")
	}

	a = press(a, "Trip", "esc")
	if a.activeTab != tabBudgets || st.Len() != 0 {
		t.Error("esc should discard the form without saving")
	}
}

func TestStorageErrorIsNonFatalNotice(t *testing.T) {
	a, st := newTestApp(t, storage.WithQuota(storage.NewMemory(), 10))

	a = press(a, "a", "Rent", "ctrl+s")
	if st.Len() != 1 || len(a.budgets) != 1 {
		t.Fatalf("budget should stay in memory, store len = %d", st.Len())
	}
	if a.notice.Kind != components.NoticeWarn {
		t.Errorf("notice kind = %v, want warn (%q)", a.notice.Kind, a.notice.Text)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	a, st := newTestApp(t, storage.NewMemory(), "One", "Two", "Three")

	a = press(a, "j", "d", "n")
	if st.Len() != 3 {
		t.Fatalf("n must not delete, len = %d", st.Len())
	}

	a = press(a, "d")
	if !a.confirmDelete {
		t.Fatal("d should ask for confirmation")
	}
	if n := a.currentNotice(); !strings.Contains(n.Text, "Two") {
		t.Errorf("confirm prompt = %q", n.Text)
	}
	a = press(a, "y")
	got := st.List()
	if len(got) != 2 || got[0].Title != "One" || got[1].Title != "Three" {
		t.Errorf("after delete: %+v", got)
	}
	if a.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.cursor)
	}

	a = press(a, "d", "y", "d", "y", "d")
	if st.Len() != 0 || a.confirmDelete {
		t.Error("deleting everything should leave an empty list and no prompt")
	}
}

func TestDeleteTargetsSelectedBudgetByID(t *testing.T) {
	a, st := newTestApp(t, storage.NewMemory(), "One", "Two", "Three")

	a = press(a, "j", "d")
	// The store shifts under the app before the prompt is answered.
	if err := st.DeleteAt(0); err != nil {
		t.Fatal(err)
	}
	press(a, "y")

	got := st.List()
	if len(got) != 1 || got[0].Title != "Three" {
		t.Errorf("after delete: %+v, want only Three", got)
	}
}

func TestHugeAmountDoesNotCrashForm(t *testing.T) {
	a, st := newTestApp(t, storage.NewMemory())

	a = press(a, "a", "Trip", "tab", "tab", "Fuel", "tab", "1e400")
	if a.form.total != 0 {
		t.Errorf("total = %v, want 0 for an out-of-range amount", a.form.total)
	}
	a = press(a, "ctrl+s")
	if st.Len() != 1 {
		t.Fatalf("store has %d budgets, want 1", st.Len())
	}

	a = press(a, "a", "Sum", "tab", "tab", "a", "tab", "1e308", "ctrl+n", "tab", "1e308", "ctrl+s")
	if a.activeTab != tabAdd || st.Len() != 1 {
		t.Fatalf("overflowing total must keep the form open, tab = %d len = %d", a.activeTab, st.Len())
	}
	if a.notice.Kind != components.NoticeError {
		t.Errorf("notice = %+v, want an error", a.notice)
	}
}

func TestShareFromList(t *testing.T) {
	a, _ := newTestApp(t, storage.NewMemory(), "Groceries")
	sh := a.sharer.(*fakeSharer)

	m, cmd := a.Update(keyMsg("s"))
	a = m.(App)
	if cmd == nil || a.cancelShare == nil {
		t.Fatal("s should start a share")
	}
	// Keys other than esc are ignored while sharing.
	a = press(a, "j", "q")

	m, _ = a.Update(cmd())
	a = m.(App)
	if len(sh.texts) != 1 || !strings.HasPrefix(sh.texts[0], "📘 *Budget:* Groceries") {
		t.Errorf("shared texts = %q", sh.texts)
	}
	if a.cancelShare != nil {
		t.Error("share should be finished")
	}
	if a.notice.Text != `Shared "Groceries"` {
		t.Errorf("notice = %q", a.notice.Text)
	}
}

func TestShareNotice(t *testing.T) {
	tests := []struct {
		name string
		msg  shareDoneMsg
		kind components.NoticeKind
		text string
	}{
		{"clipboard", shareDoneMsg{title: "A", result: share.Result{Via: share.ViaClipboard}}, components.NoticeInfo, "Copied"},
		{"fallback", shareDoneMsg{title: "A", result: share.Result{Via: share.ViaClipboard, Cause: errors.New("boom")}}, components.NoticeWarn, "unavailable"},
		{"cancelled", shareDoneMsg{title: "A", result: share.Result{Via: share.ViaClipboard, Cause: context.Canceled}}, components.NoticeWarn, "cancelled"},
		{"failed", shareDoneMsg{title: "A", err: errors.New("no clipboard")}, components.NoticeError, "no clipboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := shareNotice(tt.msg)
			if n.Kind != tt.kind || !strings.Contains(n.Text, tt.text) {
				t.Errorf("notice = %+v", n)
			}
		})
	}
}

func TestDetailAndExport(t *testing.T) {
	a, _ := newTestApp(t, storage.NewMemory(), "Groceries")

	a = press(a, "enter")
	if !a.detail {
		t.Fatal("enter should open the detail view")
	}
	if v := a.View(); !strings.Contains(v, "Total: 1.00") {
		t.Errorf("detail view missing total:\n%s", v)
	}

	m, cmd := a.Update(keyMsg("p"))
	a = m.(App)
	if cmd == nil {
		t.Fatal("p should start an export")
	}
	m, _ = a.Update(cmd())
	a = m.(App)
	if a.notice.Kind != components.NoticeInfo || !strings.HasSuffix(a.notice.Text, "groceries-2024-05-01.pdf") {
		t.Errorf("export notice = %+v", a.notice)
	}

	a = press(a, "esc")
	if a.detail {
		t.Error("esc should close the detail view")
	}
}

func TestViews(t *testing.T) {
	a, _ := newTestApp(t, storage.NewMemory())
	if v := a.View(); !strings.Contains(v, "No saved budgets yet!") {
		t.Errorf("empty list view:\n%s", v)
	}

	a, _ = newTestApp(t, storage.NewMemory(), "Groceries", "Trip")
	if v := a.View(); !strings.Contains(v, "Groceries") || !strings.Contains(v, "Trip") {
		t.Errorf("list view:\n%s", v)
	}

	a = press(a, "m")
	if v := a.View(); !strings.Contains(v, "By month") || !strings.Contains(v, "2024-05") {
		t.Errorf("summary view:\n%s", v)
	}

	a = press(a, "?")
	if v := a.View(); !strings.Contains(v, "Keyboard Shortcuts") {
		t.Error("help view missing")
	}
}

func TestSetupFormShownWhenNeeded(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	st := budget.NewStore(storage.NewMemory(), budget.WithLogger(log.New(io.Discard, "", 0)))
	a := NewApp(Options{Store: st, NeedSetup: true})
	if a.setupForm == nil {
		t.Fatal("setup form should be active")
	}
	// Dashboard keys are captured by the form.
	a = press(a, "a")
	if a.activeTab != tabBudgets {
		t.Error("keys must go to the setup form")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := &SetupValues{
		ProductName:  "  ",
		Backend:      storage.BackendFile,
		ShareMethod:  share.MethodCommand,
		ShareCommand: "termux-share -a send",
		Theme:        "amber",
	}
	v.Apply(&cfg)

	if cfg.General.ProductName != "AYSHLYN" {
		t.Errorf("blank product name should keep the old one, got %q", cfg.General.ProductName)
	}
	if cfg.Storage.Backend != storage.BackendFile || cfg.Share.Method != share.MethodCommand || cfg.Appearance.Theme != "amber" {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := cfg.Share.Command; len(got) != 3 || got[0] != "termux-share" {
		t.Errorf("command = %q", got)
	}
}

package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTableAlignsByDisplayWidth(t *testing.T) {
	out := RenderTable(Table{
		Headers:  []string{"Title", "Total"},
		Rows:     [][]string{{"Café", "3.50"}, {"Rent", "1,200.00"}},
		LeftCols: 1,
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 { // top, header, sep, 2 rows, bottom
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width %d, want %d: %q", i, w, want, line)
		}
	}
}

func TestRenderTableSeparatorRow(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"x", "1"}, {"---"}, {"y", "2"}},
	})
	if strings.Count(out, "├") != 2 {
		t.Errorf("expected header separator plus one separator row:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 50, 100})
	if got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("RenderSparkline(nil) should be empty")
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4, true); got != "ab  " {
		t.Errorf("pad left = %q", got)
	}
	if got := pad("ab", 4, false); got != "  ab" {
		t.Errorf("pad right = %q", got)
	}
	if got := pad("abcdef", 4, true); got != "abcdef" {
		t.Errorf("pad overflow = %q", got)
	}
}

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/config"
	"github.com/theirongolddev/bcalc/internal/tui"
	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	sharer, err := tui.NewSharer(s.cfg.Share.Method, s.cfg.Share.Command)
	if err != nil {
		return err
	}
	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = "."
	}

	app := tui.NewApp(tui.Options{
		Store:     s.store,
		Sharer:    sharer,
		Product:   s.cfg.General.ProductName,
		ExportDir: exportDir,
		NeedSetup: !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

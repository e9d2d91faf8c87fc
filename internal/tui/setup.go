package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/bcalc/internal/config"
	"github.com/theirongolddev/bcalc/internal/share"
	"github.com/theirongolddev/bcalc/internal/storage"
	"github.com/theirongolddev/bcalc/internal/tui/components"
	"github.com/theirongolddev/bcalc/internal/tui/theme"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	ProductName  string
	Backend      string
	ShareMethod  string
	ShareCommand string
	Theme        string
}

// DefaultSetupValues seeds the form from the current configuration.
func DefaultSetupValues() *SetupValues {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return &SetupValues{
		ProductName:  cfg.General.ProductName,
		Backend:      cfg.Storage.Backend,
		ShareMethod:  cfg.Share.Method,
		ShareCommand: strings.Join(cfg.Share.Command, " "),
		Theme:        cfg.Appearance.Theme,
	}
}

// Apply copies the answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	if name := strings.TrimSpace(v.ProductName); name != "" {
		cfg.General.ProductName = name
	}
	if v.Backend != "" {
		cfg.Storage.Backend = v.Backend
	}
	cfg.Share.Method = v.ShareMethod
	cfg.Share.Command = strings.Fields(v.ShareCommand)
	cfg.Appearance.Theme = v.Theme
}

func options(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v, v)
	}
	return opts
}

// NewSetupForm builds the setup wizard. The storage backend question is only
// asked when withStorage is set, since a running dashboard has its store open.
func NewSetupForm(v *SetupValues, withStorage bool) *huh.Form {
	general := []huh.Field{
		huh.NewNote().
			Title("Welcome to bcalc!").
			Description("A few questions, then you're set. Run `bcalc setup` anytime to change them."),
		huh.NewInput().
			Title("Product name").
			Description("Shown in the share footer and PDF statements.").
			Value(&v.ProductName),
	}
	if withStorage {
		general = append(general, huh.NewSelect[string]().
			Title("Storage backend").
			Options(options(storage.Backends)...).
			Value(&v.Backend))
	}

	return huh.NewForm(
		huh.NewGroup(general...),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Share method").
				Description("auto uses the share command when set, otherwise the clipboard.").
				Options(options(share.Methods)...).
				Value(&v.ShareMethod),
			huh.NewInput().
				Title("Share command").
				Description("Optional program that receives the text on stdin, e.g. termux-share").
				Value(&v.ShareCommand),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(options(theme.Names())...).
				Value(&v.Theme),
		),
	).WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) saveSetupConfig() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	a.setupVals.Apply(&cfg)
	a.product = cfg.General.ProductName
	theme.SetActive(cfg.Appearance.Theme)
	if d, err := NewSharer(cfg.Share.Method, cfg.Share.Command); err == nil {
		a.sharer = d
	}

	if err := config.Save(cfg); err != nil {
		a.notice = components.Notice{Text: "Could not save config: " + err.Error(), Kind: components.NoticeWarn}
		return
	}
	a.notice = components.Notice{Text: "Saved " + config.ConfigPath()}
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/config"
	"github.com/theirongolddev/bcalc/internal/storage"
)

var (
	flagDataDir   string
	flagBackend   string
	flagEphemeral bool
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "bcalc",
	Short: "Budget calculator",
	Long: "Keep named, dated budgets of expense items, see their totals, " +
		"and share them as text or PDF.",
	RunE:         runList,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default from config, then $XDG_DATA_HOME/bcalc)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: sqlite, file or memory")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep budgets in memory only for this run")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices and warnings")
}

// session is what every budget command works with.
type session struct {
	cfg   config.Config
	kv    storage.KV
	store *budget.Store
}

func (s *session) Close() error {
	return s.kv.Close()
}

// loadConfig returns the config, falling back to defaults when the file is
// unreadable so that budgets stay reachable.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		noticef("  Config error (%v), using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// backendFor picks the storage backend from flags, then config.
func backendFor(cfg config.Config) string {
	switch {
	case flagEphemeral:
		return storage.BackendMemory
	case flagBackend != "":
		return flagBackend
	case cfg.Storage.Backend != "":
		return cfg.Storage.Backend
	}
	return storage.BackendSQLite
}

func dataDirFor(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	return cfg.DataDir()
}

// openSession is the shared store opening path used by all commands.
func openSession() (*session, error) {
	cfg := loadConfig()

	kv, err := storage.Open(backendFor(cfg), dataDirFor(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening budget storage: %w", err)
	}
	kv = storage.WithQuota(kv, cfg.Storage.MaxBytes)

	logger := log.New(os.Stderr, "  warning: ", 0)
	if flagQuiet {
		logger = log.New(io.Discard, "", 0)
	}

	return &session{
		cfg:   cfg,
		kv:    kv,
		store: budget.NewStore(kv, budget.WithLogger(logger)),
	}, nil
}

// noticef prints a progress or status line to stderr unless --quiet.
func noticef(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// storageWarning reports a failed write as a warning and swallows it: the
// change is applied in memory and the command still succeeds.
func storageWarning(err error) error {
	var serr *budget.StorageError
	if errors.As(err, &serr) {
		noticef("%s\n", cli.Warn(fmt.Sprintf("  Warning: %v", serr)))
		return nil
	}
	return err
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Package cmd implements the bcalc CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Product name: %s\n", cfg.General.ProductName)
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Backend:   %s", cfg.Storage.Backend)
	if b := backendFor(cfg); b != cfg.Storage.Backend {
		fmt.Printf(" (overridden: %s)", b)
	}
	fmt.Println()
	fmt.Printf("    Data dir:  %s\n", dataDirFor(cfg))
	if cfg.Storage.MaxBytes > 0 {
		fmt.Printf("    Max bytes: %d\n", cfg.Storage.MaxBytes)
	} else {
		fmt.Println("    Max bytes: unlimited")
	}
	fmt.Println()

	fmt.Println("  [Share]")
	fmt.Printf("    Method:  %s\n", cfg.Share.Method)
	if len(cfg.Share.Command) > 0 {
		fmt.Printf("    Command: %s\n", strings.Join(cfg.Share.Command, " "))
	} else {
		fmt.Println("    Command: not configured")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `bcalc setup` to reconfigure.")
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/report"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <ref>",
	Short: "Export a budget as a PDF statement",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, or - for stdout (default <title>-<date>.pdf)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	b, _, err := s.store.Lookup(args[0])
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = report.FileName(b)
	}

	if path == "-" {
		return report.WritePDF(os.Stdout, b, s.cfg.General.ProductName)
	}

	f, err := os.Create(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.WritePDF(f, b, s.cfg.General.ProductName); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	noticef("  Wrote %s\n", path)
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/share"
)

var shareVia string

var shareCmd = &cobra.Command{
	Use:   "share <ref>",
	Short: "Share a budget as text",
	Long: "Share a budget as formatted text. When the chosen share method is " +
		"unavailable, fails or is interrupted, the text is copied to the clipboard instead.",
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().StringVar(&shareVia, "via", "", "Share method: auto, clipboard, whatsapp, command or stdout (default from config)")
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	b, _, err := s.store.Lookup(args[0])
	if err != nil {
		return err
	}

	method := shareVia
	if method == "" {
		method = s.cfg.Share.Method
	}
	d, err := share.New(method, s.cfg.Share.Command, os.Stdout)
	if err != nil {
		return err
	}

	// Ctrl-C cancels a blocking share and falls through to the clipboard.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := d.Share(ctx, share.Render(b, s.cfg.General.ProductName))
	if err != nil {
		return fmt.Errorf("sharing %q: %w", b.Title, err)
	}

	switch {
	case res.FellBack():
		reason := res.Cause.Error()
		if errors.Is(res.Cause, context.Canceled) {
			reason = "interrupted"
		}
		noticef("%s\n", cli.Warn(fmt.Sprintf("  Share unavailable (%s), copied %q to the clipboard", reason, b.Title)))
	case res.Via == share.ViaClipboard:
		noticef("  Copied %q to the clipboard\n", b.Title)
	case method != share.MethodStdout:
		noticef("  Shared %q\n", b.Title)
	}
	return nil
}

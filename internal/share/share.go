package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/pkg/browser"
)

// ErrUnavailable means the requested share mechanism does not exist here.
var ErrUnavailable = errors.New("share: mechanism unavailable")

// Sharer delivers share text somewhere. Share may block while the user
// interacts with it and returns ctx.Err() if cancelled.
type Sharer interface {
	Share(ctx context.Context, text string) error
}

// Share methods accepted by New.
const (
	MethodAuto      = "auto"
	MethodClipboard = "clipboard"
	MethodWhatsApp  = "whatsapp"
	MethodCommand   = "command"
	MethodStdout    = "stdout"
)

// Methods lists the share methods in display order.
var Methods = []string{MethodAuto, MethodClipboard, MethodWhatsApp, MethodCommand, MethodStdout}

// Browser opens the WhatsApp share link in the default browser or app.
type Browser struct {
	Open func(url string) error
}

// NewBrowser returns a Browser backed by the system URL opener.
func NewBrowser() Browser {
	return Browser{Open: browser.OpenURL}
}

// Share implements Sharer.
func (b Browser) Share(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.Open == nil {
		return ErrUnavailable
	}
	if err := b.Open(WhatsAppURL(text)); err != nil {
		return fmt.Errorf("opening share link: %w", err)
	}
	return nil
}

// Command pipes the text into an external share program such as
// termux-share or a desktop share helper.
type Command struct {
	Args []string
}

// Share implements Sharer.
func (c Command) Share(ctx context.Context, text string) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("%w: no share command configured", ErrUnavailable)
	}
	path, err := exec.LookPath(c.Args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	cmd := exec.CommandContext(ctx, path, c.Args[1:]...) //nolint:gosec // command comes from the user's own config
	cmd.Stdin = strings.NewReader(text)
	out, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", c.Args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", c.Args[0], err)
	}
	return nil
}

// Writer prints the text, for piping into other tools.
type Writer struct {
	W io.Writer
}

// Share implements Sharer.
func (w Writer) Share(_ context.Context, text string) error {
	_, err := fmt.Fprintln(w.W, text)
	return err
}

// Clipboard copies the text to the system clipboard. When there is no
// system clipboard (headless, SSH) and Terminal is set, it emits an OSC 52
// sequence so the terminal emulator does the copy.
type Clipboard struct {
	Write    func(text string) error
	Terminal io.Writer
}

// NewClipboard returns a Clipboard using the system clipboard, with an
// OSC 52 fallback written to terminal (may be nil).
func NewClipboard(terminal io.Writer) Clipboard {
	c := Clipboard{Terminal: terminal}
	if !clipboard.Unsupported {
		c.Write = clipboard.WriteAll
	}
	return c
}

// Share implements Sharer.
func (c Clipboard) Share(_ context.Context, text string) error {
	var sysErr error
	if c.Write != nil {
		if sysErr = c.Write(text); sysErr == nil {
			return nil
		}
	}
	if c.Terminal == nil {
		if sysErr != nil {
			return fmt.Errorf("clipboard: %w", sysErr)
		}
		return fmt.Errorf("%w: no clipboard", ErrUnavailable)
	}
	if _, err := osc52.New(text).WriteTo(c.Terminal); err != nil {
		return fmt.Errorf("clipboard (osc52): %w", err)
	}
	return nil
}

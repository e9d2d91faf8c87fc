package share

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Via values reported in Result.
const (
	ViaPlatform  = "platform"
	ViaClipboard = "clipboard"
)

// Result describes how a share was delivered.
type Result struct {
	Via string
	// Cause is why the platform share did not happen, when Via is ViaClipboard
	// after a fallback.
	Cause error
}

// FellBack reports whether the clipboard was used because the platform share failed.
func (r Result) FellBack() bool {
	return r.Via == ViaClipboard && r.Cause != nil
}

// Dispatcher tries Platform first and copies to Clipboard when it is
// unavailable, fails or is cancelled. The fallback runs once.
type Dispatcher struct {
	Platform  Sharer
	Clipboard Sharer
}

// New builds a Dispatcher for the named method. command is used by the
// command method and by auto when non-empty; out receives stdout shares and
// OSC 52 sequences.
func New(method string, command []string, out io.Writer) (Dispatcher, error) {
	clip := NewClipboard(out)
	d := Dispatcher{Clipboard: clip}

	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", MethodAuto:
		if len(command) > 0 {
			d.Platform = Command{Args: command}
		}
	case MethodClipboard:
	case MethodWhatsApp:
		d.Platform = NewBrowser()
	case MethodCommand:
		d.Platform = Command{Args: command}
	case MethodStdout:
		d.Platform = Writer{W: out}
	default:
		return Dispatcher{}, fmt.Errorf("unknown share method %q (want one of %s)",
			method, strings.Join(Methods, ", "))
	}
	return d, nil
}

// Share delivers text and reports which path was taken.
func (d Dispatcher) Share(ctx context.Context, text string) (Result, error) {
	var res Result
	if d.Platform != nil {
		err := d.Platform.Share(ctx, text)
		if err == nil {
			res.Via = ViaPlatform
			return res, nil
		}
		res.Cause = err
	}

	res.Via = ViaClipboard
	if d.Clipboard == nil {
		if res.Cause != nil {
			return res, res.Cause
		}
		return res, ErrUnavailable
	}
	// The platform share may have been cancelled; the copy must still happen.
	if err := d.Clipboard.Share(context.WithoutCancel(ctx), text); err != nil {
		return res, err
	}
	return res, nil
}

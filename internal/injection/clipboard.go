package injection

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// clipboardBackend can only place text on the clipboard; key events are
// not something it can deliver, so Press always fails and the chain moves
// on. Useful as a last resort when no typing tool is installed.
type clipboardBackend struct {
	timeout time.Duration
}

func newClipboardBackend(timeout time.Duration) Backend {
	return &clipboardBackend{timeout: timeout}
}

func (c *clipboardBackend) Name() string { return "clipboard" }

func (c *clipboardBackend) Available() error { return checkClipboardAvailable() }

func (c *clipboardBackend) Type(ctx context.Context, text string, timeout time.Duration) error {
	return setClipboard(ctx, text, timeout)
}

func (c *clipboardBackend) Press(ctx context.Context, chord Chord, timeout time.Duration) error {
	return fmt.Errorf("clipboard backend cannot press %s", chord)
}

func getClipboard(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wl-paste", "--no-newline")
	output, err := cmd.Output()
	if err != nil {
		return "", nil
	}

	return string(output), nil
}

func setClipboard(ctx context.Context, text string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wl-copy")
	cmd.Stdin = strings.NewReader(text)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy failed: %w", err)
	}

	return nil
}

func checkClipboardAvailable() error {
	if _, err := exec.LookPath("wl-copy"); err != nil {
		return fmt.Errorf("wl-copy not found: %w (install wl-clipboard)", err)
	}

	if _, err := exec.LookPath("wl-paste"); err != nil {
		return fmt.Errorf("wl-paste not found: %w (install wl-clipboard)", err)
	}

	return nil
}

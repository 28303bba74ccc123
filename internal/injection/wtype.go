package injection

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

type wtypeBackend struct {
	timeout time.Duration
}

func newWtypeBackend(timeout time.Duration) Backend {
	return &wtypeBackend{timeout: timeout}
}

func (w *wtypeBackend) Name() string { return "wtype" }

func (w *wtypeBackend) Available() error {
	if _, err := exec.LookPath("wtype"); err != nil {
		return fmt.Errorf("wtype not found: %w (install wtype package)", err)
	}
	return nil
}

func (w *wtypeBackend) Type(ctx context.Context, text string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wtype", "--", text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wtype failed: %w", err)
	}
	return nil
}

func (w *wtypeBackend) Press(ctx context.Context, chord Chord, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var args []string
	switch chord {
	case ChordSubmit:
		args = []string{"-k", "Return"}
	case ChordSelectAll:
		args = []string{"-M", "ctrl", "a", "-m", "ctrl"}
	case ChordDelete:
		args = []string{"-k", "BackSpace"}
	default:
		return fmt.Errorf("unsupported chord: %s", chord)
	}

	cmd := exec.CommandContext(ctx, "wtype", args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wtype %s failed: %w", chord, err)
	}
	return nil
}

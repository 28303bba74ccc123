package injection

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Injector places text at the current input focus and drives submission.
// Inject appends text (clipboard-backed paste-equivalent for unicode
// safety), Submit sends an Enter-equivalent key event, Clear selects all
// and deletes (auxiliary tooling, not used by the streaming loop).
type Injector interface {
	Inject(ctx context.Context, text string) error
	Submit(ctx context.Context) error
	Clear(ctx context.Context) error
}

// Chord is a named key action a backend can press.
type Chord string

const (
	ChordSubmit    Chord = "submit"     // Enter
	ChordSelectAll Chord = "select-all" // Ctrl+A
	ChordDelete    Chord = "delete"     // Backspace
)

// Backend is one injection mechanism (ydotool, wtype, clipboard).
type Backend interface {
	Name() string
	Available() error
	Type(ctx context.Context, text string, timeout time.Duration) error
	Press(ctx context.Context, chord Chord, timeout time.Duration) error
}

// Config for text injection
type Config struct {
	Backends            []string      // tried in order: "ydotool", "wtype", "clipboard"
	AlwaysCopyClipboard bool          // copy to clipboard regardless of typing backend
	YdotoolTimeout      time.Duration
	WtypeTimeout        time.Duration
	ClipboardTimeout    time.Duration
}

// DefaultConfig returns sensible defaults for injection
func DefaultConfig() Config {
	return Config{
		Backends:            []string{"ydotool", "wtype", "clipboard"},
		AlwaysCopyClipboard: true,
		YdotoolTimeout:      5 * time.Second,
		WtypeTimeout:        5 * time.Second,
		ClipboardTimeout:    3 * time.Second,
	}
}

type injector struct {
	config   Config
	backends []Backend
}

// NewInjector creates an injector with the configured backend chain.
func NewInjector(config Config) Injector {
	var backends []Backend
	for _, name := range config.Backends {
		switch name {
		case "ydotool":
			backends = append(backends, newYdotoolBackend(config.YdotoolTimeout))
		case "wtype":
			backends = append(backends, newWtypeBackend(config.WtypeTimeout))
		case "clipboard":
			backends = append(backends, newClipboardBackend(config.ClipboardTimeout))
		default:
			log.Printf("injection: unknown backend %q ignored", name)
		}
	}
	return &injector{config: config, backends: backends}
}

func NewDefaultInjector() Injector { return NewInjector(DefaultConfig()) }

func (i *injector) Inject(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("cannot inject empty text")
	}
	if len(i.backends) == 0 {
		return fmt.Errorf("no injection backends configured")
	}

	if i.config.AlwaysCopyClipboard {
		if err := setClipboard(ctx, text, i.config.ClipboardTimeout); err != nil {
			log.Printf("injection: clipboard copy failed: %v", err)
		}
	}

	var lastErr error
	for _, b := range i.backends {
		if err := b.Available(); err != nil {
			lastErr = err
			continue
		}
		if err := b.Type(ctx, text, i.timeoutFor(b)); err != nil {
			log.Printf("injection: backend %s failed: %v", b.Name(), err)
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("all injection backends failed: %w", lastErr)
}

func (i *injector) Submit(ctx context.Context) error {
	return i.press(ctx, ChordSubmit)
}

// Clear selects all text in the focused input and deletes it.
func (i *injector) Clear(ctx context.Context) error {
	if err := i.press(ctx, ChordSelectAll); err != nil {
		return err
	}
	return i.press(ctx, ChordDelete)
}

func (i *injector) press(ctx context.Context, chord Chord) error {
	if len(i.backends) == 0 {
		return fmt.Errorf("no injection backends configured")
	}
	var lastErr error
	for _, b := range i.backends {
		if err := b.Available(); err != nil {
			lastErr = err
			continue
		}
		if err := b.Press(ctx, chord, i.timeoutFor(b)); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("press %s: all injection backends failed: %w", chord, lastErr)
}

func (i *injector) timeoutFor(b Backend) time.Duration {
	switch b.Name() {
	case "ydotool":
		return i.config.YdotoolTimeout
	case "wtype":
		return i.config.WtypeTimeout
	default:
		return i.config.ClipboardTimeout
	}
}

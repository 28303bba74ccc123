package injection

import (
	"context"
	"testing"
	"time"
)

func TestNewInjector(t *testing.T) {
	injector := NewInjector(DefaultConfig())
	if injector == nil {
		t.Fatal("NewInjector() returned nil")
	}
}

func TestNewInjectorSkipsUnknownBackends(t *testing.T) {
	config := DefaultConfig()
	config.Backends = []string{"xdotool", "teleport"}
	config.AlwaysCopyClipboard = false

	injector := NewInjector(config)
	err := injector.Inject(context.Background(), "hello")
	if err == nil {
		t.Fatal("Inject() with only unknown backends should fail")
	}
	if err.Error() != "no injection backends configured" {
		t.Errorf("Inject() error = %q, want %q", err.Error(), "no injection backends configured")
	}
}

func TestInjectEmptyText(t *testing.T) {
	injector := NewDefaultInjector()
	err := injector.Inject(context.Background(), "")
	if err == nil {
		t.Fatal("Inject() should fail with empty text")
	}
	if err.Error() != "cannot inject empty text" {
		t.Errorf("Inject() error = %q, want %q", err.Error(), "cannot inject empty text")
	}
}

func TestSubmitNoBackends(t *testing.T) {
	config := DefaultConfig()
	config.Backends = nil

	injector := NewInjector(config)
	if err := injector.Submit(context.Background()); err == nil {
		t.Error("Submit() with no backends should fail")
	}
	if err := injector.Clear(context.Background()); err == nil {
		t.Error("Clear() with no backends should fail")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	want := []string{"ydotool", "wtype", "clipboard"}
	if len(config.Backends) != len(want) {
		t.Fatalf("Backends = %v, want %v", config.Backends, want)
	}
	for i, b := range want {
		if config.Backends[i] != b {
			t.Errorf("Backends[%d] = %q, want %q", i, config.Backends[i], b)
		}
	}
	if !config.AlwaysCopyClipboard {
		t.Error("AlwaysCopyClipboard should default to true")
	}
	if config.YdotoolTimeout != 5*time.Second {
		t.Errorf("YdotoolTimeout = %v, want 5s", config.YdotoolTimeout)
	}
	if config.ClipboardTimeout != 3*time.Second {
		t.Errorf("ClipboardTimeout = %v, want 3s", config.ClipboardTimeout)
	}
}

func TestTimeoutFor(t *testing.T) {
	config := Config{
		Backends:         []string{"ydotool", "wtype", "clipboard"},
		YdotoolTimeout:   time.Second,
		WtypeTimeout:     2 * time.Second,
		ClipboardTimeout: 3 * time.Second,
	}
	inj := NewInjector(config).(*injector)

	tests := []struct {
		backend string
		want    time.Duration
	}{
		{"ydotool", time.Second},
		{"wtype", 2 * time.Second},
		{"clipboard", 3 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			for _, b := range inj.backends {
				if b.Name() != tt.backend {
					continue
				}
				if got := inj.timeoutFor(b); got != tt.want {
					t.Errorf("timeoutFor(%s) = %v, want %v", tt.backend, got, tt.want)
				}
				return
			}
			t.Fatalf("backend %s not built", tt.backend)
		})
	}
}

func TestYdotoolSocketDiscovery(t *testing.T) {
	// An explicitly configured socket path wins over the search paths.
	t.Setenv("YDOTOOL_SOCKET", "/tmp/does-not-exist-ydotool.sock")

	b := newYdotoolBackend(time.Second)
	if err := b.Available(); err == nil {
		t.Log("ydotool socket unexpectedly reachable")
	} else {
		t.Logf("ydotool unavailable as expected: %v", err)
	}
}

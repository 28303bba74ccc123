package config

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func useTempConfigDir(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Wake.Word != "coco" {
		t.Errorf("Wake.Word = %q, want %q", cfg.Wake.Word, "coco")
	}
	if len(cfg.Wake.DispatchWords) != 1 || cfg.Wake.DispatchWords[0] != "fire" {
		t.Errorf("Wake.DispatchWords = %v, want [fire]", cfg.Wake.DispatchWords)
	}
	if cfg.Wake.Window != 8*time.Second {
		t.Errorf("Wake.Window = %v, want 8s", cfg.Wake.Window)
	}
	if cfg.Wake.MaxUtterance != 30*time.Second {
		t.Errorf("Wake.MaxUtterance = %v, want 30s", cfg.Wake.MaxUtterance)
	}
	if cfg.Wake.SilenceThreshold != 300 {
		t.Errorf("Wake.SilenceThreshold = %v, want 300", cfg.Wake.SilenceThreshold)
	}
	if cfg.Wake.StableCycles != 2 {
		t.Errorf("Wake.StableCycles = %d, want 2", cfg.Wake.StableCycles)
	}
	if cfg.Transcription.Provider != "whisper-cli" {
		t.Errorf("Transcription.Provider = %q, want whisper-cli", cfg.Transcription.Provider)
	}
	if cfg.Transcription.GateBeam != 1 || cfg.Transcription.DiagBeam != 5 {
		t.Errorf("beams = %d/%d, want 1/5", cfg.Transcription.GateBeam, cfg.Transcription.DiagBeam)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "empty wake word",
			mutate:  func(c *Config) { c.Wake.Word = "" },
			wantErr: "wake.word",
		},
		{
			name:    "no dispatch words",
			mutate:  func(c *Config) { c.Wake.DispatchWords = nil },
			wantErr: "wake.dispatch_words",
		},
		{
			name:    "empty dispatch word entry",
			mutate:  func(c *Config) { c.Wake.DispatchWords = []string{"fire", ""} },
			wantErr: "wake.dispatch_words",
		},
		{
			name:    "zero chunk duration",
			mutate:  func(c *Config) { c.Wake.ChunkDuration = 0 },
			wantErr: "wake.chunk_duration",
		},
		{
			name:    "negative silence threshold",
			mutate:  func(c *Config) { c.Wake.SilenceThreshold = -1 },
			wantErr: "wake.silence_threshold",
		},
		{
			name:    "window shorter than cycle",
			mutate:  func(c *Config) { c.Wake.Window = time.Second },
			wantErr: "wake.window",
		},
		{
			name:    "zero max utterance",
			mutate:  func(c *Config) { c.Wake.MaxUtterance = 0 },
			wantErr: "wake.max_utterance",
		},
		{
			name:    "zero stable cycles",
			mutate:  func(c *Config) { c.Wake.StableCycles = 0 },
			wantErr: "wake.stable_cycles",
		},
		{
			name:    "buffer shorter than window",
			mutate:  func(c *Config) { c.Audio.BufferDuration = 4 * time.Second },
			wantErr: "audio.buffer_duration",
		},
		{
			name:    "empty provider",
			mutate:  func(c *Config) { c.Transcription.Provider = "" },
			wantErr: "transcription.provider",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Transcription.Provider = "deepgram" },
			wantErr: "transcription.provider",
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.Transcription.Model = "" },
			wantErr: "transcription.model",
		},
		{
			name:    "zero gate beam",
			mutate:  func(c *Config) { c.Transcription.GateBeam = 0 },
			wantErr: "transcription.gate_beam",
		},
		{
			name:    "no injection backends",
			mutate:  func(c *Config) { c.Injection.Backends = nil },
			wantErr: "injection.backends",
		},
		{
			name:    "unknown injection backend",
			mutate:  func(c *Config) { c.Injection.Backends = []string{"xdotool"} },
			wantErr: "injection.backends",
		},
		{
			name:    "invalid notification type",
			mutate:  func(c *Config) { c.Notifications.Type = "carrier-pigeon" },
			wantErr: "notifications.type",
		},
		{
			name: "notification type ignored when disabled",
			mutate: func(c *Config) {
				c.Notifications.Enabled = false
				c.Notifications.Type = "carrier-pigeon"
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := DefaultConfig()
	cfg.Transcription.Provider = "openai"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for openai without an API key")
	}

	cfg.Providers["openai"] = ProviderConfig{APIKey: "sk-test"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with config key = %v", err)
	}

	delete(cfg.Providers, "openai")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with env key = %v", err)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	useTempConfigDir(t)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when no config file exists")
	}
	if !strings.Contains(err.Error(), "config not found") {
		t.Errorf("Load() = %v, want config not found", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.Wake.Word = "jarvis"
	cfg.Wake.DispatchWords = []string{"engage", "send"}
	cfg.Wake.MaxUtterance = 45 * time.Second
	cfg.Transcription.Model = "medium"
	cfg.Transcription.Threads = 4

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if loaded.Wake.Word != "jarvis" {
		t.Errorf("Wake.Word = %q, want %q", loaded.Wake.Word, "jarvis")
	}
	if len(loaded.Wake.DispatchWords) != 2 || loaded.Wake.DispatchWords[1] != "send" {
		t.Errorf("Wake.DispatchWords = %v", loaded.Wake.DispatchWords)
	}
	if loaded.Wake.MaxUtterance != 45*time.Second {
		t.Errorf("Wake.MaxUtterance = %v, want 45s", loaded.Wake.MaxUtterance)
	}
	if loaded.Transcription.Model != "medium" {
		t.Errorf("Transcription.Model = %q, want medium", loaded.Transcription.Model)
	}
	if loaded.Transcription.Threads != 4 {
		t.Errorf("Transcription.Threads = %d, want 4", loaded.Transcription.Threads)
	}
}

func TestLoadOrInitWritesDefaults(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := LoadOrInit()
	if err != nil {
		t.Fatalf("LoadOrInit() = %v", err)
	}
	if cfg.Wake.Word != "coco" {
		t.Errorf("Wake.Word = %q, want default", cfg.Wake.Word)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	// Second call reads the file it just wrote.
	if _, err := LoadOrInit(); err != nil {
		t.Errorf("second LoadOrInit() = %v", err)
	}
}

func TestThreadsDefault(t *testing.T) {
	useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.Transcription.Threads = 0
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if loaded.Transcription.Threads < 1 {
		t.Errorf("Threads = %d, want at least 1", loaded.Transcription.Threads)
	}
}

func TestManagerHotReload(t *testing.T) {
	useTempConfigDir(t)

	cfg := DefaultConfig()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.StartWatching(ctx); err != nil {
		t.Fatalf("StartWatching() = %v", err)
	}
	defer m.Stop()

	if got := m.GetConfig().Wake.Word; got != "coco" {
		t.Fatalf("initial Wake.Word = %q", got)
	}

	cfg.Wake.Word = "jarvis"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() after change = %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if m.GetConfig().Wake.Word == "jarvis" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Wake.Word = %q after reload, want %q", m.GetConfig().Wake.Word, "jarvis")
}

func TestManagerRejectsInvalidReload(t *testing.T) {
	useTempConfigDir(t)

	if err := Save(DefaultConfig()); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.StartWatching(ctx); err != nil {
		t.Fatalf("StartWatching() = %v", err)
	}
	defer m.Stop()

	// An invalid rewrite must leave the last good config in place.
	bad := DefaultConfig()
	bad.Wake.Word = ""
	if err := Save(bad); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if got := m.GetConfig().Wake.Word; got != "coco" {
		t.Errorf("Wake.Word = %q, invalid reload should have been rejected", got)
	}
}

func TestToListenerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wake.Word = "jarvis"
	cfg.Wake.StableCycles = 3
	cfg.Transcription.GateBeam = 2

	lc := cfg.ToListenerConfig()
	if lc.WakeWord != "jarvis" {
		t.Errorf("WakeWord = %q", lc.WakeWord)
	}
	if lc.StableCycles != 3 {
		t.Errorf("StableCycles = %d", lc.StableCycles)
	}
	if lc.GateBeam != 2 {
		t.Errorf("GateBeam = %d", lc.GateBeam)
	}
	if lc.Window != cfg.Wake.Window || lc.Cycle != cfg.Wake.Cycle {
		t.Errorf("window/cycle not carried over")
	}
}

package config

import "time"

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Wake: WakeConfig{
			Word:             "coco",
			DispatchWords:    []string{"fire"},
			ChunkDuration:    2 * time.Second,
			SilenceThreshold: 300,
			Cycle:            2 * time.Second,
			Window:           8 * time.Second,
			MaxUtterance:     30 * time.Second,
			Cooldown:         2 * time.Second,
			StableCycles:     2,
		},
		Audio: AudioConfig{
			Device:         "",
			BlockDuration:  250 * time.Millisecond,
			BufferDuration: 10 * time.Second,
		},
		Transcription: TranscriptionConfig{
			Provider: "whisper-cli",
			Language: "en",
			Model:    "small",
			Threads:  0,
			GateBeam: 1,
			DiagBeam: 5,
		},
		Injection: InjectionConfig{
			Backends:         []string{"ydotool", "wtype", "clipboard"},
			YdotoolTimeout:   5 * time.Second,
			WtypeTimeout:     5 * time.Second,
			ClipboardTimeout: 3 * time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "log",
			Chimes:  true,
		},
		Providers: make(map[string]ProviderConfig),
	}
}

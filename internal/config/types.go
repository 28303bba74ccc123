package config

import "time"

type Config struct {
	Wake          WakeConfig                `toml:"wake"`
	Audio         AudioConfig               `toml:"audio"`
	Transcription TranscriptionConfig       `toml:"transcription"`
	Injection     InjectionConfig           `toml:"injection"`
	Notifications NotificationsConfig       `toml:"notifications"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

// WakeConfig drives the gate and the streaming session.
type WakeConfig struct {
	Word             string        `toml:"word"`
	DispatchWords    []string      `toml:"dispatch_words"`
	ChunkDuration    time.Duration `toml:"chunk_duration"`    // gate chunk length
	SilenceThreshold float64       `toml:"silence_threshold"` // RMS below this is silence
	Cycle            time.Duration `toml:"cycle"`             // re-transcription period
	Window           time.Duration `toml:"window"`            // sliding window bound
	MaxUtterance     time.Duration `toml:"max_utterance"`     // force-finalize after this
	Cooldown         time.Duration `toml:"cooldown"`          // discard audio after dispatch
	StableCycles     int           `toml:"stable_cycles"`     // cycles before commit
}

type AudioConfig struct {
	Device         string        `toml:"device"`
	BlockDuration  time.Duration `toml:"block_duration"`
	BufferDuration time.Duration `toml:"buffer_duration"`
}

type TranscriptionConfig struct {
	Provider string `toml:"provider"`
	Language string `toml:"language"`
	Model    string `toml:"model"`
	Threads  int    `toml:"threads"`   // CPU threads for local transcription (0 = auto: NumCPU-1)
	GateBeam int    `toml:"gate_beam"` // beam width for gate and window cycles
	DiagBeam int    `toml:"diag_beam"` // beam width for one-shot diagnostics
}

type InjectionConfig struct {
	Backends         []string      `toml:"backends"`
	YdotoolTimeout   time.Duration `toml:"ydotool_timeout"`
	WtypeTimeout     time.Duration `toml:"wtype_timeout"`
	ClipboardTimeout time.Duration `toml:"clipboard_timeout"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
	Chimes  bool   `toml:"chimes"`
}

package config

import (
	"fmt"
	"os"
)

func (c *Config) Validate() error {
	if c.Wake.Word == "" {
		return fmt.Errorf("invalid wake.word: empty")
	}
	if len(c.Wake.DispatchWords) == 0 {
		return fmt.Errorf("invalid wake.dispatch_words: empty")
	}
	for _, w := range c.Wake.DispatchWords {
		if w == "" {
			return fmt.Errorf("invalid wake.dispatch_words: contains empty word")
		}
	}
	if c.Wake.ChunkDuration <= 0 {
		return fmt.Errorf("invalid wake.chunk_duration: %v", c.Wake.ChunkDuration)
	}
	if c.Wake.SilenceThreshold < 0 {
		return fmt.Errorf("invalid wake.silence_threshold: %v", c.Wake.SilenceThreshold)
	}
	if c.Wake.Cycle <= 0 {
		return fmt.Errorf("invalid wake.cycle: %v", c.Wake.Cycle)
	}
	if c.Wake.Window < c.Wake.Cycle {
		return fmt.Errorf("invalid wake.window: %v (must be at least one cycle)", c.Wake.Window)
	}
	if c.Wake.MaxUtterance <= 0 {
		return fmt.Errorf("invalid wake.max_utterance: %v", c.Wake.MaxUtterance)
	}
	if c.Wake.Cooldown < 0 {
		return fmt.Errorf("invalid wake.cooldown: %v", c.Wake.Cooldown)
	}
	if c.Wake.StableCycles <= 0 {
		return fmt.Errorf("invalid wake.stable_cycles: %d", c.Wake.StableCycles)
	}

	if c.Audio.BlockDuration <= 0 {
		return fmt.Errorf("invalid audio.block_duration: %v", c.Audio.BlockDuration)
	}
	if c.Audio.BufferDuration < c.Wake.Window {
		return fmt.Errorf("invalid audio.buffer_duration: %v (must cover the %v window)",
			c.Audio.BufferDuration, c.Wake.Window)
	}

	switch c.Transcription.Provider {
	case "whisper-cli":
		// local, no API key required
	case "openai":
		if c.resolveAPIKeyForProvider("openai") == "" {
			return fmt.Errorf("OpenAI API key required: not found in config (providers.openai.api_key) or environment variable (OPENAI_API_KEY)")
		}
	case "":
		return fmt.Errorf("invalid transcription.provider: empty")
	default:
		return fmt.Errorf("unsupported transcription.provider: %s (must be whisper-cli or openai)", c.Transcription.Provider)
	}
	if c.Transcription.Model == "" {
		return fmt.Errorf("invalid transcription.model: empty")
	}
	if c.Transcription.GateBeam <= 0 {
		return fmt.Errorf("invalid transcription.gate_beam: %d", c.Transcription.GateBeam)
	}
	if c.Transcription.DiagBeam <= 0 {
		return fmt.Errorf("invalid transcription.diag_beam: %d", c.Transcription.DiagBeam)
	}

	if len(c.Injection.Backends) == 0 {
		return fmt.Errorf("invalid injection.backends: empty")
	}
	for _, b := range c.Injection.Backends {
		switch b {
		case "ydotool", "wtype", "clipboard":
		default:
			return fmt.Errorf("invalid injection.backends entry: %s", b)
		}
	}
	if c.Injection.YdotoolTimeout <= 0 {
		return fmt.Errorf("invalid injection.ydotool_timeout: %v", c.Injection.YdotoolTimeout)
	}
	if c.Injection.WtypeTimeout <= 0 {
		return fmt.Errorf("invalid injection.wtype_timeout: %v", c.Injection.WtypeTimeout)
	}
	if c.Injection.ClipboardTimeout <= 0 {
		return fmt.Errorf("invalid injection.clipboard_timeout: %v", c.Injection.ClipboardTimeout)
	}

	if c.Notifications.Enabled {
		switch c.Notifications.Type {
		case "desktop", "log", "none":
		default:
			return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
		}
	}

	return nil
}

// resolveAPIKeyForProvider returns the API key for a provider from the
// config file or the conventional environment variable.
func (c *Config) resolveAPIKeyForProvider(name string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[name]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}
	switch name {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

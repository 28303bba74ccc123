package config

import (
	"github.com/leonardotrapani/cocovoice/internal/audio"
	"github.com/leonardotrapani/cocovoice/internal/injection"
	"github.com/leonardotrapani/cocovoice/internal/listener"
	"github.com/leonardotrapani/cocovoice/internal/transcriber"
)

func (c *Config) ToCaptureConfig() audio.Config {
	return audio.Config{
		Device:         c.Audio.Device,
		BlockDuration:  c.Audio.BlockDuration,
		BufferDuration: c.Audio.BufferDuration,
	}
}

func (c *Config) ToEngineConfig() transcriber.Config {
	return transcriber.Config{
		Provider: c.Transcription.Provider,
		APIKey:   c.resolveAPIKeyForProvider(c.Transcription.Provider),
		Language: c.Transcription.Language,
		Model:    c.Transcription.Model,
		Threads:  c.Transcription.Threads,
	}
}

func (c *Config) ToInjectionConfig() injection.Config {
	return injection.Config{
		Backends:            c.Injection.Backends,
		AlwaysCopyClipboard: true,
		YdotoolTimeout:      c.Injection.YdotoolTimeout,
		WtypeTimeout:        c.Injection.WtypeTimeout,
		ClipboardTimeout:    c.Injection.ClipboardTimeout,
	}
}

func (c *Config) ToListenerConfig() listener.Config {
	return listener.Config{
		WakeWord:         c.Wake.Word,
		DispatchWords:    c.Wake.DispatchWords,
		ChunkDuration:    c.Wake.ChunkDuration,
		SilenceThreshold: c.Wake.SilenceThreshold,
		Cycle:            c.Wake.Cycle,
		Window:           c.Wake.Window,
		MaxUtterance:     c.Wake.MaxUtterance,
		Cooldown:         c.Wake.Cooldown,
		StableCycles:     c.Wake.StableCycles,
		GateBeam:         c.Transcription.GateBeam,
	}
}

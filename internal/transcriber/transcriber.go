package transcriber

import (
	"context"
	"fmt"
	"os"
)

// TargetRate is the sample rate every engine expects. Audio captured at
// the device's native rate is resampled before it reaches an adapter.
const TargetRate = 16000

// Result of one transcription call.
type Result struct {
	Text     string
	Language string
}

// Engine is the single exclusive transcription resource. Implementations
// are not assumed reentrant; the listener's single-threaded consumer loop
// guarantees one inference in flight at a time. Beam trades latency for
// accuracy: the pipeline uses 1 for gate and window cycles, 5 for one-shot
// diagnostics. Silent input yields empty text, not an error.
type Engine interface {
	Transcribe(ctx context.Context, pcm []int16, beam int) (Result, error)
}

// Configuration for the transcription engine
type Config struct {
	Provider string
	APIKey   string
	Language string
	Model    string
	Threads  int
}

func DefaultConfig() Config {
	return Config{
		Provider: "whisper-cli",
		Language: "en",
		Model:    "small",
	}
}

// NewEngine creates the adapter for the configured provider.
func NewEngine(config Config) (Engine, error) {
	switch config.Provider {
	case "whisper-cli":
		return NewWhisperCliAdapter(config), nil

	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(config), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}

func NewDefaultEngine() (Engine, error) {
	config := DefaultConfig()
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}
	return NewEngine(config)
}

package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/leonardotrapani/cocovoice/internal/audio"
)

// OpenAIAdapter implements Engine against the OpenAI Whisper API. The API
// has no beam parameter, so beam is accepted and ignored; latency per call
// must still be measured against the cycle budget before choosing this
// provider for live streaming.
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

func NewOpenAIAdapter(config Config) *OpenAIAdapter {
	return &OpenAIAdapter{
		client: openai.NewClient(config.APIKey),
		config: config,
	}
}

func (a *OpenAIAdapter) Transcribe(ctx context.Context, pcm []int16, beam int) (Result, error) {
	if len(pcm) == 0 {
		return Result{}, nil
	}

	wavData := audio.EncodeWAV(pcm, TargetRate)

	req := openai.AudioRequest{
		Model:    a.config.Model,
		Reader:   bytes.NewReader(wavData),
		FilePath: "audio.wav",
		Language: a.config.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	start := time.Now()
	resp, err := a.client.CreateTranscription(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-adapter: API call failed after %v: %v", duration, err)
		return Result{}, fmt.Errorf("openai transcription: %w", err)
	}

	log.Printf("openai-adapter: %d samples in %v: %q", len(pcm), duration, resp.Text)

	language := resp.Language
	if language == "" {
		language = a.config.Language
	}
	return Result{Text: resp.Text, Language: language}, nil
}

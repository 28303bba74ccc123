package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/leonardotrapani/cocovoice/internal/audio"
	"github.com/leonardotrapani/cocovoice/internal/models/whisper"
)

// WhisperCliAdapter runs local transcription through the whisper-cli
// binary from whisper.cpp. One subprocess per call; the model file is
// mmapped by whisper-cli so repeated calls stay cheap enough for the 2 s
// cycle budget with the small models.
type WhisperCliAdapter struct {
	modelPath string
	modelID   string // empty when an absolute path was configured
	language  string
	threads   int
}

// NewWhisperCliAdapter resolves the model through the whisper registry
// unless an absolute path is configured. The registry decides where
// downloaded models live on disk.
func NewWhisperCliAdapter(config Config) *WhisperCliAdapter {
	modelPath := config.Model
	modelID := ""
	if !filepath.IsAbs(modelPath) {
		modelID = config.Model
		modelPath = whisper.Path(config.Model)
	}
	return &WhisperCliAdapter{
		modelPath: modelPath,
		modelID:   modelID,
		language:  config.Language,
		threads:   config.Threads,
	}
}

func (a *WhisperCliAdapter) Transcribe(ctx context.Context, pcm []int16, beam int) (Result, error) {
	if len(pcm) == 0 {
		return Result{}, nil
	}

	// Missing model or missing binary cannot resolve mid-session, so they
	// abort instead of burning cycles until the utterance timeout.
	if a.modelID != "" {
		if a.modelPath == "" {
			return Result{}, NewFatalError(fmt.Errorf("unknown model %q (run: cocovoice model list)", a.modelID))
		}
		if !whisper.IsInstalled(a.modelID) {
			return Result{}, NewFatalError(fmt.Errorf("model %s is not installed (run: cocovoice model download %s)", a.modelID, a.modelID))
		}
	} else if _, err := os.Stat(a.modelPath); os.IsNotExist(err) {
		return Result{}, NewFatalError(fmt.Errorf("model file not found: %s", a.modelPath))
	}

	whisperPath, err := exec.LookPath("whisper-cli")
	if err != nil {
		return Result{}, NewFatalError(fmt.Errorf("whisper-cli not found: install whisper.cpp first"))
	}

	wavData := audio.EncodeWAV(pcm, TargetRate)

	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("cocovoice-%d.wav", time.Now().UnixNano()))
	if err := os.WriteFile(tmpFile, wavData, 0600); err != nil {
		return Result{}, fmt.Errorf("write temp file: %w", err)
	}
	defer os.Remove(tmpFile)

	lang := a.language
	if lang == "" {
		lang = "auto"
	}

	args := []string{
		"-m", a.modelPath,
		"-l", lang,
		"-nt", // no timestamps
		"-np", // no progress
		"-f", tmpFile,
	}
	if beam > 0 {
		args = append(args, "-bs", fmt.Sprintf("%d", beam))
	}
	if a.threads > 0 {
		args = append(args, "-t", fmt.Sprintf("%d", a.threads))
	}

	cmd := exec.CommandContext(ctx, whisperPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		log.Printf("whisper-cli: command failed after %v: %v\nstderr: %s", duration, err, stderr.String())
		return Result{}, fmt.Errorf("whisper-cli failed: %w", err)
	}

	text := strings.TrimSpace(stdout.String())
	log.Printf("whisper-cli: %d samples in %v (beam=%d): %q", len(pcm), duration, beam, text)

	return Result{Text: text, Language: lang}, nil
}

package whisper

import (
	"os"
	"path/filepath"
)

// ModelInfo describes one ggml model usable by the whisper-cli adapter.
type ModelInfo struct {
	ID           string // identifier used in config (e.g. "small")
	Name         string // display name
	Filename     string // on-disk file name (e.g. "ggml-small.bin")
	Size         string // human readable size
	SizeBytes    int64  // expected size, used for download progress
	Multilingual bool
}

// catalog of ggml models published at huggingface.co/ggerganov/whisper.cpp.
// The multilingual "small" is the default provider model; english-only
// variants trade languages for speed.
var catalog = []ModelInfo{
	{ID: "tiny.en", Name: "Tiny English", Filename: "ggml-tiny.en.bin", Size: "75MB", SizeBytes: 75_000_000},
	{ID: "base.en", Name: "Base English", Filename: "ggml-base.en.bin", Size: "142MB", SizeBytes: 142_000_000},
	{ID: "small.en", Name: "Small English", Filename: "ggml-small.en.bin", Size: "466MB", SizeBytes: 466_000_000},
	{ID: "medium.en", Name: "Medium English", Filename: "ggml-medium.en.bin", Size: "1.5GB", SizeBytes: 1_500_000_000},

	{ID: "tiny", Name: "Tiny", Filename: "ggml-tiny.bin", Size: "75MB", SizeBytes: 75_000_000, Multilingual: true},
	{ID: "base", Name: "Base", Filename: "ggml-base.bin", Size: "142MB", SizeBytes: 142_000_000, Multilingual: true},
	{ID: "small", Name: "Small", Filename: "ggml-small.bin", Size: "466MB", SizeBytes: 466_000_000, Multilingual: true},
	{ID: "medium", Name: "Medium", Filename: "ggml-medium.bin", Size: "1.5GB", SizeBytes: 1_500_000_000, Multilingual: true},
	{ID: "large-v3", Name: "Large V3", Filename: "ggml-large-v3.bin", Size: "3GB", SizeBytes: 3_000_000_000, Multilingual: true},
}

var byID = func() map[string]ModelInfo {
	m := make(map[string]ModelInfo, len(catalog))
	for _, info := range catalog {
		m[info.ID] = info
	}
	return m
}()

const downloadBase = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Dir returns the directory models are stored in. XDG_DATA_HOME is
// honored; the directory is not created here.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cocovoice", "models"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "cocovoice", "models"), nil
}

// Path returns where the model lives (or would live) on disk. Empty for
// an unknown model ID.
func Path(modelID string) string {
	info, ok := byID[modelID]
	if !ok {
		return ""
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, info.Filename)
}

// DownloadURL returns the huggingface URL for a model, empty if unknown.
func DownloadURL(modelID string) string {
	info, ok := byID[modelID]
	if !ok {
		return ""
	}
	return downloadBase + "/" + info.Filename
}

// Lookup returns the catalog entry for an ID, nil if unknown.
func Lookup(modelID string) *ModelInfo {
	info, ok := byID[modelID]
	if !ok {
		return nil
	}
	return &info
}

// Catalog returns every known model.
func Catalog() []ModelInfo {
	out := make([]ModelInfo, len(catalog))
	copy(out, catalog)
	return out
}

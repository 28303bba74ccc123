package whisper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressFunc is called during a download with bytes received so far and
// the expected total.
type ProgressFunc func(downloaded, total int64)

// IsInstalled reports whether the model file exists with a non-zero size.
func IsInstalled(modelID string) bool {
	path := Path(modelID)
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}

// ListInstalled returns the catalog entries present on disk.
func ListInstalled() []ModelInfo {
	var out []ModelInfo
	for _, info := range catalog {
		if IsInstalled(info.ID) {
			out = append(out, info)
		}
	}
	return out
}

// InstalledPath returns the on-disk path of an installed model, or an
// error naming the download command if it is missing.
func InstalledPath(modelID string) (string, error) {
	if Lookup(modelID) == nil {
		return "", fmt.Errorf("unknown model: %s", modelID)
	}
	if !IsInstalled(modelID) {
		return "", fmt.Errorf("model %s is not installed (run: cocovoice model download %s)", modelID, modelID)
	}
	return Path(modelID), nil
}

// Download fetches a model from huggingface into the models directory.
// The file is written to a temporary name and renamed on completion, so
// an interrupted download never leaves a partial model behind.
func Download(ctx context.Context, modelID string, onProgress ProgressFunc) error {
	info := Lookup(modelID)
	if info == nil {
		return fmt.Errorf("unknown model: %s", modelID)
	}

	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("resolve models directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create models directory: %w", err)
	}

	destPath := filepath.Join(dir, info.Filename)
	tempPath := destPath + ".downloading"

	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		out.Close()
		os.Remove(tempPath)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DownloadURL(modelID), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", modelID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", modelID, resp.Status)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = info.SizeBytes
	}

	var downloaded int64
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				return fmt.Errorf("write model file: %w", err)
			}
			downloaded += int64(n)
			if onProgress != nil {
				onProgress(downloaded, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("read response: %w", readErr)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		return fmt.Errorf("finalize model file: %w", err)
	}
	return nil
}

// Remove deletes an installed model from disk.
func Remove(modelID string) error {
	if Lookup(modelID) == nil {
		return fmt.Errorf("unknown model: %s", modelID)
	}
	if !IsInstalled(modelID) {
		return fmt.Errorf("model %s is not installed", modelID)
	}
	if err := os.Remove(Path(modelID)); err != nil {
		return fmt.Errorf("remove model %s: %w", modelID, err)
	}
	return nil
}

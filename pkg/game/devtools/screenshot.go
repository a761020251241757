package devtools

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// SavePNG writes img to path, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create screenshot directory: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close screenshot: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// SaveScreenshot writes img as a timestamped PNG in dir and returns the path.
func SaveScreenshot(dir string, img image.Image) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("minimap-%s.png", timestamp))
	if err := SavePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

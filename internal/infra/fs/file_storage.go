package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultChartsDir is where rendered charts go unless configured otherwise
const DefaultChartsDir = "etc/charts"

// WriteChartFile creates dir, writes the chart through write and checks the result is not empty.
// Returns the full path of the written file.
func WriteChartFile(dir, filename string, write func(io.Writer) error) (string, error) {
	if dir == "" {
		dir = DefaultChartsDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}

	fullPath := filepath.Join(dir, filename)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat chart file: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(fullPath)
		return "", fmt.Errorf("chart file is empty after rendering")
	}

	return fullPath, nil
}

package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadSeriesEntriesLayoutSortsByTime(t *testing.T) {
	p := writeFile(t, t.TempDir(), "series.json", `{"entries": [
		{"date": "2020-03-01", "value": 5},
		{"timestamp": "2020-01-01T00:00:00Z", "value": 10},
		{"date": "not a date", "value": 99},
		{"date": "2020-02-01", "value": 30}
	]}`)

	points, err := LoadSeries(p)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points (bad date skipped), got %d", len(points))
	}
	want := []float64{10, 30, 5}
	for i, w := range want {
		if points[i].Value != w {
			t.Fatalf("point %d: expected %v, got %v", i, w, points[i].Value)
		}
	}
	if !points[0].Time.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first time %v", points[0].Time)
	}
}

func TestLoadSeriesBareArray(t *testing.T) {
	p := writeFile(t, t.TempDir(), "series.json", `[{"date": "2021-05-01", "value": 1.5}]`)
	points, err := LoadSeries(p)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if len(points) != 1 || points[0].Value != 1.5 {
		t.Fatalf("unexpected points %+v", points)
	}
}

func TestLoadSeriesEmpty(t *testing.T) {
	p := writeFile(t, t.TempDir(), "series.json", `{"entries": []}`)
	if _, err := LoadSeries(p); !errors.Is(err, ErrNoSeriesData) {
		t.Fatalf("expected ErrNoSeriesData, got %v", err)
	}
}

func TestLoadSeriesMissingFile(t *testing.T) {
	if _, err := LoadSeries(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestWriteChartFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	path, err := WriteChartFile(dir, "a.svg", func(w io.Writer) error {
		_, err := io.WriteString(w, "<svg/>")
		return err
	})
	if err != nil {
		t.Fatalf("WriteChartFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<svg/>" {
		t.Fatalf("unexpected content %q err=%v", data, err)
	}
}

func TestWriteChartFileRejectsEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteChartFile(dir, "empty.svg", func(io.Writer) error { return nil })
	if err == nil {
		t.Fatalf("expected error for empty chart")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "empty.svg")); !os.IsNotExist(statErr) {
		t.Fatalf("empty chart file should be removed")
	}
}

func TestWriteChartFileRenderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := WriteChartFile(t.TempDir(), "x.png", func(io.Writer) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped render error, got %v", err)
	}
}

func TestWaitForFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "late.png")
	go func() {
		time.Sleep(30 * time.Millisecond)
		os.WriteFile(p, []byte("x"), 0644)
	}()
	if err := WaitForFile(context.Background(), p, 2*time.Second); err != nil {
		t.Fatalf("WaitForFile: %v", err)
	}
}

func TestWaitForFileTimeout(t *testing.T) {
	p := filepath.Join(t.TempDir(), "never.png")
	if err := WaitForFile(context.Background(), p, 60*time.Millisecond); err == nil {
		t.Fatalf("expected timeout error")
	}
}

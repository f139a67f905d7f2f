package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPlotCommandWritesCharts(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	series := filepath.Join(dir, "precision.json")
	data := `[
		{"date": "2020-01-01", "value": 5},
		{"date": "2020-01-05", "value": 20},
		{"date": "2020-01-10", "value": 5}
	]`
	if err := os.WriteFile(series, []byte(data), 0644); err != nil {
		t.Fatalf("write series: %v", err)
	}
	chartsDir := filepath.Join(dir, "charts")

	out, err := execute(t, "plot", series,
		"--app.charts_dir", chartsDir,
		"--app.logs_dir", filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("plot: %v\n%s", err, out)
	}

	svg, err := os.ReadFile(filepath.Join(chartsDir, "precision.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "Date v. precision") {
		t.Fatalf("svg should carry the title")
	}
	if info, err := os.Stat(filepath.Join(chartsDir, "precision.png")); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty png, err=%v", err)
	}
	if !strings.Contains(out, "precision.svg") || !strings.Contains(out, "precision.png") {
		t.Fatalf("output should list written files, got %q", out)
	}
}

func TestPlotCommandMissingSeries(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := execute(t, "plot", filepath.Join(dir, "missing.json"),
		"--app.logs_dir", filepath.Join(dir, "logs")); err == nil {
		t.Fatalf("expected error for missing series file")
	}
}

func TestFolderCommandPaths(t *testing.T) {
	out, err := execute(t, "folder", "session 1/0/x.js", "other/y.js")
	if err != nil {
		t.Fatalf("folder: %v", err)
	}
	if strings.TrimSpace(out) != "session 1" {
		t.Fatalf("expected %q, got %q", "session 1", out)
	}
}

func TestFolderCommandDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "runs")
	if err := os.MkdirAll(filepath.Join(root, "a"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", "log.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, "folder", root)
	if err != nil {
		t.Fatalf("folder: %v", err)
	}
	if strings.TrimSpace(out) != "runs" {
		t.Fatalf("expected runs, got %q", out)
	}
}

func TestFolderCommandEmptyDirectory(t *testing.T) {
	if _, err := execute(t, "folder", t.TempDir()); err == nil {
		t.Fatalf("expected error for a directory without files")
	}
}

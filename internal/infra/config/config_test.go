package config

import (
	"os"
	"testing"

	"hyperboard/internal/chart"

	"github.com/spf13/pflag"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	cc, err := cfg.Chart.ChartConfig()
	if err != nil {
		t.Fatalf("ChartConfig: %v", err)
	}
	if cc != chart.DefaultConfig() {
		t.Fatalf("expected default chart config, got %+v", cc)
	}
	if cfg.App.ChartsDir != "etc/charts" || cfg.App.LogsDir != "logs" {
		t.Fatalf("unexpected app defaults %+v", cfg.App)
	}
	if cfg.Telegram.MaxRetries != 3 {
		t.Fatalf("expected 3 retries, got %d", cfg.Telegram.MaxRetries)
	}
}

func TestLoadConfigYAMLEnvAndFlags(t *testing.T) {
	chdir(t, t.TempDir())

	yaml := `chart:
  width: 800
  caption: Time
  x_tick_count: 4
telegram:
  chat_id: "-1001"
`
	if err := os.WriteFile("config.yaml", []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CHART_STROKE", "#ff0000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("chart.x_tick_count", 6, "")
	if err := flags.Parse([]string{"--chart.x_tick_count=8"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := LoadConfig(flags)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Caption != "Time" {
		t.Fatalf("yaml values not applied: %+v", cfg.Chart)
	}
	if cfg.Chart.Stroke != "#ff0000" {
		t.Fatalf("env value not applied, stroke=%q", cfg.Chart.Stroke)
	}
	if cfg.Chart.XTickCount != 8 {
		t.Fatalf("flag should win over yaml, got %d", cfg.Chart.XTickCount)
	}
	id, err := cfg.Telegram.ParseChatID()
	if err != nil || id != -1001 {
		t.Fatalf("unexpected chat id %d err=%v", id, err)
	}
}

func TestLoadConfigRejectsBadChart(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHART_MARGIN_LEFT", "700")

	if _, err := LoadConfig(nil); err == nil {
		t.Fatalf("expected error for empty plotting area")
	}
}

func TestLoadConfigRejectsBadChatID(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_CHAT_ID", "general")

	if _, err := LoadConfig(nil); err == nil {
		t.Fatalf("expected error for non-numeric chat id")
	}
}

func TestChartConfigEmptyPolicy(t *testing.T) {
	c := ChartConfig{
		Width: 600, Height: 500, MarginTop: 50, MarginRight: 30, MarginBottom: 30, MarginLeft: 80,
		XTickCount: 6, YTickCount: 10, StrokeWidth: 1.5, EmptyData: "render",
	}
	cc, err := c.ChartConfig()
	if err != nil {
		t.Fatalf("ChartConfig: %v", err)
	}
	if cc.EmptyData != chart.RenderEmpty {
		t.Fatalf("expected RenderEmpty, got %v", cc.EmptyData)
	}

	c.EmptyData = "explode"
	if _, err := c.ChartConfig(); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

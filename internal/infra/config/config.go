package config

import (
	"fmt"
	"strconv"
	"strings"

	"hyperboard/internal/chart"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config -
type Config struct {
	Chart    ChartConfig    `mapstructure:"chart"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

// ChartConfig - canvas layout and style
type ChartConfig struct {
	Width             float64 `mapstructure:"width"`
	Height            float64 `mapstructure:"height"`
	MarginTop         float64 `mapstructure:"margin_top"`
	MarginRight       float64 `mapstructure:"margin_right"`
	MarginBottom      float64 `mapstructure:"margin_bottom"`
	MarginLeft        float64 `mapstructure:"margin_left"`
	XTickCount        int     `mapstructure:"x_tick_count"`
	YTickCount        int     `mapstructure:"y_tick_count"`
	Caption           string  `mapstructure:"caption"`
	CaptionFromXLabel bool    `mapstructure:"caption_from_x_label"`
	Stroke            string  `mapstructure:"stroke"`
	StrokeWidth       float64 `mapstructure:"stroke_width"`
	EmptyData         string  `mapstructure:"empty_data"` // "reject" or "render"
	FontPath          string  `mapstructure:"font_path"`
}

// TelegramConfig - optional chart delivery
type TelegramConfig struct {
	BotToken          string  `mapstructure:"bot_token"`
	ChatID            string  `mapstructure:"chat_id"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	MaxRetries        int     `mapstructure:"max_retries"`
}

// AppConfig -
type AppConfig struct {
	ChartsDir string `mapstructure:"charts_dir"`
	LogsDir   string `mapstructure:"logs_dir"`
}

// LoadConfig merges, lowest priority first:
// 1. defaults
// 2. config.yaml
// 3. .env file
// 4. environment
// 5. flags (may be nil)
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// TELEGRAM_BOT_TOKEN -> telegram.bot_token etc. come from the key replacer,
	// the short names below are kept for .env files
	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN", "BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID", "CHAT_ID")
	v.BindEnv("app.charts_dir", "HYPERBOARD_CHARTS_DIR")
	v.BindEnv("app.logs_dir", "HYPERBOARD_LOGS_DIR")
	v.BindEnv("chart.font_path", "HYPERBOARD_FONT_PATH")
}

// setDefaults by default
func setDefaults(v *viper.Viper) {
	d := chart.DefaultConfig()

	// Chart
	v.SetDefault("chart.width", d.Width)
	v.SetDefault("chart.height", d.Height)
	v.SetDefault("chart.margin_top", d.MarginTop)
	v.SetDefault("chart.margin_right", d.MarginRight)
	v.SetDefault("chart.margin_bottom", d.MarginBottom)
	v.SetDefault("chart.margin_left", d.MarginLeft)
	v.SetDefault("chart.x_tick_count", d.XTickCount)
	v.SetDefault("chart.y_tick_count", d.YTickCount)
	v.SetDefault("chart.caption", d.Caption)
	v.SetDefault("chart.caption_from_x_label", false)
	v.SetDefault("chart.stroke", d.Stroke)
	v.SetDefault("chart.stroke_width", d.StrokeWidth)
	v.SetDefault("chart.empty_data", d.EmptyData.String())
	v.SetDefault("chart.font_path", "")

	// Telegram
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.requests_per_second", 1.0) // 1 upload per second
	v.SetDefault("telegram.max_retries", 3)

	// App
	v.SetDefault("app.charts_dir", "etc/charts")
	v.SetDefault("app.logs_dir", "logs")
}

func validateConfig(cfg *Config) error {
	if _, err := cfg.Chart.ChartConfig(); err != nil {
		return err
	}
	if cfg.Telegram.ChatID != "" {
		if _, err := cfg.Telegram.ParseChatID(); err != nil {
			return err
		}
	}
	if cfg.Telegram.RequestsPerSecond <= 0 {
		return fmt.Errorf("telegram.requests_per_second must be positive")
	}
	return nil
}

// ChartConfig converts to a validated chart.Config
func (c ChartConfig) ChartConfig() (chart.Config, error) {
	policy, err := chart.ParseEmptyPolicy(c.EmptyData)
	if err != nil {
		return chart.Config{}, err
	}
	cfg := chart.Config{
		MarginTop:         c.MarginTop,
		MarginRight:       c.MarginRight,
		MarginBottom:      c.MarginBottom,
		MarginLeft:        c.MarginLeft,
		Width:             c.Width,
		Height:            c.Height,
		XTickCount:        c.XTickCount,
		YTickCount:        c.YTickCount,
		Caption:           c.Caption,
		CaptionFromXLabel: c.CaptionFromXLabel,
		Stroke:            c.Stroke,
		StrokeWidth:       c.StrokeWidth,
		EmptyData:         policy,
		FontPath:          c.FontPath,
	}
	if err := cfg.Validate(); err != nil {
		return chart.Config{}, err
	}
	return cfg, nil
}

// ParseChatID parses the numeric chat id ("-100..." for channels)
func (t TelegramConfig) ParseChatID() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(t.ChatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram.chat_id %q: %w", t.ChatID, err)
	}
	return id, nil
}

package commands

// Command to render a metric history as a step chart
// Loads a series file, draws it on a fresh canvas and writes SVG (and PNG)
// Optionally sends the PNG to the configured Telegram chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"hyperboard/internal/chart"
	"hyperboard/internal/infra/config"
	"hyperboard/internal/infra/fs"
	logging "hyperboard/internal/infra/log"
	"hyperboard/internal/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var plotCmd = &cobra.Command{
	Use:   "plot <series.json>",
	Short: "Render a metric history as a step chart",
	Long: `Render a metric history (a JSON array of {"timestamp"|"date", "value"} records)
as a step-after line chart. The SVG is always written; the PNG is written with --png
and is required for --send.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	f := plotCmd.Flags()
	f.String("x-label", "Date", "label of the time axis")
	f.String("y-label", "", "label of the value axis (defaults to the series file name)")
	f.String("name", "", "output file name without extension (defaults to the series file name)")
	f.Bool("png", true, "also write a PNG")
	f.Bool("send", false, "send the PNG to telegram.chat_id")

	d := chart.DefaultConfig()
	f.Float64("chart.width", d.Width, "canvas width")
	f.Float64("chart.height", d.Height, "canvas height")
	f.Int("chart.x_tick_count", d.XTickCount, "number of time axis ticks")
	f.Int("chart.y_tick_count", d.YTickCount, "approximate number of value axis ticks")
	f.String("chart.caption", d.Caption, "caption under the time axis")
	f.Bool("chart.caption_from_x_label", false, "use the x label as caption")
	f.String("chart.stroke", d.Stroke, "line color")
	f.String("chart.empty_data", d.EmptyData.String(), "empty series policy: reject or render")
	f.String("app.charts_dir", fs.DefaultChartsDir, "output directory")
	f.String("app.logs_dir", "logs", "log directory")
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Init(cfg.App.LogsDir); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logging.Sync()

	seriesPath := args[0]
	base := strings.TrimSuffix(filepath.Base(seriesPath), filepath.Ext(seriesPath))

	xLabel, _ := cmd.Flags().GetString("x-label")
	yLabel, _ := cmd.Flags().GetString("y-label")
	if yLabel == "" {
		yLabel = base
	}
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = base
	}
	withPNG, _ := cmd.Flags().GetBool("png")
	send, _ := cmd.Flags().GetBool("send")
	if send && !withPNG {
		return fmt.Errorf("--send requires --png")
	}

	points, err := fs.LoadSeries(seriesPath)
	if err != nil {
		logging.LogError("Failed to load series", zap.String("path", seriesPath), zap.Error(err))
		return err
	}

	chartCfg, err := cfg.Chart.ChartConfig()
	if err != nil {
		return err
	}
	canvas, err := chart.New(chartCfg)
	if err != nil {
		return err
	}

	startTime := time.Now()
	plot, err := chart.PlotLineSeries(canvas, points,
		func(p fs.SeriesPoint) time.Time { return p.Time }, xLabel,
		func(p fs.SeriesPoint) float64 { return p.Value }, yLabel)
	if err != nil {
		logging.LogError("Failed to plot series", zap.String("path", seriesPath), zap.Error(err))
		return err
	}

	svgPath, err := fs.WriteChartFile(cfg.App.ChartsDir, name+".svg", canvas.WriteSVG)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), svgPath)

	var pngPath string
	if withPNG {
		pngPath, err = fs.WriteChartFile(cfg.App.ChartsDir, name+".png", bufferedPNG(canvas))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pngPath)
	}

	logging.LogSuccess("Chart rendered",
		zap.String("series", seriesPath),
		zap.Int("points", len(points)),
		zap.Int("vertices", len(plot.Vertices)),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))

	if !send {
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	publisher, err := publish.NewBotPublisher(cfg.Telegram)
	if err != nil {
		return err
	}
	return publisher.SendChart(ctx, pngPath, plot.Title.Text)
}

// bufferedPNG encodes fully before touching the file so a failed raster leaves nothing behind
func bufferedPNG(c *chart.Canvas) func(io.Writer) error {
	return func(w io.Writer) error {
		var buf bytes.Buffer
		if err := c.WritePNG(&buf); err != nil {
			return err
		}
		_, err := buf.WriteTo(w)
		return err
	}
}

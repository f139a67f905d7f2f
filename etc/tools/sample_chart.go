package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"hyperboard/internal/chart"
	"hyperboard/internal/infra/fs"
)

type sample struct {
	date  time.Time
	value float64
}

// go run etc/tools/sample_chart.go
// in etc/charts/sample_chart.svg and etc/charts/sample_chart.png
func main() {
	fmt.Println("Generating sample chart...")

	day := func(m time.Month) time.Time { return time.Date(2020, m, 1, 0, 0, 0, 0, time.UTC) }
	data := []sample{{day(time.January), 10}, {day(time.February), 30}, {day(time.March), 5}}

	canvas, err := chart.New(chart.DefaultConfig())
	if err != nil {
		fmt.Printf("Error creating canvas: %v\n", err)
		os.Exit(1)
	}
	if _, err := chart.PlotLineSeries(canvas, data,
		func(s sample) time.Time { return s.date }, "Date",
		func(s sample) float64 { return s.value }, "value"); err != nil {
		fmt.Printf("Error plotting: %v\n", err)
		os.Exit(1)
	}

	for _, out := range []struct {
		name  string
		write func(w io.Writer) error
	}{
		{"sample_chart.svg", canvas.WriteSVG},
		{"sample_chart.png", canvas.WritePNG},
	} {
		path, err := fs.WriteChartFile(fs.DefaultChartsDir, out.name, out.write)
		if err != nil {
			fmt.Printf("Error writing %s: %v\n", out.name, err)
			os.Exit(1)
		}
		fmt.Printf("Chart generated successfully: %s\n", path)
	}
	fmt.Println("Open the file to see the result!")
}

package chart

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// captionInset keeps the caption baseline inside the bottom margin
const captionInset = 2.0

// Point is a vertex in plotting-area pixel coordinates
type Point struct {
	X, Y float64
}

// Plot describes what one PlotLineSeries call appended to the canvas
type Plot struct {
	Group   *Element
	Title   *Element
	XAxis   *Element
	YAxis   *Element
	Caption *Element
	Path    *Element

	X      TimeScale
	Y      LinearScale
	XTicks []time.Time
	YTicks []float64

	// Vertices of the step-after line in input order
	Vertices []Point
	Empty    bool
}

// PlotLineSeries draws a titled step-after line chart of data onto the canvas.
// Every call appends a new group; earlier drawings are kept (see ReplaceLineSeries).
// Data should be ordered by xField, nothing is sorted here.
func PlotLineSeries[T any](c *Canvas, data []T, xField func(T) time.Time, xLabel string, yField func(T) float64, yLabel string) (*Plot, error) {
	if c == nil {
		return nil, ErrNilCanvas
	}
	if xField == nil || yField == nil {
		return nil, ErrNilAccessor
	}

	xs := make([]time.Time, len(data))
	ys := make([]float64, len(data))
	for i, d := range data {
		x, y := xField(d), yField(d)
		if x.IsZero() {
			return nil, fmt.Errorf("%w: record %d has zero time", ErrInvalidValue, i)
		}
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: record %d has value %v", ErrInvalidValue, i, y)
		}
		xs[i], ys[i] = x, y
	}

	if len(data) == 0 && c.cfg.EmptyData == RejectEmpty {
		return nil, ErrEmptyDomain
	}

	cfg := c.cfg
	innerW, innerH := cfg.InnerWidth(), cfg.InnerHeight()

	p := &Plot{Empty: len(data) == 0}
	p.Group = c.area.Append("g").Set("class", plotClass)

	p.Title = p.Group.Append("text").
		Set("class", "title").
		Set("x", innerW/2).
		Set("y", -cfg.MarginTop/2).
		Set("text-anchor", "middle").
		SetText(xLabel + " v. " + yLabel)

	p.X = TimeScale{Range: [2]float64{0, innerW}}
	p.Y = LinearScale{Range: [2]float64{innerH, 0}}
	if !p.Empty {
		p.X.Domain = timeExtent(xs)
		p.Y.Domain = [2]float64{0, maxOf(ys)}
		p.XTicks = p.X.Ticks(cfg.XTickCount)
		p.YTicks = p.Y.Ticks(cfg.YTickCount)
	}

	p.XAxis = bottomAxis(p.Group, p.X, p.XTicks, innerH)
	p.YAxis = leftAxis(p.Group, p.Y, p.YTicks, p.Y.TickFormat(cfg.YTickCount))

	caption := cfg.Caption
	if cfg.CaptionFromXLabel {
		caption = xLabel
	}
	p.Caption = p.Group.Append("text").
		Set("class", "caption").
		Set("transform", translate(innerW/2, innerH+cfg.MarginBottom-captionInset)).
		Set("text-anchor", "middle").
		SetText(caption)

	points := make([]Point, len(data))
	for i := range data {
		points[i] = Point{X: p.X.Map(xs[i]), Y: p.Y.Map(ys[i])}
	}
	p.Vertices = StepAfter(points)

	p.Path = p.Group.Append("path").
		Set("class", "line").
		Set("fill", "none").
		Set("stroke", cfg.Stroke).
		Set("stroke-width", cfg.StrokeWidth).
		Set("d", PathData(p.Vertices))

	return p, nil
}

// ReplaceLineSeries clears the canvas and draws a single fresh chart
func ReplaceLineSeries[T any](c *Canvas, data []T, xField func(T) time.Time, xLabel string, yField func(T) float64, yLabel string) (*Plot, error) {
	if c == nil {
		return nil, ErrNilCanvas
	}
	saved := c.area.Children
	c.Clear()
	p, err := PlotLineSeries(c, data, xField, xLabel, yField, yLabel)
	if err != nil {
		c.area.Children = saved
		return nil, err
	}
	return p, nil
}

// StepAfter expands points so that each value is held until the next x, then steps vertically
func StepAfter(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]Point, 0, 2*len(points)-1)
	out = append(out, points[0])
	for i := 1; i < len(points); i++ {
		out = append(out, Point{X: points[i].X, Y: points[i-1].Y}, points[i])
	}
	return out
}

// PathData encodes vertices as an SVG path ("M x,y L x,y ...")
func PathData(vertices []Point) string {
	var b strings.Builder
	for i, v := range vertices {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(formatNumber(v.X))
		b.WriteByte(',')
		b.WriteString(formatNumber(v.Y))
	}
	return b.String()
}

func timeExtent(ts []time.Time) [2]time.Time {
	lo, hi := ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	return [2]time.Time{lo, hi}
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

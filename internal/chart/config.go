package chart

import (
	"errors"
	"fmt"
)

const (
	DefaultWidth  = 600.0
	DefaultHeight = 500.0

	DefaultMarginTop    = 50.0
	DefaultMarginRight  = 30.0
	DefaultMarginBottom = 30.0
	DefaultMarginLeft   = 80.0

	DefaultXTickCount = 6
	DefaultYTickCount = 10 // tick hint, the linear scale picks nice values around it

	DefaultCaption     = "Date"
	DefaultStroke      = "steelblue"
	DefaultStrokeWidth = 1.5
)

// EmptyPolicy decides what PlotLineSeries does with an empty dataset
type EmptyPolicy int

const (
	// RejectEmpty returns ErrEmptyDomain and draws nothing
	RejectEmpty EmptyPolicy = iota
	// RenderEmpty draws title, caption, bare axes and an empty path
	RenderEmpty
)

func (p EmptyPolicy) String() string {
	switch p {
	case RejectEmpty:
		return "reject"
	case RenderEmpty:
		return "render"
	default:
		return fmt.Sprintf("EmptyPolicy(%d)", int(p))
	}
}

// ParseEmptyPolicy accepts "reject" or "render"
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch s {
	case "", "reject":
		return RejectEmpty, nil
	case "render":
		return RenderEmpty, nil
	}
	return RejectEmpty, fmt.Errorf("unknown empty data policy %q", s)
}

// Config - layout and style of a single canvas.
// Width and Height are the outer SVG size; margins are carved out of it.
type Config struct {
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	Width  float64
	Height float64

	XTickCount int
	YTickCount int

	// Caption is drawn centered below the plot area.
	// When CaptionFromXLabel is set the x label of each call is used instead.
	Caption           string
	CaptionFromXLabel bool

	Stroke      string
	StrokeWidth float64

	EmptyData EmptyPolicy

	// FontPath is optional, used only for PNG output
	FontPath string
}

// DefaultConfig returns the 600x500 layout with a 490x420 plotting area
func DefaultConfig() Config {
	return Config{
		MarginTop:    DefaultMarginTop,
		MarginRight:  DefaultMarginRight,
		MarginBottom: DefaultMarginBottom,
		MarginLeft:   DefaultMarginLeft,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		XTickCount:   DefaultXTickCount,
		YTickCount:   DefaultYTickCount,
		Caption:      DefaultCaption,
		Stroke:       DefaultStroke,
		StrokeWidth:  DefaultStrokeWidth,
		EmptyData:    RejectEmpty,
	}
}

func (c Config) InnerWidth() float64 {
	return c.Width - c.MarginLeft - c.MarginRight
}

func (c Config) InnerHeight() float64 {
	return c.Height - c.MarginTop - c.MarginBottom
}

var ErrInvalidConfig = errors.New("invalid chart config")

func (c Config) Validate() error {
	if c.MarginTop < 0 || c.MarginRight < 0 || c.MarginBottom < 0 || c.MarginLeft < 0 {
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidConfig)
	}
	if c.InnerWidth() <= 0 || c.InnerHeight() <= 0 {
		return fmt.Errorf("%w: plotting area %gx%g is empty", ErrInvalidConfig, c.InnerWidth(), c.InnerHeight())
	}
	if c.XTickCount <= 0 {
		return fmt.Errorf("%w: x tick count must be positive, got %d", ErrInvalidConfig, c.XTickCount)
	}
	if c.YTickCount <= 0 {
		return fmt.Errorf("%w: y tick count must be positive, got %d", ErrInvalidConfig, c.YTickCount)
	}
	if c.StrokeWidth < 0 {
		return fmt.Errorf("%w: stroke width must not be negative", ErrInvalidConfig)
	}
	return nil
}

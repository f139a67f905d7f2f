package chart

// Raster output of the element tree with gg.
// Only the subset of SVG that this package produces is understood.

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	logging "hyperboard/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const pngFontSize = 10.0

// fontCandidates are tried in order when Config.FontPath is empty or fails to load
var fontCandidates = []string{
	"etc/fonts/Inter-Regular.ttf",
	"~/Library/Fonts/Inter-Regular.ttf",
	"/Library/Fonts/Inter-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

var namedColors = map[string]color.RGBA{
	"black":     {0, 0, 0, 255},
	"white":     {255, 255, 255, 255},
	"steelblue": {70, 130, 180, 255},
	"red":       {255, 0, 0, 255},
	"green":     {0, 128, 0, 255},
	"blue":      {0, 0, 255, 255},
	"gray":      {128, 128, 128, 255},
	"grey":      {128, 128, 128, 255},
	"orange":    {255, 165, 0, 255},
}

// WritePNG rasterises the canvas on a white background
func (c *Canvas) WritePNG(w io.Writer) error {
	dc := gg.NewContext(int(c.cfg.Width), int(c.cfg.Height))
	dc.SetColor(color.White)
	dc.Clear()

	loadFont(dc, c.cfg.FontPath)

	r := rasterizer{dc: dc}
	for _, child := range c.svg.Children {
		r.draw(child, "middle")
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func loadFont(dc *gg.Context, preferred string) {
	paths := fontCandidates
	if preferred != "" {
		paths = append([]string{preferred}, fontCandidates...)
	}
	for _, p := range paths {
		expanded := expandHome(p)
		if _, err := os.Stat(expanded); err != nil {
			continue
		}
		if err := dc.LoadFontFace(expanded, pngFontSize); err != nil {
			logging.LogWarn("Font file exists but failed to load", zap.String("path", expanded), zap.Error(err))
			continue
		}
		logging.LogDebug("Loaded chart font", zap.String("path", expanded))
		return
	}
	logging.LogDebug("No font file found, using built-in face", zap.Int("paths_checked", len(paths)))
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

type rasterizer struct {
	dc *gg.Context
}

func (r *rasterizer) draw(e *Element, anchor string) {
	if a := e.Get("text-anchor"); a != "" {
		anchor = a
	}

	r.dc.Push()
	defer r.dc.Pop()

	if tx, ty, ok := parseTranslate(e.Get("transform")); ok {
		r.dc.Translate(tx, ty)
	}

	switch e.Tag {
	case "line":
		r.stroke(e, func() {
			r.dc.DrawLine(attrFloat(e, "x1"), attrFloat(e, "y1"), attrFloat(e, "x2"), attrFloat(e, "y2"))
		})
	case "path":
		r.stroke(e, func() { tracePath(r.dc, e.Get("d")) })
	case "text":
		r.text(e, anchor)
	}

	for _, child := range e.Children {
		r.draw(child, anchor)
	}
}

func (r *rasterizer) stroke(e *Element, trace func()) {
	col, ok := parseColor(e.Get("stroke"))
	if !ok {
		return
	}
	width := 1.0
	if w := e.Get("stroke-width"); w != "" {
		if v, err := strconv.ParseFloat(w, 64); err == nil {
			width = v
		}
	}
	r.dc.SetColor(col)
	r.dc.SetLineWidth(width)
	trace()
	r.dc.Stroke()
}

func (r *rasterizer) text(e *Element, anchor string) {
	if e.Text == "" {
		return
	}
	col, ok := parseColor(e.Get("fill"))
	if !ok {
		col = color.Black
	}
	r.dc.SetColor(col)

	ax := 0.5
	switch anchor {
	case "start":
		ax = 0
	case "end":
		ax = 1
	}

	y := attrFloat(e, "y")
	if dy := strings.TrimSuffix(e.Get("dy"), "em"); dy != "" {
		if v, err := strconv.ParseFloat(dy, 64); err == nil {
			y += v * r.dc.FontHeight()
		}
	}
	r.dc.DrawStringAnchored(e.Text, attrFloat(e, "x"), y, ax, 0)
}

// tracePath understands absolute M, L, H and V commands
func tracePath(dc *gg.Context, d string) {
	var cx, cy float64
	i := 0
	for i < len(d) {
		cmd := d[i]
		i++
		j := i
		for j < len(d) && !strings.ContainsRune("MLHV", rune(d[j])) {
			j++
		}
		args := strings.FieldsFunc(d[i:j], func(r rune) bool { return r == ',' || r == ' ' })
		i = j

		nums := make([]float64, 0, len(args))
		for _, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return
			}
			nums = append(nums, v)
		}

		switch cmd {
		case 'M':
			if len(nums) < 2 {
				return
			}
			cx, cy = nums[0], nums[1]
			dc.MoveTo(cx, cy)
		case 'L':
			if len(nums) < 2 {
				return
			}
			cx, cy = nums[0], nums[1]
			dc.LineTo(cx, cy)
		case 'H':
			if len(nums) < 1 {
				return
			}
			cx = nums[0]
			dc.LineTo(cx, cy)
		case 'V':
			if len(nums) < 1 {
				return
			}
			cy = nums[0]
			dc.LineTo(cx, cy)
		default:
			return
		}
	}
}

func parseTranslate(s string) (float64, float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "translate(") || !strings.HasSuffix(s, ")") {
		return 0, 0, false
	}
	parts := strings.FieldsFunc(s[len("translate("):len(s)-1], func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) == 0 {
		return 0, 0, false
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	y := 0.0
	if len(parts) > 1 {
		if y, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, 0, false
		}
	}
	return x, y, true
}

func attrFloat(e *Element, name string) float64 {
	v, _ := strconv.ParseFloat(e.Get(name), 64)
	return v
}

// parseColor handles "#rrggbb", "#rgb", a few names and currentColor (black).
// "none" and "" report ok=false.
func parseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return nil, false
	case "currentcolor":
		return color.Black, true
	}
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return nil, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, false
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
	}
	return nil, false
}

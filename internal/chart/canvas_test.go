package chart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/png"
	"strings"
	"testing"
)

func TestNewCanvasMountsIntoContainer(t *testing.T) {
	doc := NewDocument()
	doc.AddContainer("history_plots")

	c, err := NewCanvas(doc, "history_plots", DefaultConfig())
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	container, _ := doc.Container("history_plots")
	if len(container.Children) != 1 || container.Children[0] != c.SVG() {
		t.Fatalf("svg should be the only child of the container")
	}
	if c.SVG().Get("width") != "600" || c.SVG().Get("height") != "500" {
		t.Fatalf("unexpected svg size %v", c.SVG().Attrs)
	}
	if c.Area().Get("transform") != "translate(80,50)" {
		t.Fatalf("unexpected plot area offset %q", c.Area().Get("transform"))
	}
}

func TestNewCanvasContainerNotFound(t *testing.T) {
	doc := NewDocument()
	if _, err := NewCanvas(doc, "missing", DefaultConfig()); !errors.Is(err, ErrContainerNotFound) {
		t.Fatalf("expected ErrContainerNotFound, got %v", err)
	}
	if _, err := NewCanvas(nil, "missing", DefaultConfig()); !errors.Is(err, ErrContainerNotFound) {
		t.Fatalf("expected ErrContainerNotFound for nil document, got %v", err)
	}
}

func TestNewCanvasInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarginLeft = 600
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.XTickCount = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero ticks, got %v", err)
	}
}

func TestDefaultConfigInnerArea(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.InnerWidth() != 490 || cfg.InnerHeight() != 420 {
		t.Fatalf("expected 490x420, got %vx%v", cfg.InnerWidth(), cfg.InnerHeight())
	}
}

func TestWriteSVG(t *testing.T) {
	c := newTestCanvas(t)
	if _, err := PlotLineSeries(c, exampleData(), xDate, "<Date>", yValue, "value"); err != nil {
		t.Fatalf("PlotLineSeries: %v", err)
	}

	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="600" height="500">`,
		`transform="translate(80,50)"`,
		`d="M0,280L253.167,280L253.167,0L490,0L490,350"`,
		`&lt;Date&gt; v. value`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg output missing %q:\n%s", want, out)
		}
	}

	// output must be well-formed
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			t.Fatalf("svg is not well-formed: %v", err)
		}
	}
}

func TestWriteSVGBareCanvas(t *testing.T) {
	c := newTestCanvas(t)

	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if !strings.Contains(buf.String(), `<g class="plot-area" transform="translate(80,50)">`) {
		t.Fatalf("plot area missing from output:\n%s", buf.String())
	}
}

func TestElementSetFormatsValues(t *testing.T) {
	e := NewElement("rect").
		Set("a", 1.23456).
		Set("b", float32(2.5)).
		Set("c", 7).
		Set("d", int64(1<<40)).
		Set("e", uint8(3)).
		Set("f", "text")

	want := map[string]string{"a": "1.235", "b": "2.5", "c": "7", "d": "1099511627776", "e": "3", "f": "text"}
	for name, v := range want {
		if got := e.Get(name); got != v {
			t.Fatalf("attribute %s = %q, want %q", name, got, v)
		}
	}

	e.Set("c", 8)
	if len(e.Attrs) != 6 || e.Get("c") != "8" {
		t.Fatalf("Set should replace in place, got %v", e.Attrs)
	}
}

func TestWritePNG(t *testing.T) {
	c := newTestCanvas(t)
	if _, err := PlotLineSeries(c, exampleData(), xDate, "Date", yValue, "value"); err != nil {
		t.Fatalf("PlotLineSeries: %v", err)
	}

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 500 {
		t.Fatalf("expected 600x500, got %v", b)
	}

	// first step runs at y=280 inside the area, i.e. 330 on the image
	blue := false
	for y := 325; y <= 335 && !blue; y++ {
		r, g, b, _ := img.At(150, y).RGBA()
		if b>>8 > r>>8+40 && b>>8 > g>>8 {
			blue = true
		}
	}
	if !blue {
		t.Fatalf("expected the series line near (150,330)")
	}

	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("background should be white")
	}
}

func TestParseColor(t *testing.T) {
	if _, ok := parseColor("none"); ok {
		t.Fatalf("none should not be a color")
	}
	c, ok := parseColor("#4682b4")
	if !ok {
		t.Fatalf("expected hex color to parse")
	}
	r, g, b, _ := c.RGBA()
	if r>>8 != 70 || g>>8 != 130 || b>>8 != 180 {
		t.Fatalf("unexpected color %v %v %v", r>>8, g>>8, b>>8)
	}
	if _, ok := parseColor("#abc"); !ok {
		t.Fatalf("short hex should parse")
	}
	if _, ok := parseColor("currentColor"); !ok {
		t.Fatalf("currentColor should parse")
	}
}

func TestParseTranslate(t *testing.T) {
	x, y, ok := parseTranslate("translate(80,50)")
	if !ok || x != 80 || y != 50 {
		t.Fatalf("unexpected %v %v %v", x, y, ok)
	}
	if _, _, ok := parseTranslate("rotate(90)"); ok {
		t.Fatalf("rotate should not parse as translate")
	}
}

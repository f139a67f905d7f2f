package chart

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// plotClass marks the group appended by every PlotLineSeries call
const plotClass = "series-plot"

// Document is the host document charts are mounted into
type Document struct {
	root *Element
}

func NewDocument() *Document {
	return &Document{root: NewElement("body")}
}

// Root returns the document body
func (d *Document) Root() *Element {
	return d.root
}

// AddContainer appends a <div> mount point with the given id
func (d *Document) AddContainer(id string) *Element {
	return d.root.Append("div").Set("id", id)
}

// Container looks up a mount point by id
func (d *Document) Container(id string) (*Element, bool) {
	el := d.root.FindByID(id)
	return el, el != nil
}

// Canvas owns one <svg> surface and the translated plotting-area group.
// Not safe for concurrent use.
type Canvas struct {
	cfg  Config
	svg  *Element
	area *Element
}

// New creates a canvas which is not attached to any document
func New(cfg Config) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	svg := NewElement("svg").
		Set("xmlns", svgNamespace).
		Set("width", cfg.Width).
		Set("height", cfg.Height)
	area := svg.Append("g").
		Set("class", "plot-area").
		Set("transform", translate(cfg.MarginLeft, cfg.MarginTop))

	return &Canvas{cfg: cfg, svg: svg, area: area}, nil
}

// NewCanvas creates a canvas and mounts it into the container with the given id
func NewCanvas(doc *Document, containerID string, cfg Config) (*Canvas, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Mount(doc, containerID); err != nil {
		return nil, err
	}
	return c, nil
}

// Mount attaches the surface as a child of the container
func (c *Canvas) Mount(doc *Document, containerID string) error {
	if doc == nil {
		return fmt.Errorf("%w: %q (nil document)", ErrContainerNotFound, containerID)
	}
	container, ok := doc.Container(containerID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrContainerNotFound, containerID)
	}
	container.Children = append(container.Children, c.svg)
	return nil
}

func (c *Canvas) Config() Config {
	return c.cfg
}

// SVG returns the root <svg> element
func (c *Canvas) SVG() *Element {
	return c.svg
}

// Area returns the plotting-area group, offset by the left and top margins
func (c *Canvas) Area() *Element {
	return c.area
}

// Plots returns the groups drawn so far, oldest first
func (c *Canvas) Plots() []*Element {
	return c.area.ChildrenWithClass(plotClass)
}

// Clear removes everything drawn on the plotting area
func (c *Canvas) Clear() {
	c.area.Children = nil
}

// WriteSVG writes a standalone SVG document
func (c *Canvas) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(bw)
	enc.Indent("", "  ")
	if err := enc.Encode(c.svg); err != nil {
		return fmt.Errorf("failed to encode svg: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if _, err := io.WriteString(bw, "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

func translate(x, y float64) string {
	return "translate(" + formatNumber(x) + "," + formatNumber(y) + ")"
}

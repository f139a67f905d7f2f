package chart

// SVG element tree used as the drawing surface.
// Elements are only ever appended; Canvas.Clear is the single removal point.

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
)

// Attr is a single element attribute. Order is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the drawing tree
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement creates a detached element
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Append creates a child element with the given tag and returns it
func (e *Element) Append(tag string) *Element {
	child := NewElement(tag)
	e.Children = append(e.Children, child)
	return child
}

// Set sets (or replaces) an attribute. Numbers are formatted without trailing zeros.
func (e *Element) Set(name string, value interface{}) *Element {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case float64:
		s = formatNumber(v)
	case float32:
		s = formatNumber(float64(v))
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		s = fmt.Sprint(v)
	}

	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = s
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: s})
	return e
}

// Get returns the attribute value or "" if unset
func (e *Element) Get(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// SetText sets the text content
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// FindAll returns all descendants with the given tag in document order.
// The receiver itself is not included.
func (e *Element) FindAll(tag string) []*Element {
	var found []*Element
	var walk func(n *Element)
	walk = func(n *Element) {
		for _, c := range n.Children {
			if c.Tag == tag {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(e)
	return found
}

// FindByID returns the first descendant (or the receiver) whose id matches
func (e *Element) FindByID(id string) *Element {
	if e.Get("id") == id {
		return e
	}
	for _, c := range e.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// ChildrenWithClass returns direct children whose class attribute equals class
func (e *Element) ChildrenWithClass(class string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Get("class") == class {
			out = append(out, c)
		}
	}
	return out
}

// MarshalXML writes the element and its subtree
func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := c.MarshalXML(enc, xml.StartElement{}); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// formatNumber rounds to 3 decimals which is plenty for pixel coordinates
func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

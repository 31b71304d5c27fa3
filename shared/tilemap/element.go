package tilemap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Element is a node of a parsed XML document. It exposes just what the map
// format needs: children by name, typed attributes with defaults and text.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
	text     strings.Builder
}

// ParseElement reads a whole XML document and returns its root element.
func ParseElement(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var stack []*Element
	var root *Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root element: %w", io.ErrUnexpectedEOF)
	}
	return root, nil
}

// Child returns the first child called name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FirstChild returns the first child element of any name, or nil.
func (e *Element) FirstChild() *Element {
	if e == nil || len(e.Children) == 0 {
		return nil
	}
	return e.Children[0]
}

// All returns every child called name in document order.
func (e *Element) All(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the raw character data directly inside e.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text.String()
}

func (e *Element) lookup(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.Attrs[name]
	return v, ok
}

// Has reports whether attribute name is present.
func (e *Element) Has(name string) bool {
	_, ok := e.lookup(name)
	return ok
}

// Attr returns attribute name, or def when absent.
func (e *Element) Attr(name, def string) string {
	if v, ok := e.lookup(name); ok {
		return v
	}
	return def
}

// IntAttr returns attribute name as an int, or def when absent or malformed.
func (e *Element) IntAttr(name string, def int) int {
	v, ok := e.lookup(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// FloatAttr returns attribute name as a float64, or def when absent or malformed.
func (e *Element) FloatAttr(name string, def float64) float64 {
	v, ok := e.lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// BoolAttr accepts "1"/"0" as well as "true"/"false".
func (e *Element) BoolAttr(name string, def bool) bool {
	v, ok := e.lookup(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

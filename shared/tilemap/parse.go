package tilemap

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"strconv"
	"strings"
)

// ObjectParser builds an Object from an <object> element.
type ObjectParser func(el *Element) Object

type loadOptions struct {
	objectParser ObjectParser
}

// LoadOption configures LoadMap and ParseMap.
type LoadOption func(*loadOptions)

// WithObjectParser replaces the default object parser. The object is still
// bucketed by the element's name attribute.
func WithObjectParser(p ObjectParser) LoadOption {
	return func(o *loadOptions) {
		o.objectParser = p
	}
}

// LoadTileset reads a tileset (.tsx) file. The returned tileset is never nil:
// on failure it is empty and the error wraps ErrLoad or ErrMissingElement.
func LoadTileset(fsys fs.FS, path string) (*Tileset, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		log.Printf("Warning: could not read tileset %s: %v", path, err)
		return newTileset(), fmt.Errorf("read tileset %s: %w: %w", path, ErrLoad, err)
	}
	ts, err := ParseTileset(bytes.NewReader(b))
	if err != nil {
		return ts, fmt.Errorf("tileset %s: %w", path, err)
	}
	return ts, nil
}

// ParseTileset decodes a tileset document.
func ParseTileset(r io.Reader) (*Tileset, error) {
	ts := newTileset()
	root, err := ParseElement(r)
	if err != nil {
		log.Printf("Warning: could not parse tileset: %v", err)
		return ts, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if root.Name != "tileset" {
		log.Printf("Warning: no tileset node, found <%s>", root.Name)
		return ts, fmt.Errorf("<tileset>: %w", ErrMissingElement)
	}
	fillTileset(ts, root)
	return ts, nil
}

func fillTileset(ts *Tileset, el *Element) {
	ts.Name = el.Attr("name", "")
	ts.TileWidth = el.IntAttr("tilewidth", 0)
	ts.TileHeight = el.IntAttr("tileheight", 0)
	ts.TileCount = el.IntAttr("tilecount", 0)
	ts.Columns = el.IntAttr("columns", 0)
	if ts.Columns > 0 {
		ts.Rows = ts.TileCount / ts.Columns
	} else if ts.TileCount > 0 {
		log.Printf("Warning: tileset %q has %d tiles but no columns", ts.Name, ts.TileCount)
	}

	if img := el.Child("image"); img != nil {
		ts.ImageSource = img.Attr("source", "")
		ts.ImageWidth = img.IntAttr("width", 0)
		ts.ImageHeight = img.IntAttr("height", 0)
	}

	parseProperties(&ts.Properties, el.Child("properties"))

	for _, tile := range el.All("tile") {
		id := tile.IntAttr("id", 0) + 1

		if props := tile.Child("properties"); props != nil {
			store := &PropertyStore{}
			parseProperties(store, props)
			ts.TileProperties[id] = store
		}

		// Unnamed objects are collision boxes; named ones are markers.
		for _, obj := range tile.Child("objectgroup").All("object") {
			if obj.Has("name") {
				continue
			}
			ts.Hitboxes[id] = append(ts.Hitboxes[id], Rect{
				X:      obj.FloatAttr("x", 0),
				Y:      obj.FloatAttr("y", 0),
				Width:  obj.FloatAttr("width", 0),
				Height: obj.FloatAttr("height", 0),
			})
		}

		for _, frame := range tile.Child("animation").All("frame") {
			ts.Animations[id] = append(ts.Animations[id], Frame{
				GID:      frame.IntAttr("tileid", 0) + 1,
				Duration: frame.IntAttr("duration", 0),
			})
		}
	}
}

// LoadMap reads a map (.tmx) file. The returned map is never nil: on failure
// it is empty but drawable and the error wraps ErrLoad or ErrMissingElement.
func LoadMap(fsys fs.FS, path string, opts ...LoadOption) (*Tilemap, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		log.Printf("Warning: could not read map %s: %v", path, err)
		return NewTilemap(), fmt.Errorf("read map %s: %w: %w", path, ErrLoad, err)
	}
	m, err := ParseMap(bytes.NewReader(b), opts...)
	if err != nil {
		return m, fmt.Errorf("map %s: %w", path, err)
	}
	return m, nil
}

// ParseMap decodes a map document.
func ParseMap(r io.Reader, opts ...LoadOption) (*Tilemap, error) {
	o := loadOptions{objectParser: ParseObject}
	for _, opt := range opts {
		opt(&o)
	}

	m := NewTilemap()
	root, err := ParseElement(r)
	if err != nil {
		log.Printf("Warning: could not parse map: %v", err)
		return m, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if root.Name != "map" {
		log.Printf("Warning: no map node, found <%s>", root.Name)
		return m, fmt.Errorf("<map>: %w", ErrMissingElement)
	}

	m.TileWidth = root.IntAttr("tilewidth", 0)
	m.TileHeight = root.IntAttr("tileheight", 0)
	m.Width = max(0, root.IntAttr("width", 0))
	m.Height = max(0, root.IntAttr("height", 0))
	m.Bounds = Rect{Width: float64(m.Width * m.TileWidth), Height: float64(m.Height * m.TileHeight)}
	parseProperties(&m.Properties, root.Child("properties"))

	setOrientation(m, root.Attr("orientation", ""))
	setRenderOrder(m, root.Attr("renderorder", ""))

	parseMapChildren(m, root, &o)
	return m, nil
}

// setOrientation leaves the default in place for unknown values.
func setOrientation(m *Tilemap, orientation string) {
	switch orientation {
	case "orthogonal":
		m.Orientation = Orthogonal
	case "isometric":
		m.Orientation = Isometric
	case "":
		log.Printf("Warning: map has no orientation attribute")
	default:
		log.Printf("Warning: unsupported map orientation %q", orientation)
	}
}

func setRenderOrder(m *Tilemap, renderOrder string) {
	ro, ok := renderOrderNames[renderOrder]
	if !ok {
		log.Printf("Warning: unsupported render order %q", renderOrder)
		return
	}
	m.RenderOrder = ro
}

func parseMapChildren(m *Tilemap, parent *Element, o *loadOptions) {
	for _, child := range parent.Children {
		switch child.Name {
		case "layer":
			parseLayer(m, child)
		case "objectgroup":
			parseObjectLayer(m, child, o)
		case "group":
			parseMapChildren(m, child, o)
		case "tileset":
			parseTilesetRef(m, child)
		}
	}
}

func parseTilesetRef(m *Tilemap, el *Element) {
	ref := TilesetRef{
		FirstGID: el.IntAttr("firstgid", 0),
		Source:   el.Attr("source", ""),
	}
	if ref.Source == "" {
		ref.Inline = newTileset()
		fillTileset(ref.Inline, el)
	}
	m.TilesetRefs = append(m.TilesetRefs, ref)
}

func parseLayer(m *Tilemap, el *Element) {
	l := &Layer{
		ID:      el.IntAttr("id", 0),
		Name:    el.Attr("name", ""),
		Width:   max(0, el.IntAttr("width", 0)),
		Height:  max(0, el.IntAttr("height", 0)),
		Opacity: el.FloatAttr("opacity", 1),
		Visible: el.IntAttr("visible", 1) == 1,
	}
	parseProperties(&l.Properties, el.Child("properties"))
	decodeLayerData(l, el.Child("data"))
	m.addLayer(l)
}

func parseObjectLayer(m *Tilemap, el *Element, o *loadOptions) {
	ol := &ObjectLayer{
		ID:      el.IntAttr("id", 0),
		Name:    el.Attr("name", ""),
		Objects: make(map[string][]Object),
	}
	parseProperties(&ol.Properties, el.Child("properties"))
	for _, objEl := range el.All("object") {
		ol.add(objEl.Attr("name", ""), o.objectParser(objEl))
	}
	m.addObjectLayer(ol)
}

// ParseObject is the default ObjectParser. An object whose first content
// child is <text> becomes a text object.
func ParseObject(el *Element) Object {
	obj := Object{
		ID:   el.IntAttr("id", 0),
		Name: el.Attr("name", ""),
		Rect: Rect{
			X:      el.FloatAttr("x", 0),
			Y:      el.FloatAttr("y", 0),
			Width:  el.FloatAttr("width", 0),
			Height: el.FloatAttr("height", 0),
		},
	}
	parseProperties(&obj.Properties, el.Child("properties"))

	for _, c := range el.Children {
		if c.Name == "properties" {
			continue
		}
		if c.Name == "text" {
			obj.Kind = ObjectText
			obj.Text = parseText(c)
		}
		break
	}
	return obj
}

func parseText(el *Element) *TextAttrs {
	return &TextAttrs{
		Text:       el.Text(),
		FontFamily: el.Attr("fontfamily", "sans-serif"),
		FontSize:   el.IntAttr("pixelsize", el.IntAttr("fontsize", 16)),
		Color:      parseHexColor(el.Attr("color", ""), color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Wrap:       el.BoolAttr("wrap", false),
		Bold:       el.BoolAttr("bold", false),
		Italic:     el.BoolAttr("italic", false),
		Underline:  el.BoolAttr("underline", false),
		Strikeout:  el.BoolAttr("strikeout", false),
		Kerning:    el.BoolAttr("kerning", true),
		HAlign:     el.Attr("halign", el.Attr("horizontalalignment", "left")),
		VAlign:     el.Attr("valign", el.Attr("verticalalignment", "top")),
	}
}

// parseHexColor accepts #RRGGBB and #AARRGGBB.
func parseHexColor(s string, def color.RGBA) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return def
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return def
	}
	c := color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	if len(s) == 8 {
		c.A = uint8(v >> 24)
	}
	return c
}

func parseProperties(store *PropertyStore, el *Element) {
	for _, p := range el.All("property") {
		store.Add(
			p.Attr("name", ""),
			Kind(p.Attr("type", string(KindString))),
			p.Attr("value", p.Text()),
		)
	}
}

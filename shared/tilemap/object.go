package tilemap

import "image/color"

// ObjectKind tags the variant of an Object.
type ObjectKind int

const (
	ObjectPlain ObjectKind = iota
	ObjectText
)

// TextAttrs are the rendering hints of a text object.
type TextAttrs struct {
	Text       string
	FontFamily string
	FontSize   int
	Color      color.RGBA
	Wrap       bool
	Bold       bool
	Italic     bool
	Underline  bool
	Strikeout  bool
	Kerning    bool
	HAlign     string
	VAlign     string
}

// Object is a freely placed map entity. Text is set only when Kind is ObjectText.
type Object struct {
	ID         int
	Name       string
	Rect       Rect
	Properties PropertyStore
	Kind       ObjectKind
	Text       *TextAttrs
}

// IsText reports whether o carries text attributes.
func (o *Object) IsText() bool {
	return o.Kind == ObjectText && o.Text != nil
}

// ObjectLayer buckets objects by their name attribute.
type ObjectLayer struct {
	ID         int
	Name       string
	Properties PropertyStore
	Objects    map[string][]Object
}

// First returns the first object in the bucket called name.
func (ol *ObjectLayer) First(name string) (*Object, bool) {
	objs := ol.Objects[name]
	if len(objs) == 0 {
		return nil, false
	}
	return &objs[0], true
}

// All returns the bucket called name.
func (ol *ObjectLayer) All(name string) []Object {
	return ol.Objects[name]
}

func (ol *ObjectLayer) add(key string, o Object) {
	if ol.Objects == nil {
		ol.Objects = make(map[string][]Object)
	}
	ol.Objects[key] = append(ol.Objects[key], o)
}

// Package tilemap loads Tiled (TMX/TSX) maps into an in-memory model, resolves
// global tile ids across tilesets and computes per frame what to draw.
// It has no dependency on a renderer; drawing goes through DrawSink.
package tilemap

import "sort"

type Orientation int

const (
	Orthogonal Orientation = iota
	Isometric
)

func (o Orientation) String() string {
	if o == Isometric {
		return "isometric"
	}
	return "orthogonal"
}

type RenderOrder int

const (
	LeftDown RenderOrder = iota
	LeftUp
	RightDown
	RightUp
)

var renderOrderNames = map[string]RenderOrder{
	"left-down":  LeftDown,
	"left-up":    LeftUp,
	"right-down": RightDown,
	"right-up":   RightUp,
}

func (r RenderOrder) String() string {
	for name, v := range renderOrderNames {
		if v == r {
			return name
		}
	}
	return "unknown"
}

// TilesetRef is a <tileset> entry of a map file. Inline is set for tilesets
// embedded in the map instead of referenced by Source.
type TilesetRef struct {
	FirstGID int
	Source   string
	Inline   *Tileset
}

// Tilemap is a parsed map: named tile layers and object layers plus map-wide metadata.
type Tilemap struct {
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	// Bounds is the map size in pixels.
	Bounds      Rect
	Orientation Orientation
	RenderOrder RenderOrder

	// LayerNames lists tile layers in document order.
	LayerNames       []string
	ObjectLayerNames []string
	Layers           map[string]*Layer
	ObjectLayers     map[string]*ObjectLayer
	TilesetRefs      []TilesetRef
	Properties       PropertyStore
}

// NewTilemap returns an empty, drawable map.
func NewTilemap() *Tilemap {
	return &Tilemap{
		Layers:       make(map[string]*Layer),
		ObjectLayers: make(map[string]*ObjectLayer),
	}
}

// Empty reports whether nothing was loaded into m.
func (m *Tilemap) Empty() bool {
	return m.Width == 0 && len(m.Layers) == 0 && len(m.ObjectLayers) == 0
}

func (m *Tilemap) Layer(name string) (*Layer, bool) {
	l, ok := m.Layers[name]
	return l, ok
}

func (m *Tilemap) ObjectLayer(name string) (*ObjectLayer, bool) {
	ol, ok := m.ObjectLayers[name]
	return ol, ok
}

// LayerByID returns the tile layer with the given id.
func (m *Tilemap) LayerByID(id int) (*Layer, bool) {
	for _, name := range m.LayerNames {
		if l := m.Layers[name]; l != nil && l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// ObjectLayerByID returns the object layer with the given id.
func (m *Tilemap) ObjectLayerByID(id int) (*ObjectLayer, bool) {
	for _, name := range m.ObjectLayerNames {
		if ol := m.ObjectLayers[name]; ol != nil && ol.ID == id {
			return ol, true
		}
	}
	return nil, false
}

// ObjectNames returns the bucket names of every object layer, sorted.
func (m *Tilemap) ObjectNames() []string {
	seen := make(map[string]struct{})
	for _, ol := range m.ObjectLayers {
		for name := range ol.Objects {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear empties every tile list and object bucket in place, keeping layer metadata.
func (m *Tilemap) Clear() {
	for _, l := range m.Layers {
		l.Tiles = l.Tiles[:0]
	}
	for _, ol := range m.ObjectLayers {
		clear(ol.Objects)
	}
}

func (m *Tilemap) addLayer(l *Layer) {
	if _, dup := m.Layers[l.Name]; !dup {
		m.LayerNames = append(m.LayerNames, l.Name)
	}
	m.Layers[l.Name] = l
}

func (m *Tilemap) addObjectLayer(ol *ObjectLayer) {
	if _, dup := m.ObjectLayers[ol.Name]; !dup {
		m.ObjectLayerNames = append(m.ObjectLayerNames, ol.Name)
	}
	m.ObjectLayers[ol.Name] = ol
}

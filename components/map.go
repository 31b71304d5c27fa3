package components

import (
	"github.com/automoto/tmxview/shared/leveldata"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

// MapData is the currently open map and the list it was picked from.
type MapData struct {
	Names []string // stems of the maps found in the maps directory
	Index int
	Path  string

	Map       *tilemap.Tilemap
	Tilesets  *tilemap.TilesetCollection
	Collision *leveldata.CollisionData
	// SpawnMarkers holds the tile drawn over spawn points, if any.
	SpawnMarkers *tilemap.TilesetCollection

	// Baked holds pre-rendered images of static layers, keyed by layer name.
	Baked map[string]*ebiten.Image
	// Hidden overrides layer visibility from the layer panel.
	Hidden map[string]bool

	// Requested asks the scene to (re)open Names[RequestIndex] before the
	// next tick. Loading happens outside the systems so they never block on IO.
	Requested    bool
	RequestIndex int
}

// Name returns the stem of the open map.
func (m *MapData) Name() string {
	if m.Index < 0 || m.Index >= len(m.Names) {
		return ""
	}
	return m.Names[m.Index]
}

var Map = donburi.NewComponentType[MapData]()

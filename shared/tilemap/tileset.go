package tilemap

import "image"

// Image is the opaque handle of a loaded tileset image. *ebiten.Image and
// image.Image both satisfy it.
type Image interface {
	Bounds() image.Rectangle
}

// Frame is one step of an animated tile. GID is tileset-local and 1-based.
type Frame struct {
	GID      int
	Duration int // milliseconds
}

// Tileset is one image-backed tile source.
//
// Per-tile metadata (Hitboxes, Animations, TileProperties) is keyed by the
// tile's local id plus one, while source-rectangle math uses the zero-based
// local index. Both conventions are relied on by map files in the wild.
type Tileset struct {
	Name        string
	ImageSource string
	ImageWidth  int
	ImageHeight int
	Image       Image

	TileWidth  int
	TileHeight int
	Columns    int
	Rows       int
	TileCount  int

	// StartingGID is assigned by a TilesetCollection.
	StartingGID int

	Hitboxes       map[int][]Rect
	Animations     map[int][]Frame
	TileProperties map[int]*PropertyStore
	Properties     PropertyStore
}

func newTileset() *Tileset {
	return &Tileset{
		StartingGID:    1,
		Hitboxes:       make(map[int][]Rect),
		Animations:     make(map[int][]Frame),
		TileProperties: make(map[int]*PropertyStore),
	}
}

// Contains reports whether gid falls inside this tileset's range.
func (ts *Tileset) Contains(gid int) bool {
	return gid >= ts.StartingGID && gid < ts.StartingGID+ts.TileCount
}

// LastGID returns the last gid of the range, or StartingGID-1 for an empty tileset.
func (ts *Tileset) LastGID() int {
	return ts.StartingGID + ts.TileCount - 1
}

// GetSourceRect returns the pixel rectangle of gid inside the tileset image.
// The caller guarantees gid lies in this tileset's range.
func (ts *Tileset) GetSourceRect(gid int) Rect {
	if ts.Columns <= 0 {
		return Rect{}
	}
	local := gid - ts.StartingGID
	col := local % ts.Columns
	row := local / ts.Columns
	return Rect{
		X:      float64(col * ts.TileWidth),
		Y:      float64(row * ts.TileHeight),
		Width:  float64(ts.TileWidth),
		Height: float64(ts.TileHeight),
	}
}

func (ts *Tileset) metaKey(gid int) int {
	return gid - ts.StartingGID + 1
}

// GetHitboxes returns the collision rectangles of gid, relative to the tile's
// top-left corner. Missing entries yield nil.
func (ts *Tileset) GetHitboxes(gid int) []Rect {
	return ts.Hitboxes[ts.metaKey(gid)]
}

// GetAnimation returns the animation frames of gid, or nil.
func (ts *Tileset) GetAnimation(gid int) []Frame {
	return ts.Animations[ts.metaKey(gid)]
}

// GetTileProperties returns the per-tile properties of gid. The result is
// never nil.
func (ts *Tileset) GetTileProperties(gid int) *PropertyStore {
	if p, ok := ts.TileProperties[ts.metaKey(gid)]; ok {
		return p
	}
	return &PropertyStore{}
}

// FrameGID converts a tileset-local, 1-based frame id into a global id.
func (ts *Tileset) FrameGID(local int) int {
	return ts.StartingGID - 1 + local
}

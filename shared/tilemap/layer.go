package tilemap

// Flip holds the mirroring flags Tiled packs into the high bits of a gid.
type Flip uint8

const (
	FlipHorizontal Flip = 1 << iota
	FlipVertical
	FlipDiagonal
)

const (
	gidFlipHorizontal = 0x80000000
	gidFlipVertical   = 0x40000000
	gidFlipDiagonal   = 0x20000000
	gidFlagMask       = gidFlipHorizontal | gidFlipVertical | gidFlipDiagonal | 0x10000000
)

// Tile is one grid cell. GID 0 is an empty cell.
type Tile struct {
	GID   int
	Flip  Flip
	Phase int // animation phase in ticks, advanced by the resolver
}

// tileFromRaw splits a raw 32-bit cell value into gid and flip flags.
func tileFromRaw(raw uint32) Tile {
	var f Flip
	if raw&gidFlipHorizontal != 0 {
		f |= FlipHorizontal
	}
	if raw&gidFlipVertical != 0 {
		f |= FlipVertical
	}
	if raw&gidFlipDiagonal != 0 {
		f |= FlipDiagonal
	}
	return Tile{GID: int(raw &^ gidFlagMask), Flip: f}
}

// Layer is a row-major grid of tiles.
type Layer struct {
	ID         int
	Name       string
	Width      int
	Height     int
	Opacity    float64
	Visible    bool
	Tiles      []Tile
	Properties PropertyStore
}

func (l *Layer) index(x, y int) (int, bool) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return 0, false
	}
	i := y*l.Width + x
	if i >= len(l.Tiles) {
		return 0, false
	}
	return i, true
}

// At returns the cell at (x, y). It reports false outside the grid.
func (l *Layer) At(x, y int) (*Tile, bool) {
	i, ok := l.index(x, y)
	if !ok {
		return nil, false
	}
	return &l.Tiles[i], true
}

// SetAt replaces the cell at (x, y). Out-of-range writes are ignored and
// report false.
func (l *Layer) SetAt(x, y int, t Tile) bool {
	i, ok := l.index(x, y)
	if !ok {
		return false
	}
	l.Tiles[i] = t
	return true
}

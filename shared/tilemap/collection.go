package tilemap

import (
	"fmt"
	"io/fs"
	"log"
)

// TilesetCollection assigns each added tileset a contiguous gid range, in
// insertion order, starting at 1.
type TilesetCollection struct {
	tilesets  []*Tileset
	tileCount int
}

func NewTilesetCollection() *TilesetCollection {
	return &TilesetCollection{}
}

// Add assigns ts the next gid range, attaches img and appends it.
func (c *TilesetCollection) Add(ts *Tileset, img Image) *Tileset {
	if img != nil {
		ts.Image = img
	}
	ts.StartingGID = 1 + c.tileCount
	c.tileCount += ts.TileCount
	c.tilesets = append(c.tilesets, ts)
	return ts
}

// AddTileset parses the tileset file at path and adds it with the given image.
// A file that fails to load is still added, empty, so later ranges stay stable;
// the load error is returned alongside it.
func (c *TilesetCollection) AddTileset(fsys fs.FS, path string, img Image) (*Tileset, error) {
	ts, err := LoadTileset(fsys, path)
	c.Add(ts, img)
	if err != nil {
		return ts, fmt.Errorf("add tileset %s: %w", path, err)
	}
	return ts, nil
}

// AddImageTileset builds a tileset directly from an image cut into
// tileWidth x tileHeight cells.
//
// Both the column and the row count are derived from the image width, which
// matches how existing square tile sheets were authored.
func (c *TilesetCollection) AddImageTileset(img Image, tileWidth, tileHeight int) *Tileset {
	ts := newTileset()
	ts.TileWidth = tileWidth
	ts.TileHeight = tileHeight
	if img != nil && tileWidth > 0 && tileHeight > 0 {
		b := img.Bounds()
		ts.ImageWidth, ts.ImageHeight = b.Dx(), b.Dy()
		ts.Columns = b.Dx() / tileWidth
		ts.Rows = b.Dx() / tileHeight
		ts.TileCount = ts.Columns * ts.Rows
	} else {
		log.Printf("Warning: image tileset with tile size %dx%d has no usable image", tileWidth, tileHeight)
	}
	return c.Add(ts, img)
}

// Resolve returns the tileset whose range contains gid. If ranges ever
// overlapped, the earliest added tileset wins.
func (c *TilesetCollection) Resolve(gid int) (*Tileset, bool) {
	if gid <= 0 {
		return nil, false
	}
	for _, ts := range c.tilesets {
		if ts.Contains(gid) {
			return ts, true
		}
	}
	return nil, false
}

// ByName returns the first tileset with the given name.
func (c *TilesetCollection) ByName(name string) (*Tileset, bool) {
	for _, ts := range c.tilesets {
		if ts.Name == name {
			return ts, true
		}
	}
	return nil, false
}

func (c *TilesetCollection) Tilesets() []*Tileset {
	return c.tilesets
}

func (c *TilesetCollection) Len() int {
	return len(c.tilesets)
}

// TileCount is the total number of gids handed out.
func (c *TilesetCollection) TileCount() int {
	return c.tileCount
}

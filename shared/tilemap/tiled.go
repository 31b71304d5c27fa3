package tilemap

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/lafriks/go-tiled"
)

// ImportTiled loads a map through go-tiled, which decodes every Tiled layer
// encoding, and converts it into the native model. The map's tilesets are
// added to a fresh collection in file order and cell gids are re-based onto
// the collection's ranges. Tileset ImageSource paths are resolved relative
// to fsys; images are not attached. Map-level properties are not imported.
func ImportTiled(fsys fs.FS, path string) (*Tilemap, *TilesetCollection, error) {
	sets := NewTilesetCollection()
	tm, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		log.Printf("Warning: could not import map %s: %v", path, err)
		return NewTilemap(), sets, fmt.Errorf("import TMX %s: %w: %w", path, ErrLoad, err)
	}

	m := NewTilemap()
	m.Width = max(0, tm.Width)
	m.Height = max(0, tm.Height)
	m.TileWidth = tm.TileWidth
	m.TileHeight = tm.TileHeight
	m.Bounds = Rect{Width: float64(m.Width * m.TileWidth), Height: float64(m.Height * m.TileHeight)}
	setOrientation(m, tm.Orientation)
	setRenderOrder(m, tm.RenderOrder)

	converted := make(map[*tiled.Tileset]*Tileset, len(tm.Tilesets))
	for _, src := range tm.Tilesets {
		ts := sets.Add(convertTileset(src), nil)
		if int(src.FirstGID) != ts.StartingGID {
			log.Printf("Warning: tileset %q firstgid %d re-based to %d", ts.Name, src.FirstGID, ts.StartingGID)
		}
		converted[src] = ts
	}

	cells, ok := gridCells(m.Width, m.Height)
	if !ok && len(tm.Layers) > 0 {
		log.Printf("Warning: map %s: unusable size %dx%d, layers left empty", path, tm.Width, tm.Height)
	}

	for _, src := range tm.Layers {
		l := &Layer{
			ID:      int(src.ID),
			Name:    src.Name,
			Width:   m.Width,
			Height:  m.Height,
			Opacity: float64(src.Opacity),
			Visible: src.Visible,
			Tiles:   make([]Tile, cells),
		}
		copyProperties(&l.Properties, src.Properties)
		for i, lt := range src.Tiles {
			if i >= len(l.Tiles) || lt == nil || lt.IsNil() {
				continue
			}
			ts, ok := converted[lt.Tileset]
			if !ok {
				continue
			}
			t := Tile{GID: ts.StartingGID + int(lt.ID)}
			if lt.HorizontalFlip {
				t.Flip |= FlipHorizontal
			}
			if lt.VerticalFlip {
				t.Flip |= FlipVertical
			}
			if lt.DiagonalFlip {
				t.Flip |= FlipDiagonal
			}
			l.Tiles[i] = t
		}
		m.addLayer(l)
	}

	for _, og := range tm.ObjectGroups {
		m.addObjectLayer(convertObjectGroup(og))
	}
	return m, sets, nil
}

func convertTileset(src *tiled.Tileset) *Tileset {
	ts := newTileset()
	ts.Name = src.Name
	ts.TileWidth = src.TileWidth
	ts.TileHeight = src.TileHeight
	ts.TileCount = src.TileCount
	ts.Columns = src.Columns
	if ts.Columns > 0 {
		ts.Rows = ts.TileCount / ts.Columns
	}
	if src.Image != nil {
		ts.ImageSource = src.GetFileFullPath(src.Image.Source)
		ts.ImageWidth = src.Image.Width
		ts.ImageHeight = src.Image.Height
	}
	copyProperties(&ts.Properties, src.Properties)

	for _, tile := range src.Tiles {
		id := int(tile.ID) + 1
		if len(tile.Properties) > 0 {
			store := &PropertyStore{}
			copyProperties(store, tile.Properties)
			ts.TileProperties[id] = store
		}
		for _, og := range tile.ObjectGroups {
			for _, o := range og.Objects {
				if o.Name != "" {
					continue
				}
				ts.Hitboxes[id] = append(ts.Hitboxes[id], Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height})
			}
		}
		for _, f := range tile.Animation {
			ts.Animations[id] = append(ts.Animations[id], Frame{GID: int(f.TileID) + 1, Duration: int(f.Duration)})
		}
	}
	return ts
}

func convertObjectGroup(og *tiled.ObjectGroup) *ObjectLayer {
	ol := &ObjectLayer{
		ID:      int(og.ID),
		Name:    og.Name,
		Objects: make(map[string][]Object),
	}
	copyProperties(&ol.Properties, og.Properties)
	for _, o := range og.Objects {
		obj := Object{
			ID:   int(o.ID),
			Name: o.Name,
			Rect: Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height},
		}
		copyProperties(&obj.Properties, o.Properties)
		if o.Text != nil {
			obj.Kind = ObjectText
			obj.Text = &TextAttrs{
				Text:       o.Text.Text,
				FontFamily: o.Text.FontFamily,
				FontSize:   o.Text.Size,
				Color:      white,
				Wrap:       o.Text.Wrap,
				Bold:       o.Text.Bold,
				Italic:     o.Text.Italic,
				Underline:  o.Text.Underline,
				Strikeout:  o.Text.Strikethrough,
				Kerning:    o.Text.Kerning,
				HAlign:     o.Text.HAlign,
				VAlign:     o.Text.VAlign,
			}
		}
		ol.add(obj.Name, obj)
	}
	return ol
}

func copyProperties(dst *PropertyStore, src tiled.Properties) {
	for _, p := range src {
		kind := Kind(p.Type)
		if kind == "" {
			kind = KindString
		}
		dst.Add(p.Name, kind, p.Value)
	}
}

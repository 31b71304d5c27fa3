package tilemap

import (
	"errors"
	"io/fs"
	"log"
	"path"
)

// LoadWorld reads a map and every tileset it references, in file order.
// External tileset paths are resolved against the map's directory and each
// tileset's ImageSource against its own file. Images are left for the caller
// to attach. Tilesets that fail to load are kept empty; their errors are
// joined into the returned error alongside the map.
func LoadWorld(fsys fs.FS, mapPath string, opts ...LoadOption) (*Tilemap, *TilesetCollection, error) {
	sets := NewTilesetCollection()
	m, err := LoadMap(fsys, mapPath, opts...)
	if err != nil {
		return m, sets, err
	}

	dir := path.Dir(mapPath)
	var errs []error
	for _, ref := range m.TilesetRefs {
		var ts *Tileset
		if ref.Inline != nil {
			ts = sets.Add(ref.Inline, nil)
			ts.ImageSource = joinRel(dir, ts.ImageSource)
		} else {
			tsPath := joinRel(dir, ref.Source)
			ts, err = sets.AddTileset(fsys, tsPath, nil)
			if err != nil {
				errs = append(errs, err)
			}
			ts.ImageSource = joinRel(path.Dir(tsPath), ts.ImageSource)
		}
		if ref.FirstGID != 0 && ref.FirstGID != ts.StartingGID {
			log.Printf("Warning: tileset %q declared firstgid %d but was assigned %d", ts.Name, ref.FirstGID, ts.StartingGID)
		}
	}
	return m, sets, errors.Join(errs...)
}

func joinRel(dir, p string) string {
	if p == "" || path.IsAbs(p) {
		return p
	}
	return path.Join(dir, p)
}

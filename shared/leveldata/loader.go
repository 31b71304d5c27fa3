package leveldata

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/automoto/tmxview/shared/tilemap"
)

// LoadCollisionData loads the map at tmxPath with its tilesets and extracts
// its collision data. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath string, layers Layers) (*CollisionData, error) {
	m, sets, err := tilemap.LoadWorld(fsys, tmxPath)
	if err != nil && m.Empty() {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if err != nil {
		log.Printf("Warning: %s: %v", tmxPath, err)
	}
	return Extract(m, sets, layers), nil
}

// Extract builds collision data from an already loaded map. Cells of the
// solid layer contribute their tile's hitboxes, or the whole cell when the
// tile defines none.
func Extract(m *tilemap.Tilemap, sets *tilemap.TilesetCollection, layers Layers) *CollisionData {
	layers = layers.orDefault()
	data := &CollisionData{
		MapWidth:  m.Width * m.TileWidth,
		MapHeight: m.Height * m.TileHeight,
	}

	tileW := float64(m.TileWidth)
	tileH := float64(m.TileHeight)
	if solid, ok := m.Layer(layers.Solid); ok {
		for y := 0; y < solid.Height; y++ {
			for x := 0; x < solid.Width; x++ {
				tile, ok := solid.At(x, y)
				if !ok || tile.GID == 0 {
					continue
				}
				cx, cy := float64(x)*tileW, float64(y)*tileH

				var slopeType string
				ts, found := sets.Resolve(tile.GID)
				if found {
					slopeType, _ = ts.GetTileProperties(tile.GID).GetString("slope")
				}

				var boxes []tilemap.Rect
				if found {
					boxes = ts.GetHitboxes(tile.GID)
				}
				if len(boxes) == 0 {
					boxes = []tilemap.Rect{{Width: tileW, Height: tileH}}
				}
				for _, b := range boxes {
					data.SolidRects = append(data.SolidRects, SolidRect{
						X:         cx + b.X,
						Y:         cy + b.Y,
						W:         b.Width,
						H:         b.Height,
						SlopeType: slopeType,
						GID:       tile.GID,
					})
				}
			}
		}
	} else {
		log.Printf("Warning: map has no %q layer, no solid tiles", layers.Solid)
	}

	if ol, ok := m.ObjectLayer(layers.Spawn); ok {
		// Buckets are walked in name order so fallback indexes are stable.
		names := make([]string, 0, len(ol.Objects))
		for name := range ol.Objects {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			for _, o := range ol.Objects[name] {
				idx, err := o.Properties.GetInt("spawnIndex")
				if err != nil {
					idx = len(data.SpawnPoints)
				}
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.Rect.X,
					Y:     o.Rect.Y,
					Index: idx,
					Name:  name,
				})
			}
		}
	}

	// Sort spawns left-to-right for a stable order across map iteration.
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		a, b := data.SpawnPoints[i], data.SpawnPoints[j]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	return data
}

// ListLevels returns the stem names of every .tmx file in levelsDir, sorted.
func ListLevels(fsys fs.FS, levelsDir string) ([]string, error) {
	pattern := path.Join(levelsDir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		names = append(names, strings.TrimSuffix(path.Base(p), ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadAllLevels loads collision data for every .tmx file in levelsDir and
// returns it keyed by stem name plus the sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string, layers Layers) (map[string]*CollisionData, []string, error) {
	names, err := ListLevels(fsys, levelsDir)
	if err != nil {
		return nil, nil, err
	}

	levels := make(map[string]*CollisionData, len(names))
	for _, name := range names {
		p := path.Join(levelsDir, name+".tmx")
		data, err := LoadCollisionData(fsys, p, layers)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		levels[name] = data
	}
	return levels, names, nil
}

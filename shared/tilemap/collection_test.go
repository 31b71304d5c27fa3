package tilemap

import (
	"errors"
	"image"
	"testing"
	"testing/fstest"
)

func sizedTileset(name string, count, columns int) *Tileset {
	ts := newTileset()
	ts.Name = name
	ts.TileWidth = 16
	ts.TileHeight = 16
	ts.TileCount = count
	ts.Columns = columns
	if columns > 0 {
		ts.Rows = count / columns
	}
	return ts
}

func TestCollectionGIDPartition(t *testing.T) {
	cases := []struct {
		name   string
		counts []int
	}{
		{"single", []int{8}},
		{"three", []int{8, 12, 1}},
		{"with_empty", []int{4, 0, 6}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sets := NewTilesetCollection()
			for i, n := range c.counts {
				sets.Add(sizedTileset(string(rune('a'+i)), n, 4), nil)
			}

			next := 1
			for _, ts := range sets.Tilesets() {
				if ts.StartingGID != next {
					t.Fatalf("tileset %s: expected starting gid %d, got %d", ts.Name, next, ts.StartingGID)
				}
				next += ts.TileCount
			}
			if sets.TileCount() != next-1 {
				t.Fatalf("expected %d gids, got %d", next-1, sets.TileCount())
			}

			for gid := 1; gid < next; gid++ {
				ts, ok := sets.Resolve(gid)
				if !ok || !ts.Contains(gid) {
					t.Fatalf("gid %d did not resolve to its tileset", gid)
				}
				hits := 0
				for _, other := range sets.Tilesets() {
					if other.Contains(gid) {
						hits++
					}
				}
				if hits != 1 {
					t.Fatalf("gid %d is in %d ranges", gid, hits)
				}
			}
			if _, ok := sets.Resolve(0); ok {
				t.Fatalf("gid 0 must not resolve")
			}
			if _, ok := sets.Resolve(next); ok {
				t.Fatalf("gid %d past the last range must not resolve", next)
			}
		})
	}
}

func TestTilesetSourceRect(t *testing.T) {
	sets := NewTilesetCollection()
	sets.Add(sizedTileset("first", 6, 3), nil)
	ts := sets.Add(sizedTileset("second", 12, 4), nil)

	for gid := ts.StartingGID; gid <= ts.LastGID(); gid++ {
		r := ts.GetSourceRect(gid)
		col := int(r.X) / ts.TileWidth
		row := int(r.Y) / ts.TileHeight
		local := gid - ts.StartingGID
		if col != local%ts.Columns || row != local/ts.Columns {
			t.Fatalf("gid %d: got col=%d row=%d", gid, col, row)
		}
		if row < 0 || row >= ts.Rows {
			t.Fatalf("gid %d: row %d outside [0,%d)", gid, row, ts.Rows)
		}
		if r.Width != 16 || r.Height != 16 {
			t.Fatalf("gid %d: unexpected size %vx%v", gid, r.Width, r.Height)
		}
	}
}

func TestTilesetMetadataOffset(t *testing.T) {
	sets := NewTilesetCollection()
	sets.Add(sizedTileset("first", 8, 4), nil)
	ts := sets.Add(sizedTileset("second", 8, 4), nil)

	// local tile id 2 is keyed as 3 and drawn from gid StartingGID+2
	ts.Hitboxes[3] = []Rect{{X: 0, Y: 8, Width: 16, Height: 8}}
	ts.Animations[3] = []Frame{{GID: 3, Duration: 100}, {GID: 4, Duration: 100}}

	gid := ts.StartingGID + 2
	if got := ts.GetHitboxes(gid); len(got) != 1 || got[0].Y != 8 {
		t.Fatalf("expected hitbox for gid %d, got %+v", gid, got)
	}
	if got := ts.GetAnimation(gid); len(got) != 2 {
		t.Fatalf("expected animation for gid %d, got %+v", gid, got)
	}
	if got := ts.GetHitboxes(gid + 1); got != nil {
		t.Fatalf("expected no hitboxes, got %+v", got)
	}
	if ts.FrameGID(3) != gid {
		t.Fatalf("expected frame 3 to map to gid %d, got %d", gid, ts.FrameGID(3))
	}
	if ts.GetTileProperties(gid).Len() != 0 {
		t.Fatalf("expected empty tile properties")
	}
}

func TestAddImageTilesetUsesImageWidth(t *testing.T) {
	sets := NewTilesetCollection()
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	ts := sets.AddImageTileset(img, 16, 16)

	if ts.Columns != 4 || ts.Rows != 4 || ts.TileCount != 16 {
		t.Fatalf("expected 4 columns, 4 rows, 16 tiles; got %d, %d, %d", ts.Columns, ts.Rows, ts.TileCount)
	}
	if ts.StartingGID != 1 || ts.Image == nil {
		t.Fatalf("expected gid 1 with image attached, got %+v", ts)
	}
}

func TestAddTilesetFromFile(t *testing.T) {
	fsys := fstest.MapFS{
		"sets/terrain.tsx": {Data: []byte(terrainTSX)},
	}
	sets := NewTilesetCollection()
	sets.Add(sizedTileset("first", 5, 5), nil)

	ts, err := sets.AddTileset(fsys, "sets/terrain.tsx", image.NewRGBA(image.Rect(0, 0, 64, 32)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.StartingGID != 6 || ts.Name != "terrain" {
		t.Fatalf("expected terrain at gid 6, got %q at %d", ts.Name, ts.StartingGID)
	}
	if got, ok := sets.ByName("terrain"); !ok || got != ts {
		t.Fatalf("expected lookup by name")
	}

	missing, err := sets.AddTileset(fsys, "sets/missing.tsx", nil)
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected load error, got %v", err)
	}
	if missing.TileCount != 0 || sets.Len() != 3 {
		t.Fatalf("expected an empty tileset to be appended")
	}
}

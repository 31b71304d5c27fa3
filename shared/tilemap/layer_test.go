package tilemap

import "testing"

func TestLayerBounds(t *testing.T) {
	l := &Layer{Name: "ground", Width: 3, Height: 2, Tiles: make([]Tile, 6)}

	cases := []struct {
		x, y int
		ok   bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, c := range cases {
		if _, ok := l.At(c.x, c.y); ok != c.ok {
			t.Fatalf("At(%d,%d): expected %v", c.x, c.y, c.ok)
		}
		if ok := l.SetAt(c.x, c.y, Tile{GID: 9}); ok != c.ok {
			t.Fatalf("SetAt(%d,%d): expected %v", c.x, c.y, c.ok)
		}
	}

	tile, _ := l.At(2, 1)
	if tile.GID != 9 || l.Tiles[5].GID != 9 {
		t.Fatalf("expected row-major write at index 5")
	}
	for i, tl := range l.Tiles {
		if i != 0 && i != 5 && tl.GID != 0 {
			t.Fatalf("out-of-range write leaked into cell %d", i)
		}
	}
}

func TestLayerShortTiles(t *testing.T) {
	l := &Layer{Width: 4, Height: 4}
	if _, ok := l.At(1, 1); ok {
		t.Fatalf("a layer without tiles has no cells")
	}
}

func TestTileFromRaw(t *testing.T) {
	cases := []struct {
		raw  uint32
		gid  int
		flip Flip
	}{
		{0, 0, 0},
		{17, 17, 0},
		{0x80000000 | 3, 3, FlipHorizontal},
		{0x40000000 | 3, 3, FlipVertical},
		{0xe0000000 | 4, 4, FlipHorizontal | FlipVertical | FlipDiagonal},
		{0x10000000 | 5, 5, 0},
	}
	for _, c := range cases {
		got := tileFromRaw(c.raw)
		if got.GID != c.gid || got.Flip != c.flip {
			t.Fatalf("raw %#x: expected gid %d flip %v, got %+v", c.raw, c.gid, c.flip, got)
		}
	}
}

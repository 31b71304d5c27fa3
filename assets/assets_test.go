package assets

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/tmxview/shared/tilemap"
)

const noImageTSX = `<tileset name="plain" tilewidth="8" tileheight="8" tilecount="4" columns="2"/>`

const missingImageTSX = `<tileset name="lost" tilewidth="8" tileheight="8" tilecount="4" columns="2">
 <image source="lost.png" width="16" height="16"/>
</tileset>`

func worldFS(tilesetSrc string) fstest.MapFS {
	return fstest.MapFS{
		"maps/one.tmx": {Data: []byte(`<map orientation="orthogonal" renderorder="right-down" width="2" height="1" tilewidth="8" tileheight="8">
 <tileset firstgid="1" source="sets/set.tsx"/>
 <layer id="1" name="ground" width="2" height="1">
  <properties><property name="bake" type="bool" value="true"/></properties>
  <data encoding="csv">1,2</data>
 </layer>
 <layer id="2" name="top" width="2" height="1"><data encoding="csv">0,3</data></layer>
</map>`)},
		"maps/sets/set.tsx": {Data: []byte(tilesetSrc)},
	}
}

func TestLoadWorldWithoutImages(t *testing.T) {
	r := Open(worldFS(noImageTSX))
	defer r.Close()

	m, sets, err := r.LoadWorld("maps/one.tmx", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Width != 2 || sets.Len() != 1 || sets.Tilesets()[0].Name != "plain" {
		t.Fatalf("unexpected world %+v / %d tilesets", m, sets.Len())
	}
}

func TestLoadWorldMissingImage(t *testing.T) {
	r := Open(worldFS(missingImageTSX))
	defer r.Close()

	m, sets, err := r.LoadWorld("maps/one.tmx", false)
	if err == nil || !strings.Contains(err.Error(), "maps/sets/lost.png") {
		t.Fatalf("expected a missing image error naming the resolved path, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if m.Empty() || sets.Tilesets()[0].Image != nil {
		t.Fatalf("expected a usable world without the image")
	}
}

func TestLoadWorldMissingMap(t *testing.T) {
	r := Open(fstest.MapFS{})
	defer r.Close()

	m, _, err := r.LoadWorld("maps/none.tmx", false)
	if !errors.Is(err, tilemap.ErrLoad) || !m.Empty() {
		t.Fatalf("expected an empty map with a load error, got %v", err)
	}
}

func TestBakedLayers(t *testing.T) {
	m, _ := tilemap.LoadMap(worldFS(noImageTSX), "maps/one.tmx")
	names := BakedLayers(m)
	if len(names) != 1 || names[0] != "ground" {
		t.Fatalf("expected only ground to bake, got %v", names)
	}
}

func TestClosedRegistry(t *testing.T) {
	r := Open(worldFS(noImageTSX))
	if err := r.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Image("maps/sets/set.png"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, _, err := r.LoadWorld("maps/one.tmx", false); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := r.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected a second Close to fail")
	}
}

func TestEmbeddedDemo(t *testing.T) {
	m, sets, err := tilemap.LoadWorld(Embedded(), "maps/demo.tmx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Width != 20 || sets.TileCount() != 8 {
		t.Fatalf("unexpected demo map %dx%d with %d tiles", m.Width, m.Height, sets.TileCount())
	}
	if sets.Tilesets()[0].ImageSource != "maps/tilesets/terrain.png" {
		t.Fatalf("unexpected image path %q", sets.Tilesets()[0].ImageSource)
	}
}

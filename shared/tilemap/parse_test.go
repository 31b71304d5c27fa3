package tilemap

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"
	"testing/fstest"
)

const terrainTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" name="terrain" tilewidth="16" tileheight="16" tilecount="8" columns="4">
 <properties>
  <property name="biome" value="grass"/>
 </properties>
 <image source="terrain.png" width="64" height="32"/>
 <tile id="2">
  <properties>
   <property name="slope" value="45_up_right"/>
  </properties>
  <objectgroup draworder="index">
   <object id="1" x="0" y="8" width="16" height="8"/>
   <object id="2" name="spawn" x="4" y="4" width="1" height="1"/>
  </objectgroup>
 </tile>
 <tile id="5">
  <animation>
   <frame tileid="5" duration="1000"/>
   <frame tileid="6" duration="500"/>
  </animation>
 </tile>
</tileset>
`

const farmTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16">
 <properties>
  <property name="music" value="farm.ogg"/>
  <property name="gravity" type="float" value="9.8"/>
 </properties>
 <tileset firstgid="1" source="terrain.tsx"/>
 <layer id="1" name="ground" width="4" height="3">
  <properties>
   <property name="solid" type="bool" value="true"/>
  </properties>
  <data encoding="csv">
1,2,3,4,
5,6,0,0,
0,0,0,3
</data>
 </layer>
 <objectgroup id="2" name="entities">
  <object id="1" name="crop" x="16" y="16" width="16" height="16"/>
  <object id="2" name="crop" x="32" y="16" width="16" height="16">
   <properties>
    <property name="stage" type="int" value="2"/>
   </properties>
  </object>
  <object id="3" name="sign" x="0" y="0" width="64" height="16">
   <properties>
    <property name="author" value="mayor"/>
   </properties>
   <text fontfamily="Courier" pixelsize="12" wrap="1" bold="1" halign="center" color="#ff112233">Hello farm</text>
  </object>
 </objectgroup>
 <group id="4" name="overlay">
  <layer id="5" name="decor" width="4" height="3" opacity="0.5" visible="0">
   <data>
    <tile gid="7"/><tile/><tile/><tile/>
    <tile/><tile/><tile/><tile/>
    <tile/><tile/><tile/><tile gid="8"/>
   </data>
  </layer>
 </group>
</map>
`

func encodeGIDs(t *testing.T, gids []uint32, compression string) string {
	t.Helper()
	raw := make([]byte, 4*len(gids))
	for i, g := range gids {
		binary.LittleEndian.PutUint32(raw[i*4:], g)
	}
	var buf bytes.Buffer
	switch compression {
	case "zlib":
		w := zlib.NewWriter(&buf)
		w.Write(raw)
		w.Close()
	case "gzip":
		w := gzip.NewWriter(&buf)
		w.Write(raw)
		w.Close()
	default:
		buf.Write(raw)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func gidsOf(tiles []Tile) []int {
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = t.GID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDecodeCSV(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []int
	}{
		{"plain", "0,5,12,0", []int{0, 5, 12, 0}},
		{"newlines", "\n1,2,\n3,4\n", []int{1, 2, 3, 4}},
		{"flipped", "2147483649,3", []int{1, 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tiles, err := DecodeCSV(c.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := gidsOf(tiles); !equalInts(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}

	tiles, _ := DecodeCSV("2147483649")
	if tiles[0].Flip != FlipHorizontal {
		t.Fatalf("expected horizontal flip flag, got %v", tiles[0].Flip)
	}
	if _, err := DecodeCSV("1,x,3"); err == nil {
		t.Fatalf("expected error for malformed cell")
	}
}

func TestDecodeBase64(t *testing.T) {
	gids := []uint32{1, 0, 0x40000000 | 5, 12}
	for _, compression := range []string{"", "zlib", "gzip"} {
		t.Run("compression_"+compression, func(t *testing.T) {
			tiles, err := DecodeBase64(encodeGIDs(t, gids, compression), compression)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := gidsOf(tiles); !equalInts(got, []int{1, 0, 5, 12}) {
				t.Fatalf("unexpected gids %v", got)
			}
			if tiles[2].Flip != FlipVertical {
				t.Fatalf("expected vertical flip on cell 2")
			}
		})
	}
	if _, err := DecodeBase64(encodeGIDs(t, gids, ""), "zstd"); err == nil {
		t.Fatalf("expected error for unsupported compression")
	}
}

func TestLoadTileset(t *testing.T) {
	fsys := fstest.MapFS{"terrain.tsx": {Data: []byte(terrainTSX)}}
	ts, err := LoadTileset(fsys, "terrain.tsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Name != "terrain" || ts.Columns != 4 || ts.Rows != 2 || ts.TileCount != 8 {
		t.Fatalf("unexpected tileset header %+v", ts)
	}
	if ts.ImageSource != "terrain.png" || ts.ImageWidth != 64 || ts.ImageHeight != 32 {
		t.Fatalf("unexpected image %q %dx%d", ts.ImageSource, ts.ImageWidth, ts.ImageHeight)
	}
	if biome, _ := ts.Properties.GetString("biome"); biome != "grass" {
		t.Fatalf("expected biome grass, got %q", biome)
	}

	// tile id 2 is gid 3 when the tileset starts at 1
	boxes := ts.GetHitboxes(3)
	if len(boxes) != 1 || boxes[0] != (Rect{X: 0, Y: 8, Width: 16, Height: 8}) {
		t.Fatalf("expected one unnamed hitbox, got %+v", boxes)
	}
	if slope, _ := ts.GetTileProperties(3).GetString("slope"); slope != "45_up_right" {
		t.Fatalf("expected slope property, got %q", slope)
	}

	frames := ts.GetAnimation(6)
	want := []Frame{{GID: 6, Duration: 1000}, {GID: 7, Duration: 500}}
	if len(frames) != len(want) || frames[0] != want[0] || frames[1] != want[1] {
		t.Fatalf("expected frames %+v, got %+v", want, frames)
	}
}

func TestLoadTilesetFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.tsx": {Data: []byte(`<tileset name="x"`)},
		"wrong.tsx":  {Data: []byte(`<map width="1"/>`)},
	}

	cases := []struct {
		path string
		want error
	}{
		{"missing.tsx", ErrLoad},
		{"broken.tsx", ErrLoad},
		{"wrong.tsx", ErrMissingElement},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			ts, err := LoadTileset(fsys, c.path)
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if ts == nil || ts.TileCount != 0 {
				t.Fatalf("expected an empty tileset, got %+v", ts)
			}
		})
	}
}

func TestLoadMap(t *testing.T) {
	fsys := fstest.MapFS{"maps/farm.tmx": {Data: []byte(farmTMX)}}
	m, err := LoadMap(fsys, "maps/farm.tmx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Width != 4 || m.Height != 3 || m.TileWidth != 16 || m.TileHeight != 16 {
		t.Fatalf("unexpected map header %dx%d @ %dx%d", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	if m.Bounds != (Rect{Width: 64, Height: 48}) {
		t.Fatalf("unexpected bounds %+v", m.Bounds)
	}
	if m.Orientation != Orthogonal || m.RenderOrder != RightDown {
		t.Fatalf("unexpected orientation %v / render order %v", m.Orientation, m.RenderOrder)
	}
	if g, err := m.Properties.GetFloat("gravity"); err != nil || g != 9.8 {
		t.Fatalf("expected gravity 9.8, got %v err=%v", g, err)
	}
	if len(m.TilesetRefs) != 1 || m.TilesetRefs[0].Source != "terrain.tsx" || m.TilesetRefs[0].FirstGID != 1 {
		t.Fatalf("unexpected tileset refs %+v", m.TilesetRefs)
	}

	if strings.Join(m.LayerNames, ",") != "ground,decor" {
		t.Fatalf("expected tile layers ground,decor; got %v", m.LayerNames)
	}
	if strings.Join(m.ObjectLayerNames, ",") != "entities" {
		t.Fatalf("expected object layer entities, got %v", m.ObjectLayerNames)
	}

	ground, ok := m.Layer("ground")
	if !ok {
		t.Fatalf("expected ground layer")
	}
	if got := gidsOf(ground.Tiles); !equalInts(got, []int{1, 2, 3, 4, 5, 6, 0, 0, 0, 0, 0, 3}) {
		t.Fatalf("unexpected ground tiles %v", got)
	}
	if solid, _ := ground.Properties.GetBool("solid"); !solid {
		t.Fatalf("expected solid property on the layer")
	}
	if _, ok := m.Properties.Get("solid"); ok {
		t.Fatalf("layer properties must not leak onto the map")
	}

	decor, _ := m.Layer("decor")
	if decor.Visible || decor.Opacity != 0.5 {
		t.Fatalf("expected hidden decor at half opacity, got visible=%v opacity=%v", decor.Visible, decor.Opacity)
	}
	if decor.Tiles[0].GID != 7 || decor.Tiles[11].GID != 8 || len(decor.Tiles) != 12 {
		t.Fatalf("unexpected decor tiles %v", gidsOf(decor.Tiles))
	}
	if l, ok := m.LayerByID(5); !ok || l != decor {
		t.Fatalf("expected decor by id 5")
	}
}

func TestLoadMapObjects(t *testing.T) {
	m, err := ParseMap(strings.NewReader(farmTMX))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ol, ok := m.ObjectLayer("entities")
	if !ok {
		t.Fatalf("expected entities layer")
	}

	crops := ol.All("crop")
	if len(crops) != 2 {
		t.Fatalf("expected 2 crops, got %d", len(crops))
	}
	if crops[0].Rect != (Rect{X: 16, Y: 16, Width: 16, Height: 16}) || crops[0].IsText() {
		t.Fatalf("unexpected first crop %+v", crops[0])
	}
	if stage, _ := crops[1].Properties.GetInt("stage"); stage != 2 {
		t.Fatalf("expected stage 2, got %d", stage)
	}

	sign, ok := ol.First("sign")
	if !ok || !sign.IsText() {
		t.Fatalf("expected a text sign, got %+v", sign)
	}
	want := TextAttrs{
		Text:       "Hello farm",
		FontFamily: "Courier",
		FontSize:   12,
		Color:      color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff},
		Wrap:       true,
		Bold:       true,
		Kerning:    true,
		HAlign:     "center",
		VAlign:     "top",
	}
	if *sign.Text != want {
		t.Fatalf("expected %+v, got %+v", want, *sign.Text)
	}
	if sign.ID != 3 || sign.Rect.Width != 64 {
		t.Fatalf("text object lost its base fields: %+v", sign)
	}
	if author, _ := sign.Properties.GetString("author"); author != "mayor" {
		t.Fatalf("expected author property, got %q", author)
	}
}

func TestLoadMapEncodings(t *testing.T) {
	gids := []uint32{1, 2, 0, 4}
	cases := []struct {
		name string
		data string
		want []int
	}{
		{"zlib", fmt.Sprintf(`<data encoding="base64" compression="zlib">%s</data>`, encodeGIDs(t, gids, "zlib")), []int{1, 2, 0, 4}},
		{"gzip", fmt.Sprintf(`<data encoding="base64" compression="gzip">%s</data>`, encodeGIDs(t, gids, "gzip")), []int{1, 2, 0, 4}},
		{"short_csv_padded", `<data encoding="csv">1,2,3</data>`, []int{1, 2, 3, 0}},
		{"long_csv_truncated", `<data encoding="csv">1,2,3,4,5,6</data>`, []int{1, 2, 3, 4}},
		{"unsupported", `<data encoding="rle">1,2,3,4</data>`, []int{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := fmt.Sprintf(`<map orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="8" tileheight="8">
<layer id="1" name="l" width="2" height="2">%s</layer></map>`, c.data)
			m, err := ParseMap(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			l, _ := m.Layer("l")
			if got := gidsOf(l.Tiles); !equalInts(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestLoadMapFailures(t *testing.T) {
	m, err := LoadMap(fstest.MapFS{}, "nope.tmx")
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected load error, got %v", err)
	}
	if m == nil || m.Width != 0 || len(m.Layers) != 0 || !m.Empty() {
		t.Fatalf("expected an empty map, got %+v", m)
	}

	m, err = ParseMap(strings.NewReader(terrainTSX))
	if !errors.Is(err, ErrMissingElement) {
		t.Fatalf("expected missing element error, got %v", err)
	}
	if !m.Empty() {
		t.Fatalf("expected an empty map")
	}
}

func TestLoadMapBadLayerSize(t *testing.T) {
	cases := []struct {
		name          string
		width, height string
		wantWidth     int
	}{
		{"negative_width", "-1", "1", 0},
		{"negative_height", "2", "-3", 2},
		{"huge", "100000", "100000", 100000},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := `<map orientation="orthogonal" width="2" height="1" tilewidth="8" tileheight="8">
 <layer id="1" name="ground" width="` + c.width + `" height="` + c.height + `">
  <data encoding="csv">1,2</data>
 </layer>
</map>`
			m, err := ParseMap(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			l, ok := m.Layer("ground")
			if !ok {
				t.Fatalf("expected the layer to be kept")
			}
			if l.Width != c.wantWidth || l.Height < 0 {
				t.Fatalf("expected width %d and a non-negative height, got %dx%d", c.wantWidth, l.Width, l.Height)
			}
			if len(l.Tiles) != 0 {
				t.Fatalf("expected no tiles, got %d", len(l.Tiles))
			}
			if _, ok := l.At(0, 0); ok {
				t.Fatalf("expected no cell at 0,0")
			}
		})
	}
}

func TestParseMapAttributes(t *testing.T) {
	cases := []struct {
		attrs       string
		orientation Orientation
		order       RenderOrder
	}{
		{`orientation="isometric" renderorder="left-up"`, Isometric, LeftUp},
		{`orientation="orthogonal" renderorder="right-up"`, Orthogonal, RightUp},
		{`orientation="hexagonal" renderorder="diagonal"`, Orthogonal, LeftDown},
		{``, Orthogonal, LeftDown},
	}
	for _, c := range cases {
		t.Run(c.attrs, func(t *testing.T) {
			m, err := ParseMap(strings.NewReader(`<map ` + c.attrs + ` width="1" height="1" tilewidth="8" tileheight="8"/>`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Orientation != c.orientation || m.RenderOrder != c.order {
				t.Fatalf("expected %v/%v, got %v/%v", c.orientation, c.order, m.Orientation, m.RenderOrder)
			}
		})
	}
}

func TestWithObjectParser(t *testing.T) {
	parser := func(el *Element) Object {
		return Object{Name: strings.ToUpper(el.Attr("name", "")), Rect: Rect{X: el.FloatAttr("x", 0) * 2}}
	}
	m, err := ParseMap(strings.NewReader(farmTMX), WithObjectParser(parser))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ol, _ := m.ObjectLayer("entities")
	crops := ol.All("crop")
	if len(crops) != 2 || crops[0].Name != "CROP" || crops[1].Rect.X != 64 {
		t.Fatalf("expected custom parsed crops bucketed by name, got %+v", crops)
	}
}

func TestInlineTileset(t *testing.T) {
	doc := `<map orientation="orthogonal" renderorder="right-down" width="1" height="1" tilewidth="8" tileheight="8">
 <tileset firstgid="1" name="inline" tilewidth="8" tileheight="8" tilecount="4" columns="2">
  <image source="inline.png" width="16" height="16"/>
 </tileset>
</map>`
	m, err := ParseMap(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.TilesetRefs) != 1 || m.TilesetRefs[0].Inline == nil {
		t.Fatalf("expected an inline tileset ref, got %+v", m.TilesetRefs)
	}
	if in := m.TilesetRefs[0].Inline; in.Name != "inline" || in.Rows != 2 || in.ImageSource != "inline.png" {
		t.Fatalf("unexpected inline tileset %+v", in)
	}
}

func TestClear(t *testing.T) {
	m, _ := ParseMap(strings.NewReader(farmTMX))
	m.Clear()

	for _, name := range m.LayerNames {
		if l := m.Layers[name]; len(l.Tiles) != 0 {
			t.Fatalf("layer %s still has %d tiles", name, len(l.Tiles))
		}
	}
	ol, _ := m.ObjectLayer("entities")
	if len(ol.Objects) != 0 {
		t.Fatalf("expected no objects, got %d buckets", len(ol.Objects))
	}
	if len(m.LayerNames) != 2 || m.Width != 4 {
		t.Fatalf("clear must keep layer metadata")
	}
}

func TestObjectNames(t *testing.T) {
	m, err := ParseMap(strings.NewReader(farmTMX))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := m.ObjectNames()
	if len(got) != 2 || got[0] != "crop" || got[1] != "sign" {
		t.Fatalf("expected [crop sign], got %v", got)
	}
}

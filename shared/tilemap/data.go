package tilemap

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"unicode"
)

func decodeLayerData(l *Layer, data *Element) {
	if data == nil {
		log.Printf("Warning: layer %q has no data element", l.Name)
		return
	}

	var (
		tiles []Tile
		err   error
	)
	switch enc := data.Attr("encoding", ""); enc {
	case "csv":
		tiles, err = DecodeCSV(data.Text())
	case "base64":
		tiles, err = DecodeBase64(data.Text(), data.Attr("compression", ""))
	case "":
		for _, t := range data.All("tile") {
			tiles = append(tiles, tileFromRaw(uint32(t.IntAttr("gid", 0))))
		}
	default:
		log.Printf("Warning: layer %q: unsupported data encoding %q", l.Name, enc)
		return
	}
	if err != nil {
		log.Printf("Warning: layer %q: %v", l.Name, err)
		return
	}

	want, ok := gridCells(l.Width, l.Height)
	if !ok {
		if len(tiles) > 0 {
			log.Printf("Warning: layer %q: unusable size %dx%d, dropping %d cells", l.Name, l.Width, l.Height, len(tiles))
		}
		return
	}
	if len(tiles) != want {
		log.Printf("Warning: layer %q has %d cells, expected %dx%d", l.Name, len(tiles), l.Width, l.Height)
		tiles = fitTiles(tiles, want)
	}
	l.Tiles = tiles
}

// MaxLayerCells caps the cells one layer may hold. Larger layers are left
// empty instead of being allocated.
const MaxLayerCells = 1 << 22

// gridCells returns w*h, or false when the grid is empty or too large.
func gridCells(w, h int) (int, bool) {
	if w <= 0 || h <= 0 || w > MaxLayerCells/h {
		return 0, false
	}
	return w * h, true
}

func fitTiles(tiles []Tile, n int) []Tile {
	if len(tiles) >= n {
		return tiles[:n]
	}
	return append(tiles, make([]Tile, n-len(tiles))...)
}

// DecodeCSV decodes comma/newline separated gids into row-major tiles.
func DecodeCSV(s string) ([]Tile, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	tiles := make([]Tile, 0, len(fields))
	for i, f := range fields {
		raw, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return tiles, fmt.Errorf("csv cell %d: %w", i, err)
		}
		tiles = append(tiles, tileFromRaw(uint32(raw)))
	}
	return tiles, nil
}

// DecodeBase64 decodes base64 little-endian uint32 gids, optionally zlib or
// gzip compressed.
func DecodeBase64(s, compression string) ([]Tile, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}

	var r io.Reader = bytes.NewReader(raw)
	switch compression {
	case "":
	case "zlib":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer zr.Close()
		r = zr
	case "gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", compression, err)
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of 4", len(b))
	}
	tiles := make([]Tile, len(b)/4)
	for i := range tiles {
		tiles[i] = tileFromRaw(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return tiles, nil
}

package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"

	_ "image/png"

	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var (
	//go:embed all:maps
	embedded embed.FS
)

// ErrClosed is returned by a Registry after Close.
var ErrClosed = errors.New("assets: registry closed")

// Embedded returns the maps bundled with the binary. Paths start with "maps/".
func Embedded() fs.FS {
	return embedded
}

// Registry loads and caches images for the lifetime of the viewer. All paths
// are relative to the registry's file system.
type Registry struct {
	fsys   fs.FS
	cache  map[string]*ebiten.Image
	closed bool
}

// Open creates a registry reading from fsys.
func Open(fsys fs.FS) *Registry {
	return &Registry{
		fsys:  fsys,
		cache: make(map[string]*ebiten.Image),
	}
}

func (r *Registry) FS() fs.FS {
	return r.fsys
}

// Image returns the decoded image at path, loading it on first use.
func (r *Registry) Image(path string) (*ebiten.Image, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if img, ok := r.cache[path]; ok {
		return img, nil
	}

	imgBytes, err := fs.ReadFile(r.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	r.cache[path] = img
	return img, nil
}

// Forget drops every cached image so the next load reads from disk again.
func (r *Registry) Forget() {
	for path, img := range r.cache {
		img.Deallocate()
		delete(r.cache, path)
	}
}

// Close releases all images. The registry cannot be used afterwards.
func (r *Registry) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.Forget()
	r.closed = true
	return nil
}

// LoadWorld loads a map with all of its tilesets and attaches their images.
// When useTiled is set, or the native parser cannot read the map, the map is
// imported through go-tiled instead. Missing images are reported in the
// returned error but leave the world usable; tiles of that tileset are
// simply not drawn.
func (r *Registry) LoadWorld(mapPath string, useTiled bool) (*tilemap.Tilemap, *tilemap.TilesetCollection, error) {
	if r.closed {
		return tilemap.NewTilemap(), tilemap.NewTilesetCollection(), ErrClosed
	}

	var (
		m    *tilemap.Tilemap
		sets *tilemap.TilesetCollection
		err  error
	)
	if !useTiled {
		m, sets, err = tilemap.LoadWorld(r.fsys, mapPath)
		if err != nil && m.Empty() {
			log.Printf("Warning: native load of %s failed, trying go-tiled: %v", mapPath, err)
			useTiled = true
		}
	}
	if useTiled {
		m, sets, err = tilemap.ImportTiled(r.fsys, mapPath)
		if err != nil {
			return m, sets, err
		}
	}

	errs := []error{err}
	for _, ts := range sets.Tilesets() {
		if ts.ImageSource == "" {
			continue
		}
		img, imgErr := r.Image(ts.ImageSource)
		if imgErr != nil {
			log.Printf("Warning: tileset %q: %v", ts.Name, imgErr)
			errs = append(errs, imgErr)
			continue
		}
		ts.Image = img
	}
	return m, sets, errors.Join(errs...)
}

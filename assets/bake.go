package assets

import (
	"fmt"
	"log"

	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lafriks/go-tiled"
	"github.com/lafriks/go-tiled/render"
)

// BakeProperty marks a tile layer whose tiles never change. Such layers are
// rendered once into a single image instead of tile by tile every frame.
const BakeProperty = "bake"

// BakedLayers returns the names of the layers of m flagged for baking.
func BakedLayers(m *tilemap.Tilemap) []string {
	var names []string
	for _, name := range m.LayerNames {
		if bake, err := m.Layers[name].Properties.GetBool(BakeProperty); err == nil && bake {
			names = append(names, name)
		}
	}
	return names
}

// BakeLayers pre-renders the layers of m flagged with the bake property using
// the go-tiled renderer. The result is keyed by layer name and images are at
// map pixel size.
func (r *Registry) BakeLayers(m *tilemap.Tilemap, mapPath string) (map[string]*ebiten.Image, error) {
	names := BakedLayers(m)
	if len(names) == 0 {
		return nil, nil
	}
	if r.closed {
		return nil, ErrClosed
	}

	levelMap, err := tiled.LoadFile(mapPath, tiled.WithFileSystem(r.fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s for baking: %w", mapPath, err)
	}
	renderer, err := render.NewRendererWithFileSystem(levelMap, r.fsys)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	baked := make(map[string]*ebiten.Image, len(names))
	for i, layer := range levelMap.Layers {
		if !wanted[layer.Name] {
			continue
		}
		if err := renderer.RenderLayer(i); err != nil {
			log.Printf("Warning: Failed to bake layer %s: %v", layer.Name, err)
			continue
		}
		baked[layer.Name] = ebiten.NewImageFromImage(renderer.Result)
		renderer.Clear()
	}
	return baked, nil
}

package factory

import (
	"errors"
	"log"

	"github.com/automoto/tmxview/archetypes"
	"github.com/automoto/tmxview/assets"
	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/shared/leveldata"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/automoto/tmxview/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrEmptyMap is returned when a map file yields nothing to show.
var ErrEmptyMap = errors.New("map has no layers")

// LoadMap reads the map at path together with its tilesets, baked layers
// and collision data. Errors that still leave a usable map are logged.
func LoadMap(reg *assets.Registry, path string) (*components.MapData, error) {
	m, sets, err := reg.LoadWorld(path, cfg.Maps.UseTiledImporter)
	if m == nil || m.Empty() {
		if err == nil {
			err = ErrEmptyMap
		}
		return nil, err
	}
	if err != nil {
		log.Printf("Warning: %s loaded with errors: %v", path, err)
	}

	md := &components.MapData{
		Path:     path,
		Map:      m,
		Tilesets: sets,
		Hidden:   make(map[string]bool),
	}

	if m.Orientation == tilemap.Orthogonal {
		baked, bakeErr := reg.BakeLayers(m, path)
		if bakeErr != nil {
			log.Printf("Warning: Could not bake layers of %s: %v", path, bakeErr)
		}
		md.Baked = baked
	}

	md.Collision = leveldata.Extract(m, sets, leveldata.Layers{
		Solid: cfg.Collision.SolidLayer,
		Spawn: cfg.Collision.SpawnLayer,
	})
	if len(md.Collision.SpawnPoints) > 0 {
		md.SpawnMarkers = LoadSpawnMarkers(reg)
	}
	return md, nil
}

// LoadSpawnMarkers reads the configured spawn marker sheet through reg.
// It returns nil when none is configured or it cannot be read.
func LoadSpawnMarkers(reg *assets.Registry) *tilemap.TilesetCollection {
	if cfg.Debug.SpawnImage == "" {
		return nil
	}
	img, err := reg.Image(cfg.Debug.SpawnImage)
	if err != nil {
		log.Printf("Warning: Could not load spawn markers: %v", err)
		return nil
	}
	return SpawnMarkers(img, cfg.Debug.SpawnTileSize)
}

// SpawnMarkers slices img into square tiles of size pixels.
func SpawnMarkers(img tilemap.Image, size int) *tilemap.TilesetCollection {
	if img == nil || size <= 0 {
		return nil
	}
	markers := tilemap.NewTilesetCollection()
	markers.AddImageTileset(img, size, size)
	return markers
}

// CreateMap spawns the map entity and the collision world of md.
func CreateMap(ecs *ecs.ECS, md *components.MapData) *donburi.Entry {
	entry := archetypes.Map.Spawn(ecs)
	components.Map.Set(entry, md)
	PopulateCollision(ecs, md)
	return entry
}

// ReplaceMap swaps the open map for next, keeping the map list and
// releasing the baked images of the old one.
func ReplaceMap(ecs *ecs.ECS, next *components.MapData) {
	entry, ok := components.Map.First(ecs.World)
	if !ok {
		CreateMap(ecs, next)
		return
	}
	old := components.Map.Get(entry)
	for _, img := range old.Baked {
		img.Deallocate()
	}
	next.Names = old.Names
	components.Map.Set(entry, next)

	ClearCollision(ecs)
	PopulateCollision(ecs, next)
}

// PopulateCollision builds the resolv space, walls and spawn markers of md.
func PopulateCollision(ecs *ecs.ECS, md *components.MapData) {
	if md.Collision == nil || md.Map == nil {
		return
	}
	cell := cfg.Collision.CellSize
	if cell <= 0 {
		cell = md.Map.TileWidth
	}
	CreateSpace(ecs, md.Map.Bounds, cell)

	for _, r := range md.Collision.SolidRects {
		CreateSolid(ecs, r)
	}
	for _, sp := range md.Collision.SpawnPoints {
		CreateSpawn(ecs, sp)
	}
}

// ClearCollision removes the space, walls and spawn markers.
func ClearCollision(ecs *ecs.ECS) {
	var doomed []donburi.Entity
	collect := func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	}
	tags.Wall.Each(ecs.World, collect)
	tags.Spawn.Each(ecs.World, collect)
	components.Space.Each(ecs.World, collect)

	for _, e := range doomed {
		ecs.World.Remove(e)
	}
}

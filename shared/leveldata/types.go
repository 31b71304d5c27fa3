// Package leveldata extracts collision geometry and spawn points from a
// loaded tilemap. It has no dependencies on ebitengine, donburi, or resolv.
package leveldata

// CollisionData holds all collision-relevant data of one map.
type CollisionData struct {
	SolidRects  []SolidRect
	SpawnPoints []SpawnPoint
	MapWidth    int
	MapHeight   int
}

// SolidRect is one collision rectangle in world pixels.
type SolidRect struct {
	X, Y, W, H float64
	SlopeType  string // "", "45_up_right", "45_up_left"
	GID        int
}

// SpawnPoint is a marker object from the spawn layer.
type SpawnPoint struct {
	X, Y  float64
	Index int
	Name  string
}

// Layers names the map layers collision data is read from.
type Layers struct {
	Solid string // tile layer whose non-empty cells collide
	Spawn string // object layer holding spawn markers
}

// DefaultLayers are used when a caller passes a zero Layers.
var DefaultLayers = Layers{Solid: "collision", Spawn: "spawns"}

func (l Layers) orDefault() Layers {
	if l.Solid == "" {
		l.Solid = DefaultLayers.Solid
	}
	if l.Spawn == "" {
		l.Spawn = DefaultLayers.Spawn
	}
	return l
}

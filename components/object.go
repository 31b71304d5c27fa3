package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to its collision object.
type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space is the collision space built from the open map's solid layer.
var Space = donburi.NewComponentType[resolv.Space]()

// SpawnData marks a spawn point from the map's spawn layer.
type SpawnData struct {
	X, Y  float64
	Index int
	Name  string
}

var Spawn = donburi.NewComponentType[SpawnData]()

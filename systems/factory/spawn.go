package factory

import (
	"github.com/automoto/tmxview/archetypes"
	"github.com/automoto/tmxview/components"
	"github.com/automoto/tmxview/shared/leveldata"
	"github.com/automoto/tmxview/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpawn adds a spawn marker. Its collision object is a point so it
// never blocks anything, but it can still be found with a spawn tag check.
func CreateSpawn(ecs *ecs.ECS, sp leveldata.SpawnPoint) *donburi.Entry {
	spawn := archetypes.Spawn.Spawn(ecs)

	components.Spawn.SetValue(spawn, components.SpawnData{
		X:     sp.X,
		Y:     sp.Y,
		Index: sp.Index,
		Name:  sp.Name,
	})

	attach(ecs, spawn, resolv.NewObject(sp.X, sp.Y, 1, 1, tags.ResolvSpawn))
	return spawn
}

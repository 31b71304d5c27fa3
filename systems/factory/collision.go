package factory

import (
	"github.com/automoto/tmxview/archetypes"
	"github.com/automoto/tmxview/components"
	"github.com/automoto/tmxview/shared/leveldata"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/automoto/tmxview/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace adds the resolv space covering bounds, split into square cells.
func CreateSpace(ecs *ecs.ECS, bounds tilemap.Rect, cell int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.Set(space, resolv.NewSpace(int(bounds.Width), int(bounds.Height), cell, cell))
	return space
}

// CreateSolid adds a wall for one solid rectangle of the collision layer.
// Slopes are tagged as ramps plus their slope type; the rectangle bounds the
// ramp and the tag tells which diagonal is the surface.
func CreateSolid(ecs *ecs.ECS, r leveldata.SolidRect) *donburi.Entry {
	objTags := []string{tags.ResolvSolid}
	if r.SlopeType != "" {
		objTags = []string{tags.ResolvRamp, r.SlopeType}
	}

	wall := archetypes.Wall.Spawn(ecs)
	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	attach(ecs, wall, obj)
	return wall
}

// attach links obj and entry both ways and adds obj to the space, if any.
func attach(ecs *ecs.ECS, entry *donburi.Entry, obj *resolv.Object) {
	obj.Data = entry // Link for O(1) lookup
	components.Object.SetValue(entry, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}

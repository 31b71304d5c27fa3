package factory

import (
	"github.com/automoto/tmxview/archetypes"
	"github.com/automoto/tmxview/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateCamera(ecs *ecs.ECS) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{
		Zoom:       1,
		TargetZoom: 1,
	})
	return camera
}

package systems

import (
	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/yohamta/donburi/ecs"
)

func currentMapData(e *ecs.ECS) *components.MapData {
	entry, ok := components.Map.First(e.World)
	if !ok {
		return nil
	}
	return components.Map.Get(entry)
}

func currentMap(e *ecs.ECS) *tilemap.Tilemap {
	if md := currentMapData(e); md != nil {
		return md.Map
	}
	return nil
}

// RequestMap asks for Names[index] to be opened. Indexes wrap around so
// next and previous cycle through the list.
func RequestMap(md *components.MapData, index int) {
	n := len(md.Names)
	if n == 0 {
		return
	}
	md.RequestIndex = ((index % n) + n) % n
	md.Requested = true
}

// StepMap requests the map delta positions away from the open one.
func StepMap(md *components.MapData, delta int) {
	RequestMap(md, md.Index+delta)
}

// UpdateMapSelection turns next, previous and reload presses into requests.
func UpdateMapSelection(e *ecs.ECS) {
	md := currentMapData(e)
	if md == nil {
		return
	}
	input := getOrCreateInput(e)

	switch {
	case GetAction(input, cfg.ActionNextMap).JustPressed:
		StepMap(md, 1)
	case GetAction(input, cfg.ActionPrevMap).JustPressed:
		StepMap(md, -1)
	case GetAction(input, cfg.ActionReload).JustPressed:
		RequestMap(md, md.Index)
	}
}

package systems

import (
	"log"

	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdateReload drains file change events and, once writes have settled for
// the configured number of ticks, requests the open map again.
func UpdateReload(e *ecs.ECS) {
	entry, ok := components.Reload.First(e.World)
	if !ok {
		return
	}
	reload := components.Reload.Get(entry)
	if reload.Events == nil {
		return
	}

	drained := false
	for !drained {
		select {
		case path := <-reload.Events:
			log.Printf("Map file changed: %s", path)
			reload.Pending = true
			reload.Countdown = cfg.Reload.DebounceTicks
		default:
			drained = true
		}
	}

	if !Debounce(reload) {
		return
	}
	if md := currentMapData(e); md != nil {
		RequestMap(md, md.Index)
	}
}

// Debounce counts a pending reload down by one tick and reports whether it
// is due now.
func Debounce(reload *components.ReloadData) bool {
	if !reload.Pending {
		return false
	}
	if reload.Countdown > 0 {
		reload.Countdown--
		return false
	}
	reload.Pending = false
	return true
}

package systems

import (
	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateSettings returns the singleton viewer settings, seeded from config.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Settings))
		components.Settings.SetValue(entry, components.SettingsData{
			ShowHitboxes: cfg.Debug.ShowHitboxes,
			ShowGrid:     cfg.Debug.ShowGrid,
			ShowInfo:     cfg.Debug.ShowInfo,
			ShowPanel:    cfg.UI.StartVisible,
			ShowHidden:   cfg.Render.ShowHidden,
		})
	}
	return components.Settings.Get(entry)
}

// UpdateSettings flips the debug overlays and the layer panel on key presses.
func UpdateSettings(e *ecs.ECS) {
	settings := GetOrCreateSettings(e)
	input := getOrCreateInput(e)

	if GetAction(input, cfg.ActionToggleHitboxes).JustPressed {
		settings.ShowHitboxes = !settings.ShowHitboxes
	}
	if GetAction(input, cfg.ActionToggleGrid).JustPressed {
		settings.ShowGrid = !settings.ShowGrid
	}
	if GetAction(input, cfg.ActionTogglePanel).JustPressed {
		settings.ShowPanel = !settings.ShowPanel
	}
}

package components

import "github.com/yohamta/donburi"

// SettingsData holds the viewer toggles changed at runtime.
type SettingsData struct {
	ShowHitboxes bool
	ShowGrid     bool
	ShowInfo     bool
	ShowPanel    bool
	ShowHidden   bool
}

var Settings = donburi.NewComponentType[SettingsData]()

// ReloadData carries file change notifications from the watcher to the
// update loop.
type ReloadData struct {
	Events chan string
	// Countdown is the number of ticks left before a pending reload runs.
	Countdown int
	Pending   bool
}

var Reload = donburi.NewComponentType[ReloadData]()

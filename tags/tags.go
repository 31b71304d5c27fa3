package tags

import "github.com/yohamta/donburi"

var (
	Wall  = donburi.NewTag().SetName("Wall")
	Spawn = donburi.NewTag().SetName("Spawn")
)

// Resolv tags for collision objects
const (
	ResolvSolid = "solid"
	ResolvRamp  = "ramp"
	ResolvSpawn = "spawn"

	// Slope type tags
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)

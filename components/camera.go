package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is the viewer camera. Position is the world pixel shown at
// the top-left of the screen.
type CameraData struct {
	Position math.Vec2
	Zoom     float64

	// TargetZoom is where ZoomTween is heading; equal to Zoom when idle.
	TargetZoom float64
	ZoomTween  *gween.Tween
	// ZoomAnchor is the screen point kept fixed while zooming.
	ZoomAnchor math.Vec2
}

var Camera = donburi.NewComponentType[CameraData]()

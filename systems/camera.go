package systems

import (
	"math"

	"github.com/automoto/tmxview/components"
	"github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"
	"github.com/yohamta/donburi/ecs"
)

const tickSeconds = float32(1.0 / 60.0)

func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	input := getOrCreateInput(e)

	if GetAction(input, config.ActionResetCamera).JustPressed {
		ResetCamera(camera)
	}

	// Pan speed is in screen pixels so it feels the same at every zoom
	z := zoomOf(camera)
	speed := config.Camera.PanSpeed / z
	if GetAction(input, config.ActionPanLeft).Pressed {
		camera.Position.X -= speed
	}
	if GetAction(input, config.ActionPanRight).Pressed {
		camera.Position.X += speed
	}
	if GetAction(input, config.ActionPanUp).Pressed {
		camera.Position.Y -= speed
	}
	if GetAction(input, config.ActionPanDown).Pressed {
		camera.Position.Y += speed
	}
	camera.Position.X += input.PanX * speed
	camera.Position.Y += input.PanY * speed

	if input.Dragging {
		camera.Position.X -= input.DragDX / z
		camera.Position.Y -= input.DragDY / z
	}

	center := dmath.NewVec2(float64(config.C.Width)/2, float64(config.C.Height)/2)
	if GetAction(input, config.ActionZoomIn).JustPressed {
		StartZoom(camera, camera.TargetZoom*config.Camera.ZoomStep, center)
	}
	if GetAction(input, config.ActionZoomOut).JustPressed {
		StartZoom(camera, camera.TargetZoom/config.Camera.ZoomStep, center)
	}
	if input.Wheel != 0 {
		cursor := dmath.NewVec2(float64(input.CursorX), float64(input.CursorY))
		StartZoom(camera, camera.TargetZoom*math.Pow(config.Camera.ZoomStep, input.Wheel), cursor)
	}

	stepZoom(camera, tickSeconds)

	if config.Camera.ClampToMap {
		if m := currentMap(e); m != nil {
			ClampCamera(camera, m.Bounds, float64(config.C.Width), float64(config.C.Height))
		}
	}
}

// ResetCamera puts the camera back at the map origin at zoom 1.
func ResetCamera(camera *components.CameraData) {
	camera.Position = dmath.NewVec2(0, 0)
	camera.Zoom = 1
	camera.TargetZoom = 1
	camera.ZoomTween = nil
}

// StartZoom eases the camera towards target, keeping the screen point anchor
// over the same world position. Targets are clamped to the configured range.
func StartZoom(camera *components.CameraData, target float64, anchor dmath.Vec2) {
	target = math.Max(config.Camera.MinZoom, math.Min(config.Camera.MaxZoom, target))
	if target == camera.TargetZoom && camera.ZoomTween != nil {
		return
	}
	camera.TargetZoom = target
	camera.ZoomAnchor = anchor
	if config.Camera.ZoomDuration <= 0 {
		zoomAbout(camera, target)
		camera.ZoomTween = nil
		return
	}
	camera.ZoomTween = gween.New(float32(zoomOf(camera)), float32(target), config.Camera.ZoomDuration, ease.OutQuad)
}

func stepZoom(camera *components.CameraData, dt float32) {
	if camera.ZoomTween == nil {
		return
	}
	current, finished := camera.ZoomTween.Update(dt)
	if finished {
		zoomAbout(camera, camera.TargetZoom)
		camera.ZoomTween = nil
		return
	}
	zoomAbout(camera, float64(current))
}

// zoomAbout sets the zoom without moving the world point under ZoomAnchor.
func zoomAbout(camera *components.CameraData, zoom float64) {
	old := zoomOf(camera)
	if zoom <= 0 {
		return
	}
	a := camera.ZoomAnchor
	worldX := a.X/old + camera.Position.X
	worldY := a.Y/old + camera.Position.Y
	camera.Zoom = zoom
	camera.Position.X = worldX - a.X/zoom
	camera.Position.Y = worldY - a.Y/zoom
}

// ClampCamera keeps the viewport inside bounds. A map smaller than the
// viewport on an axis is centered on that axis.
func ClampCamera(camera *components.CameraData, bounds tilemap.Rect, screenW, screenH float64) {
	z := zoomOf(camera)
	viewW, viewH := screenW/z, screenH/z
	camera.Position.X = clampAxis(camera.Position.X, bounds.X, bounds.Width, viewW)
	camera.Position.Y = clampAxis(camera.Position.Y, bounds.Y, bounds.Height, viewH)
}

func clampAxis(pos, start, size, view float64) float64 {
	if size <= view {
		return start - (view-size)/2
	}
	return math.Max(start, math.Min(start+size-view, pos))
}

func zoomOf(camera *components.CameraData) float64 {
	if camera.Zoom <= 0 {
		return 1
	}
	return camera.Zoom
}

// CurrentView builds the resolver view for this tick from the camera.
func CurrentView(e *ecs.ECS) tilemap.View {
	v := tilemap.View{
		Width:    config.C.Width,
		Height:   config.C.Height,
		TickRate: tickRate(),
	}
	if entry, ok := components.Camera.First(e.World); ok {
		camera := components.Camera.Get(entry)
		v.Camera = tilemap.Camera{
			Offset: tilemap.Point{X: camera.Position.X, Y: camera.Position.Y},
			Zoom:   zoomOf(camera),
		}
	}
	return v
}

// tickRate is the measured frame rate, or the configured one before ebiten
// has a measurement. Animations advance once per drawn frame.
func tickRate() float64 {
	if fps := ebiten.ActualFPS(); fps > 1 {
		return fps
	}
	return config.Render.DefaultTickRate
}

package systems

import (
	"math"
	"testing"

	"github.com/automoto/tmxview/archetypes"
	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
	"github.com/yohamta/donburi/ecs"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func keepCameraConfig(t *testing.T) {
	t.Helper()
	saved := cfg.Camera
	t.Cleanup(func() { cfg.Camera = saved })
}

func TestZoomAboutKeepsAnchor(t *testing.T) {
	cases := []struct {
		name   string
		anchor dmath.Vec2
		zoom   float64
	}{
		{"origin", dmath.NewVec2(0, 0), 2},
		{"center", dmath.NewVec2(320, 180), 3},
		{"zoom_out", dmath.NewVec2(100, 50), 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			camera := &components.CameraData{Position: dmath.NewVec2(40, 20), Zoom: 1, ZoomAnchor: c.anchor}
			before := worldAt(camera, c.anchor)

			zoomAbout(camera, c.zoom)

			after := worldAt(camera, c.anchor)
			if camera.Zoom != c.zoom {
				t.Fatalf("expected zoom %v, got %v", c.zoom, camera.Zoom)
			}
			if !near(before.X, after.X) || !near(before.Y, after.Y) {
				t.Fatalf("anchor moved from %+v to %+v", before, after)
			}
		})
	}
}

func worldAt(camera *components.CameraData, screen dmath.Vec2) tilemap.Point {
	v := tilemap.View{Camera: tilemap.Camera{
		Offset: tilemap.Point{X: camera.Position.X, Y: camera.Position.Y},
		Zoom:   camera.Zoom,
	}}
	return v.ScreenToWorld(tilemap.Point{X: screen.X, Y: screen.Y})
}

func TestStartZoomClampsAndEases(t *testing.T) {
	keepCameraConfig(t)
	cfg.Camera.MinZoom, cfg.Camera.MaxZoom = 0.5, 4
	cfg.Camera.ZoomDuration = 0.2

	camera := &components.CameraData{Zoom: 1, TargetZoom: 1}
	StartZoom(camera, 100, dmath.NewVec2(0, 0))
	if camera.TargetZoom != 4 {
		t.Fatalf("expected target clamped to 4, got %v", camera.TargetZoom)
	}
	if camera.ZoomTween == nil {
		t.Fatalf("expected a running tween")
	}

	stepZoom(camera, tickSeconds)
	if camera.Zoom <= 1 || camera.Zoom >= 4 {
		t.Fatalf("expected zoom between 1 and 4 after one tick, got %v", camera.Zoom)
	}

	for i := 0; i < 60 && camera.ZoomTween != nil; i++ {
		stepZoom(camera, tickSeconds)
	}
	if camera.ZoomTween != nil || camera.Zoom != 4 {
		t.Fatalf("expected tween finished at 4, got %v (tween %v)", camera.Zoom, camera.ZoomTween != nil)
	}
}

func TestStartZoomInstant(t *testing.T) {
	keepCameraConfig(t)
	cfg.Camera.MinZoom, cfg.Camera.MaxZoom = 0.25, 8
	cfg.Camera.ZoomDuration = 0

	camera := &components.CameraData{Zoom: 1, TargetZoom: 1}
	StartZoom(camera, 0.1, dmath.NewVec2(0, 0))
	if camera.Zoom != 0.25 || camera.ZoomTween != nil {
		t.Fatalf("expected instant zoom to 0.25, got %v", camera.Zoom)
	}
}

func TestClampCamera(t *testing.T) {
	bounds := tilemap.Rect{Width: 320, Height: 160}
	cases := []struct {
		name         string
		pos          dmath.Vec2
		zoom         float64
		screenW      float64
		wantX, wantY float64
	}{
		{"inside", dmath.NewVec2(10, 10), 1, 160, 10, 10},
		{"past_edges", dmath.NewVec2(-10, 500), 1, 160, 0, 70},
		{"map_narrower_than_view", dmath.NewVec2(50, 0), 1, 640, -160, 0},
		{"zoomed_in", dmath.NewVec2(300, 0), 2, 160, 240, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			camera := &components.CameraData{Position: c.pos, Zoom: c.zoom}
			ClampCamera(camera, bounds, c.screenW, 90)
			if !near(camera.Position.X, c.wantX) || !near(camera.Position.Y, c.wantY) {
				t.Fatalf("expected (%v, %v), got (%v, %v)", c.wantX, c.wantY, camera.Position.X, camera.Position.Y)
			}
		})
	}
}

func TestUpdateCameraPans(t *testing.T) {
	keepCameraConfig(t)
	cfg.Camera.PanSpeed = 4
	cfg.Camera.ClampToMap = false

	e := ecs.NewECS(donburi.NewWorld())
	entry := archetypes.Camera.Spawn(e)
	components.Camera.Set(entry, &components.CameraData{Zoom: 2, TargetZoom: 2})

	input := getOrCreateInput(e)
	input.Current[cfg.ActionPanRight] = true
	input.Current[cfg.ActionPanUp] = true

	UpdateCamera(e)

	camera := components.Camera.Get(entry)
	if camera.Position.X != 2 || camera.Position.Y != -2 {
		t.Fatalf("expected pan of 2 world pixels at zoom 2, got %+v", camera.Position)
	}
}

func TestResetCamera(t *testing.T) {
	camera := &components.CameraData{Position: dmath.NewVec2(5, 5), Zoom: 3, TargetZoom: 4}
	ResetCamera(camera)
	if camera.Position.X != 0 || camera.Zoom != 1 || camera.TargetZoom != 1 {
		t.Fatalf("camera not reset: %+v", camera)
	}
}

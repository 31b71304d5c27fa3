package systems

import (
	"testing"

	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/shared/tilemap"
	dmath "github.com/yohamta/donburi/features/math"
)

func TestCaptureAndApplyView(t *testing.T) {
	m := gridMap()
	m.ObjectLayerNames = []string{"spawns"}
	m.ObjectLayers["spawns"] = &tilemap.ObjectLayer{Name: "spawns"}

	md := &components.MapData{Map: m, Hidden: map[string]bool{"decor": true, "ground": false}}
	camera := &components.CameraData{Position: dmath.NewVec2(12, 34), Zoom: 1.5, TargetZoom: 2}

	saved := CaptureView(camera, md)
	if saved.X != 12 || saved.Y != 34 || saved.Zoom != 2 {
		t.Fatalf("unexpected capture %+v", saved)
	}
	if len(saved.Hidden) != 1 || !saved.Hidden["decor"] {
		t.Fatalf("expected only hidden layers saved, got %v", saved.Hidden)
	}

	saved.Hidden["spawns"] = true
	saved.Hidden["gone"] = true

	restored := &components.MapData{Map: m}
	fresh := &components.CameraData{Zoom: 1, TargetZoom: 1}
	ApplyView(fresh, restored, saved)

	if fresh.Position.X != 12 || fresh.Zoom != 2 || fresh.TargetZoom != 2 {
		t.Fatalf("camera not restored: %+v", fresh)
	}
	if !restored.Hidden["decor"] || !restored.Hidden["spawns"] || restored.Hidden["gone"] {
		t.Fatalf("unexpected hidden layers %v", restored.Hidden)
	}
}

func TestApplyViewRejectsBadZoom(t *testing.T) {
	cases := []struct {
		name string
		zoom float64
	}{
		{"zero", 0},
		{"too_small", cfg.Camera.MinZoom / 2},
		{"too_large", cfg.Camera.MaxZoom * 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			camera := &components.CameraData{}
			ApplyView(camera, nil, &SavedView{Zoom: c.zoom})
			if camera.Zoom != 1 {
				t.Fatalf("expected zoom 1, got %v", camera.Zoom)
			}
		})
	}
}

func TestViewWithoutPersistence(t *testing.T) {
	if gdataInitialized {
		t.Skip("persistence initialized by another test")
	}
	v, err := LoadView("demo")
	if v != nil || err != nil {
		t.Fatalf("expected nothing loaded, got %+v, %v", v, err)
	}
	if err := SaveView("demo", &SavedView{Zoom: 1}); err != nil {
		t.Fatalf("expected save to be a no-op, got %v", err)
	}
}

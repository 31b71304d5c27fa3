package systems

import (
	"image"

	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

type subImageKey struct {
	img  *ebiten.Image
	rect image.Rectangle
}

// ScreenSink draws tilemap commands onto an ebiten image. Tile sub-images
// are cached so each source rectangle is sliced once.
type ScreenSink struct {
	Screen *ebiten.Image

	op    ebiten.DrawImageOptions
	cache map[subImageKey]*ebiten.Image
}

// NewScreenSink returns a sink drawing onto screen.
func NewScreenSink(screen *ebiten.Image) *ScreenSink {
	return &ScreenSink{
		Screen: screen,
		cache:  make(map[subImageKey]*ebiten.Image),
	}
}

// Draw implements tilemap.DrawSink.
func (s *ScreenSink) Draw(cmd tilemap.DrawCommand) {
	img, ok := cmd.Image.(*ebiten.Image)
	if !ok || img == nil || s.Screen == nil {
		return
	}
	src := cmd.Source.Abs()
	if src.Width == 0 || src.Height == 0 {
		return
	}
	sub := s.subImage(img, image.Rect(
		int(src.X), int(src.Y),
		int(src.X+src.Width), int(src.Y+src.Height),
	))

	s.op.GeoM.Reset()
	s.op.ColorScale.Reset()

	// Mirror inside the tile's own box before scaling
	if cmd.Source.Width < 0 {
		s.op.GeoM.Scale(-1, 1)
		s.op.GeoM.Translate(src.Width, 0)
	}
	if cmd.Source.Height < 0 {
		s.op.GeoM.Scale(1, -1)
		s.op.GeoM.Translate(0, src.Height)
	}
	s.op.GeoM.Scale(cmd.Dest.Width/src.Width, cmd.Dest.Height/src.Height)
	s.op.GeoM.Translate(cmd.Dest.X, cmd.Dest.Y)
	s.op.ColorScale.ScaleWithColor(cmd.Tint)

	s.Screen.DrawImage(sub, &s.op)
}

func (s *ScreenSink) subImage(img *ebiten.Image, r image.Rectangle) *ebiten.Image {
	key := subImageKey{img: img, rect: r}
	if sub, ok := s.cache[key]; ok {
		return sub
	}
	sub := img.SubImage(r).(*ebiten.Image)
	s.cache[key] = sub
	return sub
}

// Reset drops cached sub-images, e.g. after the tileset images were replaced.
func (s *ScreenSink) Reset() {
	clear(s.cache)
}

var (
	screenSink = NewScreenSink(nil)
	bakedOp    = &ebiten.DrawImageOptions{}
)

// ResetRenderCache forgets sub-images of the previous map.
func ResetRenderCache() {
	screenSink.Reset()
}

// LayerShown reports whether the named tile layer is drawn this frame.
func LayerShown(md *components.MapData, settings *components.SettingsData, name string, visible bool) bool {
	if md.Hidden[name] {
		return false
	}
	return visible || (settings != nil && settings.ShowHidden)
}

// DrawMap renders the tile layers of the open map in document order.
func DrawMap(ecs *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Render.Background)

	md := currentMapData(ecs)
	if md == nil || md.Map == nil {
		return
	}
	settings := GetOrCreateSettings(ecs)
	m := md.Map

	view := CurrentView(ecs)
	area := m.VisibleArea(view)
	opts := tilemap.DrawOptions{Tint: cfg.Render.Tint}
	screenSink.Screen = screen

	for _, name := range m.LayerNames {
		l := m.Layers[name]
		if l == nil || !LayerShown(md, settings, name, l.Visible) {
			continue
		}
		if baked, ok := md.Baked[name]; ok {
			drawBaked(screen, baked, view)
			continue
		}
		m.DrawLayer(name, md.Tilesets, view, area, screenSink, opts)
	}
}

// drawBaked draws a pre-rendered layer image with the camera transform.
// The image already carries the layer opacity.
func drawBaked(screen, baked *ebiten.Image, view tilemap.View) {
	zoom := view.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	bakedOp.GeoM.Reset()
	bakedOp.ColorScale.Reset()
	bakedOp.GeoM.Translate(-view.Camera.Offset.X, -view.Camera.Offset.Y)
	bakedOp.GeoM.Scale(zoom, zoom)
	bakedOp.ColorScale.ScaleWithColor(cfg.Render.Tint)
	screen.DrawImage(baked, bakedOp)
}

package tilemap

import "image/color"

// DrawCommand is one textured quad for the renderer. A negative Source width
// or height asks for horizontal or vertical mirroring.
type DrawCommand struct {
	Image  Image
	Source Rect
	Dest   Rect
	Tint   color.RGBA
}

// DrawSink receives draw commands. The tilemap package never draws itself.
type DrawSink interface {
	Draw(cmd DrawCommand)
}

// DrawOptions shift the output on screen and tint it. A zero Tint means white.
type DrawOptions struct {
	Offset Point
	Tint   color.RGBA
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func (o DrawOptions) tint() color.RGBA {
	if o.Tint == (color.RGBA{}) {
		return white
	}
	return o.Tint
}

func scaleAlpha(c color.RGBA, a float64) color.RGBA {
	if a >= 1 {
		return c
	}
	if a < 0 {
		a = 0
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// Draw draws every visible tile layer in LayerNames order over the visible area.
func (m *Tilemap) Draw(sets *TilesetCollection, v View, sink DrawSink, opts DrawOptions) {
	if sets == nil || sets.Len() == 0 {
		return
	}
	area := m.VisibleArea(v)
	if area.Empty() {
		return
	}
	for _, name := range m.LayerNames {
		l := m.Layers[name]
		if l == nil || !l.Visible {
			continue
		}
		m.drawLayer(l, sets, v, area, sink, opts)
	}
}

// DrawLayer draws one layer, visible or not, over area. Unknown names are ignored.
func (m *Tilemap) DrawLayer(name string, sets *TilesetCollection, v View, area Area, sink DrawSink, opts DrawOptions) {
	l, ok := m.Layers[name]
	if !ok || sets == nil {
		return
	}
	m.drawLayer(l, sets, v, area, sink, opts)
}

func (m *Tilemap) drawLayer(l *Layer, sets *TilesetCollection, v View, area Area, sink DrawSink, opts DrawOptions) {
	if area.Empty() {
		return
	}
	tint := scaleAlpha(opts.tint(), l.Opacity)
	z := v.zoom()
	screen := v.Screen()
	rows := area.EndY - area.StartY
	cols := area.EndX - area.StartX
	leftward := m.RenderOrder == LeftDown || m.RenderOrder == LeftUp
	upward := m.RenderOrder == LeftUp || m.RenderOrder == RightUp

	for j := 0; j < rows; j++ {
		y := area.StartY + j
		if upward {
			y = area.EndY - 1 - j
		}
		for i := 0; i < cols; i++ {
			x := area.StartX + i
			if leftward {
				x = area.EndX - 1 - i
			}

			t, ok := l.At(x, y)
			if !ok || t.GID == 0 {
				continue
			}
			ts, ok := sets.Resolve(t.GID)
			if !ok {
				continue
			}

			gid := t.GID
			if frames := ts.GetAnimation(gid); len(frames) > 0 {
				gid = ts.FrameGID(t.Step(frames, v.TickRate))
			}

			origin := m.cellOrigin(x, y, ts)
			dest := Rect{
				X:      (origin.X-v.Camera.Offset.X)*z + opts.Offset.X,
				Y:      (origin.Y-v.Camera.Offset.Y)*z + opts.Offset.Y,
				Width:  float64(ts.TileWidth) * z,
				Height: float64(ts.TileHeight) * z,
			}
			if m.Orientation == Isometric && !dest.Overlaps(screen) {
				continue
			}

			sink.Draw(DrawCommand{
				Image:  ts.Image,
				Source: flipSource(ts.GetSourceRect(gid), t.Flip&FlipHorizontal != 0, t.Flip&FlipVertical != 0),
				Dest:   dest,
				Tint:   tint,
			})
		}
	}
}

// cellOrigin is the world position of the top-left of the tile image drawn
// at cell (x, y). Tiles taller than the grid are bottom-aligned.
func (m *Tilemap) cellOrigin(x, y int, ts *Tileset) Point {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	var p Point
	if m.Orientation == Isometric {
		p = Point{
			X: float64(x-y+m.Height-1) * tw / 2,
			Y: float64(x+y) * th / 2,
		}
	} else {
		p = Point{X: float64(x) * tw, Y: float64(y) * th}
	}
	p.Y += th - float64(ts.TileHeight)
	return p
}

func flipSource(src Rect, flipX, flipY bool) Rect {
	if flipX {
		src.Width = -src.Width
	}
	if flipY {
		src.Height = -src.Height
	}
	return src
}

// DrawTile draws a single tile at a world position, outside any layer. It
// reports whether the tile was on screen and got drawn.
func DrawTile(gid int, pos Point, sets *TilesetCollection, v View, sink DrawSink, opts DrawOptions, flipX, flipY bool) bool {
	if gid == 0 || sets == nil {
		return false
	}
	ts, ok := sets.Resolve(gid)
	if !ok {
		return false
	}
	z := v.zoom()
	dest := Rect{
		X:      (pos.X-v.Camera.Offset.X)*z + opts.Offset.X,
		Y:      (pos.Y-v.Camera.Offset.Y)*z + opts.Offset.Y,
		Width:  float64(ts.TileWidth) * z,
		Height: float64(ts.TileHeight) * z,
	}
	if !dest.Overlaps(v.Screen()) {
		return false
	}
	sink.Draw(DrawCommand{
		Image:  ts.Image,
		Source: flipSource(ts.GetSourceRect(gid), flipX, flipY),
		Dest:   dest,
		Tint:   opts.tint(),
	})
	return true
}

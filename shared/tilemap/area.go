package tilemap

import "math"

// Camera is the viewer state: Offset is the world pixel shown at the
// top-left of the screen.
type Camera struct {
	Offset Point
	Zoom   float64
}

// View is everything the resolver needs from the render loop for one tick.
type View struct {
	Camera   Camera
	Width    int // viewport size in screen pixels
	Height   int
	TickRate float64 // ticks per second, used by tile animations
}

func (v View) zoom() float64 {
	if v.Camera.Zoom <= 0 {
		return 1
	}
	return v.Camera.Zoom
}

// Screen returns the viewport rectangle in screen pixels.
func (v View) Screen() Rect {
	return Rect{Width: float64(v.Width), Height: float64(v.Height)}
}

// WorldToScreen maps a world position to screen pixels.
func (v View) WorldToScreen(p Point) Point {
	z := v.zoom()
	return Point{X: (p.X - v.Camera.Offset.X) * z, Y: (p.Y - v.Camera.Offset.Y) * z}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (v View) ScreenToWorld(p Point) Point {
	z := v.zoom()
	return Point{X: p.X/z + v.Camera.Offset.X, Y: p.Y/z + v.Camera.Offset.Y}
}

// Area is a half-open rectangle of tile coordinates [StartX,EndX) x [StartY,EndY).
type Area struct {
	StartX, StartY int
	EndX, EndY     int
}

func (a Area) Empty() bool {
	return a.EndX <= a.StartX || a.EndY <= a.StartY
}

// Cells is the number of tile positions covered.
func (a Area) Cells() int {
	if a.Empty() {
		return 0
	}
	return (a.EndX - a.StartX) * (a.EndY - a.StartY)
}

// FullArea covers the whole grid.
func (m *Tilemap) FullArea() Area {
	return Area{EndX: m.Width, EndY: m.Height}
}

// VisibleArea returns the tile window covering the viewport, clamped to the
// grid. Isometric maps return the full grid and are culled per tile.
func (m *Tilemap) VisibleArea(v View) Area {
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return Area{}
	}
	if m.Orientation == Isometric {
		return m.FullArea()
	}
	z := v.zoom()
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	off := v.Camera.Offset

	return Area{
		StartX: clampInt(int(math.Floor(off.X/tw)), 0, m.Width),
		StartY: clampInt(int(math.Floor(off.Y/th)), 0, m.Height),
		EndX:   clampInt(int(math.Floor((off.X+float64(v.Width)/z)/tw))+1, 0, m.Width),
		EndY:   clampInt(int(math.Floor((off.Y+float64(v.Height)/z)/th))+1, 0, m.Height),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

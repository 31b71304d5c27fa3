package systems

import (
	"image/color"
	"math"
	"strings"

	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/fonts"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// DrawObjects renders text objects of every shown object layer, and outlines
// of the other objects while hitboxes are on.
func DrawObjects(ecs *ecs.ECS, screen *ebiten.Image) {
	md := currentMapData(ecs)
	if md == nil || md.Map == nil {
		return
	}
	settings := GetOrCreateSettings(ecs)
	view := CurrentView(ecs)
	screenRect := view.Screen()
	z := view.Camera.Zoom

	for _, name := range md.Map.ObjectLayerNames {
		if md.Hidden[name] {
			continue
		}
		ol := md.Map.ObjectLayers[name]
		for _, objs := range ol.Objects {
			for i := range objs {
				o := &objs[i]
				topLeft := view.WorldToScreen(tilemap.Point{X: o.Rect.X, Y: o.Rect.Y})
				r := tilemap.Rect{X: topLeft.X, Y: topLeft.Y, Width: o.Rect.Width * z, Height: o.Rect.Height * z}
				if r.Width > 0 && r.Height > 0 && !r.Overlaps(screenRect) {
					continue
				}
				if o.IsText() {
					drawTextObject(screen, o.Text, r, z)
				} else if settings.ShowHitboxes {
					drawOutline(screen, r, cfg.Debug.ProbeColor)
				}
			}
		}
	}
}

func drawTextObject(screen *ebiten.Image, attrs *tilemap.TextAttrs, r tilemap.Rect, zoom float64) {
	size := attrs.FontSize
	if size <= 0 {
		size = cfg.Text.DefaultSize
	}
	size = int(math.Round(float64(size) * zoom))
	if size < 1 || attrs.Text == "" {
		return
	}
	face := fonts.Face(attrs.FontFamily, size, fonts.Style{Bold: attrs.Bold, Italic: attrs.Italic}, cfg.Text.DPI)

	width := 0
	if attrs.Wrap {
		width = int(r.Width)
	}
	lines := WrapLines(face, attrs.Text, width)

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	blockHeight := lineHeight * len(lines)

	y := int(r.Y) + alignOffset(attrs.VAlign, int(r.Height), blockHeight)
	for _, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		x := int(r.X) + alignOffset(attrs.HAlign, int(r.Width), lineWidth)
		baseline := y + ascent
		text.Draw(screen, line, face, x, baseline, attrs.Color)

		thickness := float32(math.Max(1, float64(size)/16))
		if attrs.Underline {
			vector.FillRect(screen, float32(x), float32(baseline+1), float32(lineWidth), thickness, attrs.Color, false)
		}
		if attrs.Strikeout {
			vector.FillRect(screen, float32(x), float32(baseline-ascent/3), float32(lineWidth), thickness, attrs.Color, false)
		}
		y += lineHeight
	}
}

// alignOffset places content of size inside a box along one axis.
func alignOffset(align string, box, content int) int {
	switch align {
	case "center":
		return (box - content) / 2
	case "right", "bottom":
		return box - content
	}
	return 0
}

// WrapLines splits s on newlines and, when width is positive, breaks lines
// between words so each fits in width pixels. A single word wider than width
// gets a line of its own.
func WrapLines(face font.Face, s string, width int) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if width <= 0 {
			out = append(out, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate).Ceil() > width {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}

func drawOutline(screen *ebiten.Image, r tilemap.Rect, c color.Color) {
	x, y := float32(r.X), float32(r.Y)
	w, h := float32(r.Width), float32(r.Height)
	if w <= 0 || h <= 0 {
		// Point objects get a small cross
		vector.FillRect(screen, x-3, y, 7, 1, c, false)
		vector.FillRect(screen, x, y-3, 1, 7, c, false)
		return
	}
	vector.FillRect(screen, x, y, w, 1, c, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, c, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
}

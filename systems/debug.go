package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/fonts"
	"github.com/automoto/tmxview/shared/gamemath"
	"github.com/automoto/tmxview/shared/tilemap"
	"github.com/automoto/tmxview/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(ecs)
	md := currentMapData(ecs)
	if md == nil || md.Map == nil {
		return
	}
	view := CurrentView(ecs)

	if settings.ShowGrid {
		drawGrid(screen, md.Map, view)
	}
	if settings.ShowHitboxes {
		drawCollision(ecs, screen, view)
		drawSpawns(ecs, screen, md, view)
	}
	if settings.ShowInfo {
		drawInfo(ecs, screen, md, view)
	}
}

// drawGrid draws the cell lines of the visible area of an orthogonal map.
func drawGrid(screen *ebiten.Image, m *tilemap.Tilemap, view tilemap.View) {
	if m.Orientation != tilemap.Orthogonal {
		return
	}
	area := m.VisibleArea(view)
	if area.Empty() {
		return
	}
	c := cfg.Debug.GridColor
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	top := view.WorldToScreen(tilemap.Point{X: float64(area.StartX) * tw, Y: float64(area.StartY) * th})
	bottom := view.WorldToScreen(tilemap.Point{X: float64(area.EndX) * tw, Y: float64(area.EndY) * th})

	for x := area.StartX; x <= area.EndX; x++ {
		p := view.WorldToScreen(tilemap.Point{X: float64(x) * tw})
		vector.FillRect(screen, float32(p.X), float32(top.Y), 1, float32(bottom.Y-top.Y), c, false)
	}
	for y := area.StartY; y <= area.EndY; y++ {
		p := view.WorldToScreen(tilemap.Point{Y: float64(y) * th})
		vector.FillRect(screen, float32(top.X), float32(p.Y), float32(bottom.X-top.X), 1, c, false)
	}
}

func drawCollision(ecs *ecs.ECS, screen *ebiten.Image, view tilemap.View) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)
	screenRect := view.Screen()
	z := view.Camera.Zoom

	for _, obj := range space.Objects() {
		p := view.WorldToScreen(tilemap.Point{X: obj.X, Y: obj.Y})
		r := tilemap.Rect{X: p.X, Y: p.Y, Width: obj.W * z, Height: obj.H * z}
		// Cull objects outside viewport
		if !r.Overlaps(screenRect) {
			continue
		}

		var c color.Color = cfg.Debug.HitboxColor
		if obj.HasTags(tags.ResolvRamp) {
			c = cfg.Debug.SlopeColor
		} else if !obj.HasTags(tags.ResolvSolid) {
			continue
		}
		drawOutline(screen, r, c)

		if obj.HasTags(tags.Slope45UpRight) {
			vector.StrokeLine(screen, float32(r.X), float32(r.Y+r.Height), float32(r.X+r.Width), float32(r.Y), 1, c, false)
		} else if obj.HasTags(tags.Slope45UpLeft) {
			vector.StrokeLine(screen, float32(r.X), float32(r.Y), float32(r.X+r.Width), float32(r.Y+r.Height), 1, c, false)
		}
	}
}

func drawSpawns(ecs *ecs.ECS, screen *ebiten.Image, md *components.MapData, view tilemap.View) {
	face := fonts.UISmall.Get()
	screenSink.Screen = screen
	tags.Spawn.Each(ecs.World, func(e *donburi.Entry) {
		spawn := components.Spawn.Get(e)
		p := view.WorldToScreen(tilemap.Point{X: spawn.X, Y: spawn.Y})
		if !drawSpawnMarker(screenSink, md.SpawnMarkers, view, spawn) {
			drawOutline(screen, tilemap.Rect{X: p.X, Y: p.Y}, cfg.Green)
		}
		text.Draw(screen, fmt.Sprintf("%d", spawn.Index), face, int(p.X)+4, int(p.Y)-4, cfg.Green)
	})
}

// drawSpawnMarker draws the marker tile centered on a spawn point. It reports
// false when there is no marker tile or the spawn is off screen.
func drawSpawnMarker(sink tilemap.DrawSink, markers *tilemap.TilesetCollection, view tilemap.View, spawn *components.SpawnData) bool {
	if markers == nil {
		return false
	}
	ts, ok := markers.Resolve(cfg.Debug.SpawnGID)
	if !ok {
		return false
	}
	pos := tilemap.Point{
		X: spawn.X - float64(ts.TileWidth)/2,
		Y: spawn.Y - float64(ts.TileHeight)/2,
	}
	return tilemap.DrawTile(cfg.Debug.SpawnGID, pos, markers, view, sink, tilemap.DrawOptions{Tint: cfg.Render.Tint}, false, false)
}

// drawInfo prints map facts and what lies under the cursor in the bottom-left corner.
func drawInfo(ecs *ecs.ECS, screen *ebiten.Image, md *components.MapData, view tilemap.View) {
	input := getOrCreateInput(ecs)
	m := md.Map

	lines := []string{
		fmt.Sprintf("%s  %dx%d %s  zoom %.2f  %.0f fps",
			md.Name(), m.Width, m.Height, m.Orientation, view.Camera.Zoom, ebiten.ActualFPS()),
	}

	if names := m.ObjectNames(); len(names) > 0 {
		lines = append(lines, "objects: "+strings.Join(names, ", "))
	}

	cursor := tilemap.Point{X: float64(input.CursorX), Y: float64(input.CursorY)}
	if cx, cy, ok := CellAt(m, view, cursor); ok {
		lines = append(lines, fmt.Sprintf("cell %d,%d  %s", cx, cy, describeCell(m, cx, cy)))
		if hits := probeCollision(ecs, view.ScreenToWorld(cursor)); len(hits) > 0 {
			lines = append(lines, "collides: "+strings.Join(hits, ", "))
		}
	}

	face := fonts.Mono.Get()
	lineHeight := face.Metrics().Height.Ceil()
	y := screen.Bounds().Dy() - lineHeight*len(lines) - 4
	width := 0
	for _, l := range lines {
		if w := len(l) * 7; w > width {
			width = w
		}
	}
	vector.FillRect(screen, 0, float32(y-2), float32(width+8), float32(lineHeight*len(lines)+6), cfg.BlackOverlay, false)
	for i, l := range lines {
		text.Draw(screen, l, face, 4, y+lineHeight*(i+1)-3, cfg.White)
	}
}

// CellAt returns the grid cell under a screen point of an orthogonal map.
func CellAt(m *tilemap.Tilemap, view tilemap.View, screenPos tilemap.Point) (int, int, bool) {
	if m.Orientation != tilemap.Orthogonal || m.TileWidth <= 0 || m.TileHeight <= 0 {
		return 0, 0, false
	}
	w := view.ScreenToWorld(screenPos)
	if w.X < 0 || w.Y < 0 {
		return 0, 0, false
	}
	x, y := int(w.X)/m.TileWidth, int(w.Y)/m.TileHeight
	if x >= m.Width || y >= m.Height {
		return 0, 0, false
	}
	return x, y, true
}

// describeCell lists the non-empty gids at a cell, topmost layer first.
func describeCell(m *tilemap.Tilemap, x, y int) string {
	var parts []string
	for i := len(m.LayerNames) - 1; i >= 0; i-- {
		name := m.LayerNames[i]
		t, ok := m.Layers[name].At(x, y)
		if !ok || t.GID == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d", name, t.GID))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

// probeCollision returns the tags of the collision objects at a world point.
func probeCollision(ecs *ecs.ECS, p tilemap.Point) []string {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return nil
	}
	space := components.Space.Get(spaceEntry)

	probe := resolv.NewObject(p.X, p.Y, 1, 1)
	space.Add(probe)
	defer space.Remove(probe)

	check := probe.Check(0, 0, tags.ResolvSolid, tags.ResolvRamp)
	if check == nil {
		return nil
	}
	var hits []string
	for _, obj := range check.Objects {
		if obj.HasTags(tags.ResolvRamp) {
			if gamemath.BelowSurface(p.X, p.Y, obj, tags.Slope45UpRight, tags.Slope45UpLeft) {
				hits = append(hits, "ramp")
			} else {
				hits = append(hits, "ramp (above surface)")
			}
		} else {
			hits = append(hits, "solid")
		}
	}
	return hits
}

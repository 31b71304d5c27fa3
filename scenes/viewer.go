package scenes

import (
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"path"
	"path/filepath"
	"sync"

	"github.com/automoto/tmxview/archetypes"
	"github.com/automoto/tmxview/assets"
	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/shared/leveldata"
	"github.com/automoto/tmxview/systems"
	"github.com/automoto/tmxview/systems/factory"
	"github.com/automoto/tmxview/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ViewerOptions say where the viewer reads maps from.
type ViewerOptions struct {
	FS fs.FS
	// WatchDir is the OS directory behind FS. Empty disables live reload.
	WatchDir string
	// Map is the stem of the map opened first; empty falls back to config.
	Map string
}

// ViewerScene shows one map at a time and switches between the maps of the
// configured directory.
type ViewerScene struct {
	ecs     *ecs.ECS
	opts    ViewerOptions
	names   []string
	start   int
	reg     *assets.Registry
	watcher *assets.Watcher
	panel   *ui.LayerPanel
	once    sync.Once
}

// NewViewerScene lists the maps available in opts.FS. It fails when there
// are none or the requested one is missing.
func NewViewerScene(opts ViewerOptions) (*ViewerScene, error) {
	names, err := leveldata.ListLevels(opts.FS, cfg.Maps.Dir)
	if err != nil {
		return nil, err
	}
	want := opts.Map
	if want == "" {
		want = cfg.Maps.Default
	}
	start := 0
	if want != "" {
		start = -1
		for i, n := range names {
			if n == want {
				start = i
				break
			}
		}
		if start < 0 {
			return nil, fmt.Errorf("map %q not found in %s", want, cfg.Maps.Dir)
		}
	}
	return &ViewerScene{
		opts:  opts,
		names: names,
		start: start,
		reg:   assets.Open(opts.FS),
	}, nil
}

func (vs *ViewerScene) Update() {
	vs.once.Do(vs.configure)

	settings := systems.GetOrCreateSettings(vs.ecs)
	if settings.ShowPanel {
		vs.panel.Update()
	}
	vs.ecs.Update()
	vs.logWatchErrors()

	entry, ok := components.Map.First(vs.ecs.World)
	if !ok {
		return
	}
	md := components.Map.Get(entry)
	if md.Requested {
		md.Requested = false
		vs.open(md.RequestIndex)
	}
}

func (vs *ViewerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if vs.ecs == nil {
		return
	}
	vs.ecs.Draw(screen)

	if systems.GetOrCreateSettings(vs.ecs).ShowPanel {
		vs.panel.Draw(screen)
	}
}

func (vs *ViewerScene) configure() {
	vs.ecs = ecs.NewECS(donburi.NewWorld())

	vs.ecs.AddSystem(systems.UpdateInput)
	vs.ecs.AddSystem(systems.UpdateSettings)
	vs.ecs.AddSystem(systems.UpdateMapSelection)
	vs.ecs.AddSystem(systems.UpdateReload)
	vs.ecs.AddSystem(systems.UpdateCamera)

	vs.ecs.AddRenderer(cfg.Default, systems.DrawMap)
	vs.ecs.AddRenderer(cfg.Default, systems.DrawObjects)
	vs.ecs.AddRenderer(cfg.Default, systems.DrawDebug)

	factory.CreateCamera(vs.ecs)
	systems.GetOrCreateSettings(vs.ecs)

	// Start with an empty map entity so the panel and requests have a home
	// even if the first map fails to load.
	factory.CreateMap(vs.ecs, &components.MapData{Names: vs.names, Index: -1})
	md := vs.mapData()
	vs.panel = ui.NewLayerPanel(md,
		func() { systems.StepMap(vs.mapData(), 1) },
		func() { systems.StepMap(vs.mapData(), -1) },
	)

	vs.startWatcher()
	vs.open(vs.start)
}

func (vs *ViewerScene) startWatcher() {
	if vs.opts.WatchDir == "" || !cfg.Reload.Enabled {
		return
	}
	dir := filepath.Join(vs.opts.WatchDir, filepath.FromSlash(cfg.Maps.Dir))
	w, err := assets.NewWatcher(dir)
	if err != nil {
		log.Printf("Warning: Could not watch %s: %v", dir, err)
		return
	}
	vs.watcher = w
	reload := archetypes.Reload.Spawn(vs.ecs)
	components.Reload.Set(reload, &components.ReloadData{Events: w.Events})
}

func (vs *ViewerScene) logWatchErrors() {
	if vs.watcher == nil {
		return
	}
	select {
	case err := <-vs.watcher.Errors:
		log.Printf("Warning: watcher: %v", err)
	default:
	}
}

func (vs *ViewerScene) mapData() *components.MapData {
	entry, _ := components.Map.First(vs.ecs.World)
	return components.Map.Get(entry)
}

// open loads names[index]. Reopening the current map keeps the camera and
// layer toggles and rereads every image from disk; switching saves the view
// of the old map and restores the one saved for the new map.
func (vs *ViewerScene) open(index int) {
	old := vs.mapData()
	reload := index == old.Index
	cameraEntry, _ := components.Camera.First(vs.ecs.World)
	camera := components.Camera.Get(cameraEntry)

	reg := vs.reg
	if reload {
		reg = assets.Open(vs.reg.FS())
	}

	p := path.Join(cfg.Maps.Dir, vs.names[index]+".tmx")
	next, err := factory.LoadMap(reg, p)
	if err != nil {
		log.Printf("Warning: Could not open %s: %v", p, err)
		if reload {
			if err := reg.Close(); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
		return
	}
	next.Index = index

	if old.Map != nil && !reload {
		// SaveView logs its own failures
		_ = systems.SaveView(old.Name(), systems.CaptureView(camera, old))
	}
	if reload {
		for name, hidden := range old.Hidden {
			next.Hidden[name] = hidden
		}
		if err := vs.reg.Close(); err != nil {
			log.Printf("Warning: %v", err)
		}
		vs.reg = reg
	}

	factory.ReplaceMap(vs.ecs, next)
	md := vs.mapData()
	if !reload {
		systems.ResetCamera(camera)
		saved, _ := systems.LoadView(md.Name())
		systems.ApplyView(camera, md, saved)
	}

	systems.ResetRenderCache()
	vs.panel.Rebuild(md)
	log.Printf("Opened %s (%dx%d, %d tilesets)", p, md.Map.Width, md.Map.Height, md.Tilesets.Len())
}

// Close saves the current view and releases files and images.
func (vs *ViewerScene) Close() error {
	if vs.watcher != nil {
		if err := vs.watcher.Close(); err != nil {
			log.Printf("Warning: Could not stop watcher: %v", err)
		}
	}
	if vs.ecs != nil {
		md := vs.mapData()
		if cameraEntry, ok := components.Camera.First(vs.ecs.World); ok && md.Map != nil {
			// SaveView logs its own failures
			_ = systems.SaveView(md.Name(), systems.CaptureView(components.Camera.Get(cameraEntry), md))
		}
	}
	return vs.reg.Close()
}

package main

import (
	"flag"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"

	"github.com/automoto/tmxview/assets"
	"github.com/automoto/tmxview/config"
	"github.com/automoto/tmxview/fonts"
	"github.com/automoto/tmxview/scenes"
	"github.com/automoto/tmxview/shared/leveldata"
	"github.com/automoto/tmxview/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(scene Scene) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	dir := flag.String("dir", "", "directory containing the maps directory (default: built-in demo)")
	configPath := flag.String("config", "", "YAML file overriding the built-in configuration")
	mapName := flag.String("map", "", "name of the map to open first, without .tmx")
	useTiled := flag.Bool("tiled", false, "load maps through go-tiled instead of the native parser")
	check := flag.Bool("check", false, "load the collision data of every map, print a summary and exit")
	flag.Parse()

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *useTiled {
		config.Maps.UseTiledImporter = true
	}

	var fsys fs.FS = assets.Embedded()
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}

	if *check {
		if err := checkMaps(fsys); err != nil {
			log.Fatalf("Check failed: %v", err)
		}
		return
	}

	fonts.LoadDefaults()

	// Initialize persistence; the viewer works without it
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	viewer, err := scenes.NewViewerScene(scenes.ViewerOptions{
		FS:       fsys,
		WatchDir: *dir,
		Map:      *mapName,
	})
	if err != nil {
		log.Fatalf("Failed to open maps: %v", err)
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(NewGame(viewer))
	if err := viewer.Close(); err != nil {
		log.Printf("Warning: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

// checkMaps loads every map headlessly and prints what collision data it has.
func checkMaps(fsys fs.FS) error {
	levels, names, err := leveldata.LoadAllLevels(fsys, config.Maps.Dir, leveldata.Layers{
		Solid: config.Collision.SolidLayer,
		Spawn: config.Collision.SpawnLayer,
	})
	if err != nil {
		return err
	}
	for _, name := range names {
		l := levels[name]
		fmt.Printf("%-24s %4dx%-4d solids=%d spawns=%d\n",
			name, l.MapWidth, l.MapHeight, len(l.SolidRects), len(l.SpawnPoints))
	}
	return nil
}

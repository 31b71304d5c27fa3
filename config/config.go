package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the ECS layer every entity and renderer lives on.
const Default ecs.LayerID = 0

// Config holds the window configuration
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RenderConfig controls how maps are drawn
type RenderConfig struct {
	// DefaultTickRate drives tile animations until the loop reports a real rate.
	DefaultTickRate float64    `yaml:"default_tick_rate"`
	Background      color.RGBA `yaml:"background"`
	Tint            color.RGBA `yaml:"tint"`
	ShowHidden      bool       `yaml:"show_hidden"` // draw layers marked invisible in the file
}

// CameraConfig contains viewer camera behavior
type CameraConfig struct {
	PanSpeed     float64 `yaml:"pan_speed"` // world pixels per tick at zoom 1
	ZoomStep     float64 `yaml:"zoom_step"` // multiplier per zoom input
	MinZoom      float64 `yaml:"min_zoom"`
	MaxZoom      float64 `yaml:"max_zoom"`
	ZoomDuration float32 `yaml:"zoom_duration"` // seconds for the eased zoom tween
	ClampToMap   bool    `yaml:"clamp_to_map"`
}

// MapsConfig tells the viewer where maps live
type MapsConfig struct {
	Dir     string `yaml:"dir"`     // directory scanned for *.tmx
	Default string `yaml:"default"` // stem of the map opened first; empty means the first one
	// UseTiledImporter loads maps through go-tiled instead of the native parser.
	UseTiledImporter bool `yaml:"use_tiled_importer"`
}

// CollisionConfig names the layers collision data is read from
type CollisionConfig struct {
	SolidLayer string `yaml:"solid_layer"`
	SpawnLayer string `yaml:"spawn_layer"`
	CellSize   int    `yaml:"cell_size"` // resolv space cell size in pixels
}

// TextConfig controls text object rendering
type TextConfig struct {
	DefaultSize int     `yaml:"default_size"`
	DPI         float64 `yaml:"dpi"`
}

// DebugConfig contains debug overlay toggles
type DebugConfig struct {
	ShowHitboxes bool       `yaml:"show_hitboxes"`
	ShowGrid     bool       `yaml:"show_grid"`
	ShowInfo     bool       `yaml:"show_info"`
	HitboxColor  color.RGBA `yaml:"hitbox_color"`
	SlopeColor   color.RGBA `yaml:"slope_color"`
	GridColor    color.RGBA `yaml:"grid_color"`
	ProbeColor   color.RGBA `yaml:"probe_color"`
	// SpawnImage is a tile sheet, relative to the maps file system, whose
	// SpawnGID tile marks spawn points. Empty draws a plain cross.
	SpawnImage    string `yaml:"spawn_image"`
	SpawnTileSize int    `yaml:"spawn_tile_size"`
	SpawnGID      int    `yaml:"spawn_gid"`
}

// UIConfig contains the layer panel look
type UIConfig struct {
	PanelWidth    int        `yaml:"panel_width"`
	FontSize      float64    `yaml:"font_size"`
	ButtonIdle    color.RGBA `yaml:"button_idle"`
	ButtonHover   color.RGBA `yaml:"button_hover"`
	ButtonPressed color.RGBA `yaml:"button_pressed"`
	ButtonOff     color.RGBA `yaml:"button_off"`
	TextColor     color.RGBA `yaml:"text_color"`
	Padding       int        `yaml:"padding"`
	StartVisible  bool       `yaml:"start_visible"`
}

// ReloadConfig controls watching the open map for changes
type ReloadConfig struct {
	Enabled bool `yaml:"enabled"`
	// DebounceTicks collapses bursts of writes from editors into one reload.
	DebounceTicks int `yaml:"debounce_ticks"`
}

// PersistenceConfig names the gdata application
type PersistenceConfig struct {
	AppName string `yaml:"app_name"`
}

// Global configuration instances
var C *Config
var Render RenderConfig
var Camera CameraConfig
var Maps MapsConfig
var Collision CollisionConfig
var Text TextConfig
var Debug DebugConfig
var UI UIConfig
var Reload ReloadConfig
var Persistence PersistenceConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Gray         = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "tmxview",
	}

	Render = RenderConfig{
		DefaultTickRate: 60,
		Background:      color.RGBA{R: 24, G: 24, B: 32, A: 255},
		Tint:            White,
	}

	Camera = CameraConfig{
		PanSpeed:     4.0,
		ZoomStep:     1.25,
		MinZoom:      0.25,
		MaxZoom:      8.0,
		ZoomDuration: 0.2,
		ClampToMap:   false,
	}

	Maps = MapsConfig{
		Dir: "maps",
	}

	Collision = CollisionConfig{
		SolidLayer: "collision",
		SpawnLayer: "spawns",
		CellSize:   16,
	}

	Text = TextConfig{
		DefaultSize: 16,
		DPI:         72,
	}

	Debug = DebugConfig{
		ShowInfo:    true,
		HitboxColor: color.RGBA{R: 255, G: 60, B: 60, A: 255},
		SlopeColor:  color.RGBA{R: 255, G: 180, B: 50, A: 255},
		GridColor:   color.RGBA{R: 255, G: 255, B: 255, A: 40},
		ProbeColor:  Yellow,

		SpawnImage:    "maps/tilesets/terrain.png",
		SpawnTileSize: 16,
		SpawnGID:      8,
	}

	UI = UIConfig{
		PanelWidth:    160,
		FontSize:      12,
		ButtonIdle:    DarkBlue,
		ButtonHover:   LightBlue,
		ButtonPressed: color.RGBA{R: 40, G: 70, B: 120, A: 255},
		ButtonOff:     Gray,
		TextColor:     White,
		Padding:       6,
		StartVisible:  true,
	}

	Reload = ReloadConfig{
		Enabled:       true,
		DebounceTicks: 10,
	}

	Persistence = PersistenceConfig{
		AppName: "tmxview",
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file mirrors the globals for YAML overrides. Sections and keys missing
// from the file keep their current values.
type file struct {
	Window      Config            `yaml:"window"`
	Render      RenderConfig      `yaml:"render"`
	Camera      CameraConfig      `yaml:"camera"`
	Maps        MapsConfig        `yaml:"maps"`
	Collision   CollisionConfig   `yaml:"collision"`
	Text        TextConfig        `yaml:"text"`
	Debug       DebugConfig       `yaml:"debug"`
	UI          UIConfig          `yaml:"ui"`
	Reload      ReloadConfig      `yaml:"reload"`
	Persistence PersistenceConfig `yaml:"persistence"`
}

// Load overlays the YAML file at path onto the global configuration.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return Apply(data)
}

// Apply overlays YAML data onto the global configuration. Nothing is
// changed when the data does not parse.
func Apply(data []byte) error {
	f := file{
		Window:      *C,
		Render:      Render,
		Camera:      Camera,
		Maps:        Maps,
		Collision:   Collision,
		Text:        Text,
		Debug:       Debug,
		UI:          UI,
		Reload:      Reload,
		Persistence: Persistence,
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	*C = f.Window
	Render = f.Render
	Camera = f.Camera
	Maps = f.Maps
	Collision = f.Collision
	Text = f.Text
	Debug = f.Debug
	UI = f.UI
	Reload = f.Reload
	Persistence = f.Persistence
	return nil
}

package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/tmxview/components"
	cfg "github.com/automoto/tmxview/config"
	"github.com/quasilyte/gdata"
	dmath "github.com/yohamta/donburi/features/math"
)

// SavedView is the camera and layer state remembered per map
type SavedView struct {
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Zoom   float64         `json:"zoom"`
	Hidden map[string]bool `json:"hidden,omitempty"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for view storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Persistence.AppName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

func viewKey(mapName string) string {
	return "view-" + mapName
}

// LoadView loads the saved view of a map, or nil when there is none
func LoadView(mapName string) (*SavedView, error) {
	if !gdataInitialized || gdataManager == nil || mapName == "" {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(viewKey(mapName))
	if err != nil {
		log.Printf("Warning: Could not load view of %s: %v", mapName, err)
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}

	var view SavedView
	if err := json.Unmarshal(data, &view); err != nil {
		log.Printf("Warning: Could not parse saved view of %s: %v", mapName, err)
		return nil, err
	}
	return &view, nil
}

// SaveView saves the view of a map to disk
func SaveView(mapName string, v *SavedView) error {
	if !gdataInitialized || gdataManager == nil || mapName == "" {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: Could not serialize view: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(viewKey(mapName), data); err != nil {
		log.Printf("Warning: Could not save view of %s: %v", mapName, err)
		return err
	}
	return nil
}

// CaptureView snapshots the camera and the layer overrides.
func CaptureView(camera *components.CameraData, md *components.MapData) *SavedView {
	v := &SavedView{
		X:    camera.Position.X,
		Y:    camera.Position.Y,
		Zoom: camera.TargetZoom,
	}
	if md != nil {
		for name, hidden := range md.Hidden {
			if !hidden {
				continue
			}
			if v.Hidden == nil {
				v.Hidden = make(map[string]bool)
			}
			v.Hidden[name] = true
		}
	}
	return v
}

// ApplyView restores a saved view. Zoom is clamped to the configured range
// and layers that no longer exist are dropped.
func ApplyView(camera *components.CameraData, md *components.MapData, v *SavedView) {
	if v == nil {
		return
	}
	zoom := v.Zoom
	if zoom < cfg.Camera.MinZoom || zoom > cfg.Camera.MaxZoom || zoom == 0 {
		zoom = 1
	}
	camera.Position = dmath.NewVec2(v.X, v.Y)
	camera.Zoom = zoom
	camera.TargetZoom = zoom
	camera.ZoomTween = nil

	if md == nil || md.Map == nil {
		return
	}
	for name, hidden := range v.Hidden {
		_, tile := md.Map.Layers[name]
		_, obj := md.Map.ObjectLayers[name]
		if !hidden || !(tile || obj) {
			continue
		}
		if md.Hidden == nil {
			md.Hidden = make(map[string]bool)
		}
		md.Hidden[name] = true
	}
}

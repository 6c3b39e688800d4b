package config

import (
	"sort"

	"github.com/san-kum/lissatunnel/internal/view"
)

var Presets = map[string]*Config{
	"classic": {
		Curve:  CurveConfig{A: 2, B: 7, R: 5},
		Tunnel: TunnelConfig{Radius: 1, Sides: 7, NumPolygons: 200, WallAlpha: 0.5},
		Camera: CameraConfig{Speed: 0.1},
	},
	"knot": {
		Curve:  CurveConfig{A: 3, B: 5, R: 6},
		Tunnel: TunnelConfig{Radius: 0.6, Sides: 6, NumPolygons: 400, WallAlpha: 0.4},
		Camera: CameraConfig{Speed: 0.05},
	},
	"sparse": {
		Curve:  CurveConfig{A: 2, B: 7, R: 5},
		Tunnel: TunnelConfig{Radius: 1, Sides: 5, NumPolygons: 60, WallAlpha: 0.7, Intermittent: true},
		Camera: CameraConfig{Speed: 0.1},
	},
	"dense": {
		Curve:  CurveConfig{A: 1, B: 4, R: 5},
		Tunnel: TunnelConfig{Radius: 0.8, Sides: 12, NumPolygons: 1000, WallAlpha: 0.25},
		Camera: CameraConfig{Speed: 0.02},
	},
}

// GetPreset returns a full configuration for name, with canvas, view and fps
// taken from the defaults. It returns nil for an unknown name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Curve = p.Curve
	cfg.Tunnel = p.Tunnel
	cfg.Camera = p.Camera
	cfg.View = view.Default()
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lissatunnel/internal/curve"
	"github.com/san-kum/lissatunnel/internal/session"
	"github.com/san-kum/lissatunnel/internal/tunnel"
	"github.com/san-kum/lissatunnel/internal/view"
)

const (
	DefaultA            = 2.0
	DefaultB            = 7.0
	DefaultR            = 5.0
	DefaultRadius       = 1.0
	DefaultSides        = 7
	DefaultNumPolygons  = session.DefaultNumPolygons
	DefaultWallAlpha    = session.DefaultWallAlpha
	DefaultSpeed        = session.DefaultSpeed
	DefaultFPS          = 60
	DefaultCanvasID     = "canvas"
	DefaultCanvasWidth  = 1120
	DefaultCanvasHeight = 630
)

type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Curve  CurveConfig  `yaml:"curve"`
	Tunnel TunnelConfig `yaml:"tunnel"`
	Camera CameraConfig `yaml:"camera"`
	View   view.State   `yaml:"view"`
	FPS    int          `yaml:"fps"`
}

type CanvasConfig struct {
	ID     string `yaml:"id"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CurveConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	R float64 `yaml:"r"`
}

type TunnelConfig struct {
	Radius       float64 `yaml:"radius"`
	Sides        int     `yaml:"sides"`
	NumPolygons  int     `yaml:"num_polygons"`
	WallAlpha    float64 `yaml:"wall_alpha"`
	Intermittent bool    `yaml:"intermittent"`
}

type CameraConfig struct {
	Speed       float64 `yaml:"speed"`
	OutsideView bool    `yaml:"outside_view"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			ID:     DefaultCanvasID,
			Width:  DefaultCanvasWidth,
			Height: DefaultCanvasHeight,
		},
		Curve: CurveConfig{A: DefaultA, B: DefaultB, R: DefaultR},
		Tunnel: TunnelConfig{
			Radius:      DefaultRadius,
			Sides:       DefaultSides,
			NumPolygons: DefaultNumPolygons,
			WallAlpha:   DefaultWallAlpha,
		},
		Camera: CameraConfig{Speed: DefaultSpeed},
		View:   view.Default(),
		FPS:    DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the curve and tunnel sections the same way a session
// would, so a bad file fails before anything is drawn.
func (c *Config) Validate() error {
	params, err := curve.NewParams(c.Curve.A, c.Curve.B, c.Curve.R)
	if err != nil {
		return err
	}
	if err := c.TunnelOptions(params).Validate(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}

func (c *Config) TunnelOptions(p curve.Params) tunnel.Options {
	return tunnel.Options{
		Params:       p,
		NumPolygons:  c.Tunnel.NumPolygons,
		Sides:        c.Tunnel.Sides,
		Radius:       c.Tunnel.Radius,
		Intermittent: c.Tunnel.Intermittent,
		WallAlpha:    c.Tunnel.WallAlpha,
	}
}

func (c *Config) ToSession() session.Config {
	return session.Config{
		A:             c.Curve.A,
		B:             c.Curve.B,
		R:             c.Curve.R,
		PolygonRadius: c.Tunnel.Radius,
		PolygonSides:  c.Tunnel.Sides,
		NumPolygons:   c.Tunnel.NumPolygons,
		WallAlpha:     c.Tunnel.WallAlpha,
		Intermittent:  c.Tunnel.Intermittent,
		Speed:         c.Camera.Speed,
		OutsideView:   c.Camera.OutsideView,
		View:          c.View,
	}
}

// Surface is the canvas this configuration draws on.
func (c *Config) Surface() session.Surface {
	return session.NewSurface(c.Canvas.ID, c.Canvas.Width, c.Canvas.Height)
}

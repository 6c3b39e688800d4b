package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lissatunnel/internal/tunnel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Curve.A != 2 || cfg.Curve.B != 7 || cfg.Curve.R != 5 {
		t.Errorf("expected curve 2/7/5, got %+v", cfg.Curve)
	}
	if cfg.Tunnel.NumPolygons != 200 {
		t.Errorf("expected 200 polygons, got %d", cfg.Tunnel.NumPolygons)
	}
	if cfg.Camera.Speed != 0.1 {
		t.Errorf("expected speed 0.1, got %f", cfg.Camera.Speed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  bool
	}{
		{"zero frequency", func(c *Config) { c.Curve.A = 0 }, true},
		{"too many polygons", func(c *Config) { c.Tunnel.NumPolygons = 1001 }, true},
		{"two sides", func(c *Config) { c.Tunnel.Sides = 2 }, true},
		{"alpha above one", func(c *Config) { c.Tunnel.WallAlpha = 1.5 }, true},
		{"zero fps", func(c *Config) { c.FPS = 0 }, false},
		{"empty canvas", func(c *Config) { c.Canvas.Width = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, tunnel.ErrInvalidConfiguration); got != tt.field {
				t.Errorf("errors.Is(ErrInvalidConfiguration) = %v, want %v", got, tt.field)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunnel.yaml")

	cfg := DefaultConfig()
	cfg.Tunnel.Intermittent = true
	cfg.Tunnel.WallAlpha = 0.8
	cfg.View.EnableCulling = true
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, *cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("curve:\n  a: 3\n  b: 5\n  r: 6\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Curve.A != 3 || cfg.Curve.B != 5 {
		t.Errorf("expected curve 3/5, got %+v", cfg.Curve)
	}
	if cfg.Tunnel.Sides != DefaultSides {
		t.Errorf("expected default sides, got %d", cfg.Tunnel.Sides)
	}
	if !cfg.View.ShowTunnel {
		t.Error("expected default view to survive")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("curve: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestToSession(t *testing.T) {
	cfg := GetPreset("sparse")
	sc := cfg.ToSession()

	if sc.NumPolygons != 60 || !sc.Intermittent {
		t.Errorf("unexpected session config %+v", sc)
	}
	if sc.PolygonSides != 5 || sc.WallAlpha != 0.7 {
		t.Errorf("unexpected tunnel fields %+v", sc)
	}
	if id := cfg.Surface().ID(); id != DefaultCanvasID {
		t.Errorf("expected surface %q, got %q", DefaultCanvasID, id)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Tunnel.Sides != 7 {
		t.Errorf("expected 7 sides, got %d", cfg.Tunnel.Sides)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected fps from defaults, got %d", cfg.FPS)
	}

	cfg.Tunnel.Sides = 99
	if Presets["classic"].Tunnel.Sides != 7 {
		t.Error("GetPreset must not alias the preset table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

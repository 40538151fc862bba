package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}

	if cfg.Bodies.Primary.Name != "Sun" {
		t.Errorf("expected primary Sun, got %q", cfg.Bodies.Primary.Name)
	}
	if len(cfg.Bodies.Planets) != 8 {
		t.Errorf("expected 8 planets, got %d", len(cfg.Bodies.Planets))
	}
	if cfg.Comets.TrailCapacity != 50 {
		t.Errorf("expected trail capacity 50, got %d", cfg.Comets.TrailCapacity)
	}
	if cfg.Comets.EscapeDistance != 2000 {
		t.Errorf("expected escape distance 2000, got %f", cfg.Comets.EscapeDistance)
	}
	if cfg.Camera.FollowFraction != 0.05 {
		t.Errorf("expected follow fraction 0.05, got %f", cfg.Camera.FollowFraction)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(cfg.Derived.Aspect-1280.0/800.0) > 1e-9 {
		t.Errorf("unexpected aspect %f", cfg.Derived.Aspect)
	}
	if math.Abs(cfg.Derived.FovYRad-75*math.Pi/180) > 1e-9 {
		t.Errorf("unexpected fov %f", cfg.Derived.FovYRad)
	}
	if idx, ok := cfg.Derived.PlanetIndex["Earth"]; !ok || cfg.Bodies.Planets[idx].Distance != 70 {
		t.Errorf("Earth not indexed correctly: idx=%d ok=%v", idx, ok)
	}

	// Saturn: 2.1 * 4 = 8.4, rings at 1.2x and 2.0x
	radii, ok := cfg.Derived.RingRadii["Saturn"]
	if !ok {
		t.Fatal("expected Saturn ring radii")
	}
	if math.Abs(radii[0]-10.08) > 1e-9 || math.Abs(radii[1]-16.8) > 1e-9 {
		t.Errorf("unexpected Saturn ring radii %v", radii)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("time:\n  scale: 1.5\ncomets:\n  trail_capacity: 10\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}
	if cfg.Time.Scale != 1.5 {
		t.Errorf("expected overlaid time scale 1.5, got %f", cfg.Time.Scale)
	}
	if cfg.Comets.TrailCapacity != 10 {
		t.Errorf("expected overlaid trail capacity 10, got %d", cfg.Comets.TrailCapacity)
	}
	// Untouched keys keep their defaults
	if cfg.Comets.MaxAgeMin != 800 {
		t.Errorf("expected default max age 800, got %d", cfg.Comets.MaxAgeMin)
	}
}

func TestValidateRejectsBadTable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown ring owner", func(c *Config) { c.Bodies.Rings[0].Owner = "Pluto" }},
		{"unknown satellite primary", func(c *Config) { c.Bodies.Satellites[0].Primary = "Vulcan" }},
		{"zero planet radius", func(c *Config) { c.Bodies.Planets[0].Radius = 0 }},
		{"negative distance", func(c *Config) { c.Bodies.Planets[1].Distance = -1 }},
		{"inverted ring", func(c *Config) { c.Bodies.Rings[0].OuterScale = 0.5 }},
		{"empty trail", func(c *Config) { c.Comets.TrailCapacity = 0 }},
		{"bad control mode", func(c *Config) { c.Camera.ControlMode = "drive" }},
		{"negative time scale", func(c *Config) { c.Time.Scale = -0.5 }},
		{"zero follow fraction", func(c *Config) { c.Camera.FollowFraction = 0 }},
		{"follow fraction above one", func(c *Config) { c.Camera.FollowFraction = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadRejectsOutOfRangeKnobs(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"follow fraction", "camera:\n  follow_fraction: 2\n"},
		{"time scale", "time:\n  scale: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected Load to reject the overlay")
			}
		})
	}

	// A stopped clock and a snap-to-target follow are both allowed
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Time.Scale = 0
	cfg.Camera.FollowFraction = 1
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected boundary values to validate, got %v", err)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if len(loaded.Bodies.Planets) != len(cfg.Bodies.Planets) {
		t.Errorf("planet count changed: %d -> %d", len(cfg.Bodies.Planets), len(loaded.Bodies.Planets))
	}
}

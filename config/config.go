// Package config provides configuration loading and access for the orrery.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all orrery configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Time      TimeConfig      `yaml:"time"`
	Camera    CameraConfig    `yaml:"camera"`
	Comets    CometConfig     `yaml:"comets"`
	Spin      SpinConfig      `yaml:"spin"`
	Bodies    BodiesConfig    `yaml:"bodies"`
	Reference ReferenceConfig `yaml:"reference"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// TimeConfig holds the global orbit speed knob.
// Simulated time = elapsed wall-clock seconds * Scale.
type TimeConfig struct {
	Scale float64 `yaml:"scale"`
}

// CameraConfig holds projection, follow and free-control parameters.
type CameraConfig struct {
	FovY           float64    `yaml:"fov_y"` // degrees
	Near           float64    `yaml:"near"`
	Far            float64    `yaml:"far"`
	Start          [3]float64 `yaml:"start"`
	FollowOffset   [3]float64 `yaml:"follow_offset"`
	FollowFraction float64    `yaml:"follow_fraction"` // lerp fraction per frame
	ControlMode    string     `yaml:"control_mode"`    // "orbit" or "fly"

	Orbit OrbitControlConfig `yaml:"orbit"`
	Fly   FlyControlConfig   `yaml:"fly"`
}

// OrbitControlConfig mirrors a damped orbit-style controller.
type OrbitControlConfig struct {
	Damping     float64 `yaml:"damping"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	RotateSpeed float64 `yaml:"rotate_speed"` // radians per pixel of drag
	ZoomSpeed   float64 `yaml:"zoom_speed"`   // fractional distance change per wheel step
}

// FlyControlConfig mirrors a free-flight controller.
type FlyControlConfig struct {
	MovementSpeed float64 `yaml:"movement_speed"` // units per second
	RollSpeed     float64 `yaml:"roll_speed"`     // radians per second
	LookSpeed     float64 `yaml:"look_speed"`     // radians per pixel of drag
}

// CometConfig holds comet spawn and retirement parameters.
type CometConfig struct {
	TrailCapacity  int     `yaml:"trail_capacity"`
	MaxAgeMin      int     `yaml:"max_age_min"`
	MaxAgeSpan     int     `yaml:"max_age_span"` // maxAge in [min, min+span)
	SpeedMin       float64 `yaml:"speed_min"`
	SpeedSpan      float64 `yaml:"speed_span"` // speed in [min, min+span)
	Jitter         float64 `yaml:"jitter"`     // per-axis direction perturbation half-width
	EscapeDistance float64 `yaml:"escape_distance"`
	SpawnDistance  float64 `yaml:"spawn_distance"` // distance from camera along the pointer ray
	Radius         float64 `yaml:"radius"`
}

// SpinConfig holds per-frame self-rotation increments by body kind.
type SpinConfig struct {
	Primary   float64 `yaml:"primary"`
	Planet    float64 `yaml:"planet"`
	Satellite float64 `yaml:"satellite"`
}

// BodiesConfig is the static body table.
type BodiesConfig struct {
	Primary    PrimaryConfig     `yaml:"primary"`
	Planets    []PlanetConfig    `yaml:"planets"`
	Rings      []RingConfig      `yaml:"rings"`
	Satellites []SatelliteConfig `yaml:"satellites"`
}

// PrimaryConfig describes the central body.
type PrimaryConfig struct {
	Name    string  `yaml:"name"`
	Radius  float64 `yaml:"radius"` // table radius; visual radius = Radius * PrimaryScale
	Color   string  `yaml:"color"`
	Texture string  `yaml:"texture"`
}

// PlanetConfig describes one body orbiting the primary.
type PlanetConfig struct {
	Name     string  `yaml:"name"`
	Radius   float64 `yaml:"radius"`
	Distance float64 `yaml:"distance"`
	Speed    float64 `yaml:"speed"`
	EllipseX float64 `yaml:"ellipse_x"`
	EllipseZ float64 `yaml:"ellipse_z"`
	Color    string  `yaml:"color"`
	Texture  string  `yaml:"texture"`
}

// RingConfig attaches a ring system to a planet.
// Inner/outer radii are multiples of the owner's visual radius.
type RingConfig struct {
	Owner      string  `yaml:"owner"`
	InnerScale float64 `yaml:"inner_scale"`
	OuterScale float64 `yaml:"outer_scale"`
	Color      string  `yaml:"color"`
	Texture    string  `yaml:"texture"`
}

// SatelliteConfig describes a body orbiting a planet.
type SatelliteConfig struct {
	Name     string  `yaml:"name"`
	Primary  string  `yaml:"primary"`
	Radius   float64 `yaml:"radius"`
	Distance float64 `yaml:"distance"`
	Speed    float64 `yaml:"speed"`
	Tilt     float64 `yaml:"tilt"` // orbital-plane tilt about X, radians
	Color    string  `yaml:"color"`
	Texture  string  `yaml:"texture"`
}

// ReferenceConfig points at an optional reference-data CSV.
type ReferenceConfig struct {
	Path string `yaml:"path"` // empty = embedded table
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of wall-clock time
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// Visual radius multipliers applied to the table radii.
const (
	PrimaryScale   = 2.0
	PlanetScale    = 4.0
	SatelliteScale = 3.0
)

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Aspect      float64               // Screen.Width / Screen.Height
	FovYRad     float64               // Camera.FovY in radians
	PlanetIndex map[string]int        // planet name -> index in Bodies.Planets
	RingRadii   map[string][2]float64 // owner name -> absolute inner/outer radius
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the body table and comet parameters for values the
// simulation cannot represent.
func (c *Config) Validate() error {
	if c.Bodies.Primary.Radius <= 0 {
		return fmt.Errorf("primary %q: radius must be positive", c.Bodies.Primary.Name)
	}
	planets := make(map[string]bool, len(c.Bodies.Planets))
	for _, p := range c.Bodies.Planets {
		if p.Name == "" {
			return fmt.Errorf("planet without name")
		}
		if p.Radius <= 0 {
			return fmt.Errorf("planet %q: radius must be positive", p.Name)
		}
		if p.Distance < 0 {
			return fmt.Errorf("planet %q: distance must not be negative", p.Name)
		}
		planets[p.Name] = true
	}
	for _, r := range c.Bodies.Rings {
		if !planets[r.Owner] {
			return fmt.Errorf("ring: unknown owner %q", r.Owner)
		}
		if r.InnerScale <= 0 || r.OuterScale <= r.InnerScale {
			return fmt.Errorf("ring of %q: need 0 < inner_scale < outer_scale", r.Owner)
		}
	}
	for _, s := range c.Bodies.Satellites {
		if !planets[s.Primary] {
			return fmt.Errorf("satellite %q: unknown primary %q", s.Name, s.Primary)
		}
		if s.Radius <= 0 {
			return fmt.Errorf("satellite %q: radius must be positive", s.Name)
		}
		if s.Distance < 0 {
			return fmt.Errorf("satellite %q: distance must not be negative", s.Name)
		}
	}
	if !(c.Time.Scale >= 0) {
		return fmt.Errorf("time: scale must not be negative")
	}
	if !(c.Camera.FollowFraction > 0 && c.Camera.FollowFraction <= 1) {
		return fmt.Errorf("camera: follow_fraction must be in (0, 1], got %v", c.Camera.FollowFraction)
	}
	if c.Comets.TrailCapacity < 1 {
		return fmt.Errorf("comets: trail_capacity must be at least 1")
	}
	if c.Comets.MaxAgeSpan < 1 {
		return fmt.Errorf("comets: max_age_span must be at least 1")
	}
	switch strings.ToLower(c.Camera.ControlMode) {
	case "orbit", "fly":
	default:
		return fmt.Errorf("camera: unknown control_mode %q", c.Camera.ControlMode)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Aspect = 1
	if c.Screen.Height > 0 {
		c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
	}
	c.Derived.FovYRad = c.Camera.FovY * math.Pi / 180

	c.Derived.PlanetIndex = make(map[string]int, len(c.Bodies.Planets))
	for i, p := range c.Bodies.Planets {
		c.Derived.PlanetIndex[p.Name] = i
	}

	c.Derived.RingRadii = make(map[string][2]float64, len(c.Bodies.Rings))
	for _, r := range c.Bodies.Rings {
		owner := c.Bodies.Planets[c.Derived.PlanetIndex[r.Owner]]
		base := owner.Radius * PlanetScale
		c.Derived.RingRadii[r.Owner] = [2]float64{base * r.InnerScale, base * r.OuterScale}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

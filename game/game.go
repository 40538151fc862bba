// Package game owns the orrery state and runs the frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/refdata"
	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// DT is the fixed frame time used by headless runs.
const DT = 1.0 / 60.0

// OrbitSegments is the number of segments in each orbit guide.
const OrbitSegments = 200

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	ScriptedComets int // comets spawned through random pointer positions in headless runs
}

// BodyRecord is the side-table entry linking an orbiting body to its scene
// nodes and render attributes.
type BodyRecord struct {
	ID      systems.BodyID
	Name    string
	Kind    components.BodyKind
	Node    systems.NodeID
	Pivot   systems.NodeID // satellites only, NoNode otherwise
	Radius  float64        // visual radius
	Color   string
	Texture string
	Orbit   []r3.Vec // guide polyline in the orbit centre's frame; nil for the primary
}

// RingRecord is the side-table entry for a ring attachment.
type RingRecord struct {
	Node    systems.NodeID
	Owner   systems.BodyID
	Name    string
	Inner   float64
	Outer   float64
	Color   string
	Texture string
}

// Game holds the complete orrery state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	registry  *systems.OrbitRegistry
	graph     *systems.SceneGraph
	comets    *systems.CometSystem
	picker    *systems.Picker
	selection systems.Selection
	systemReg *systems.SystemRegistry

	view     *camera.View
	director *camera.Director

	refs *refdata.Table
	info Info

	bodies []BodyRecord // indexed by BodyID
	rings  []RingRecord

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	lifetimes *telemetry.LifetimeTracker
	output    *telemetry.OutputManager
	logStats  bool

	// State
	tick     int32
	elapsed  float64 // wall-clock seconds since start
	headless bool
	scripted int
}

// New creates a game from the given config.
func New(cfg *config.Config, opts Options) (*Game, error) {
	refs, err := loadReference(cfg.Reference.Path)
	if err != nil {
		return nil, err
	}

	controlKind, err := camera.ParseControlKind(cfg.Camera.ControlMode)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		registry:  systems.NewOrbitRegistry(),
		graph:     systems.NewSceneGraph(),
		picker:    systems.NewPicker(),
		systemReg: systems.NewSystemRegistry(),
		refs:      refs,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(statsWindow, DT),
		lifetimes: telemetry.NewLifetimeTracker(),
		output:    output,
		logStats:  opts.LogStats,
		headless:  opts.Headless,
		scripted:  opts.ScriptedComets,
	}

	g.comets = systems.NewCometSystem(cometParams(cfg), g.rng)
	g.comets.OnRetire = g.onCometRetired

	g.buildScene()
	g.graph.Resolve()

	cam := cfg.Camera
	g.view = camera.New(vec(cam.Start), r3.Vec{}, cfg.Derived.FovYRad, cfg.Derived.Aspect, cam.Near, cam.Far)
	g.director = camera.NewDirector(
		g.view,
		camera.NewOrbitControl(camera.OrbitParams{
			Damping:     cam.Orbit.Damping,
			MinDistance: cam.Orbit.MinDistance,
			MaxDistance: cam.Orbit.MaxDistance,
			RotateSpeed: cam.Orbit.RotateSpeed,
			ZoomSpeed:   cam.Orbit.ZoomSpeed,
		}),
		camera.NewFlyControl(camera.FlyParams{
			MovementSpeed: cam.Fly.MovementSpeed,
			RollSpeed:     cam.Fly.RollSpeed,
			LookSpeed:     cam.Fly.LookSpeed,
		}),
		g.graph,
		camera.FollowParams{Offset: vec(cam.FollowOffset), Fraction: cam.FollowFraction},
		controlKind,
	)

	return g, nil
}

func loadReference(path string) (*refdata.Table, error) {
	if path == "" {
		return refdata.Default()
	}
	return refdata.Load(path)
}

func cometParams(cfg *config.Config) systems.CometParams {
	c := cfg.Comets
	return systems.CometParams{
		TrailCapacity:  c.TrailCapacity,
		MaxAgeMin:      c.MaxAgeMin,
		MaxAgeSpan:     c.MaxAgeSpan,
		SpeedMin:       c.SpeedMin,
		SpeedSpan:      c.SpeedSpan,
		Jitter:         c.Jitter,
		EscapeDistance: c.EscapeDistance,
	}
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

// buildScene registers every body with the orbit registry, the scene graph
// and the picker. Planets are scene roots so the primary's spin does not
// carry them; satellites hang from a pivot under their planet.
func (g *Game) buildScene() {
	b := g.cfg.Bodies
	spin := g.cfg.Spin

	g.addBody(systems.OrbitingBody{
		Name:     b.Primary.Name,
		Kind:     components.KindPrimary,
		Radius:   b.Primary.Radius * config.PrimaryScale,
		EllipseX: 1,
		EllipseZ: 1,
		SpinRate: spin.Primary,
	}, systems.NoNode, b.Primary.Color, b.Primary.Texture)

	planetIDs := make(map[string]systems.BodyID, len(b.Planets))
	for _, p := range b.Planets {
		id := g.addBody(systems.OrbitingBody{
			Name:         p.Name,
			Kind:         components.KindPlanet,
			Radius:       p.Radius * config.PlanetScale,
			Distance:     p.Distance,
			AngularSpeed: p.Speed,
			EllipseX:     p.EllipseX,
			EllipseZ:     p.EllipseZ,
			InitialPhase: g.rng.Float64() * 2 * math.Pi,
			SpinRate:     spin.Planet,
		}, systems.NoNode, p.Color, p.Texture)
		planetIDs[p.Name] = id
	}

	for _, r := range b.Rings {
		owner := planetIDs[r.Owner]
		radii := g.cfg.Derived.RingRadii[r.Owner]
		name := r.Owner + " rings"
		node := g.graph.AddNode(g.bodies[owner].Node, systems.NodeRing, name, systems.Identity())
		g.rings = append(g.rings, RingRecord{
			Node:    node,
			Owner:   owner,
			Name:    name,
			Inner:   radii[0],
			Outer:   radii[1],
			Color:   r.Color,
			Texture: r.Texture,
		})
		g.picker.AddRing(node, owner, radii[0], radii[1])
	}

	for _, s := range b.Satellites {
		host := planetIDs[s.Primary]
		pivot := g.graph.AddNode(g.bodies[host].Node, systems.NodePivot, s.Name+" pivot",
			systems.Transform{Rotation: systems.RotationX(s.Tilt)})
		g.addBody(systems.OrbitingBody{
			Name:         s.Name,
			Kind:         components.KindSatellite,
			Radius:       s.Radius * config.SatelliteScale,
			Distance:     s.Distance,
			AngularSpeed: s.Speed,
			EllipseX:     1,
			EllipseZ:     1,
			SpinRate:     spin.Satellite,
			Primary:      host,
		}, pivot, s.Color, s.Texture)
	}

	g.syncTransforms()
}

// addBody registers one body everywhere it is needed and returns its ID.
func (g *Game) addBody(body systems.OrbitingBody, parent systems.NodeID, color, texture string) systems.BodyID {
	id := g.registry.Add(body)
	node := g.graph.AddNode(parent, systems.NodeBody, body.Name, systems.Identity())

	rec := BodyRecord{
		ID:      id,
		Name:    body.Name,
		Kind:    body.Kind,
		Node:    node,
		Pivot:   systems.NoNode,
		Radius:  body.Radius,
		Color:   color,
		Texture: texture,
	}
	if body.Kind == components.KindSatellite {
		rec.Pivot = parent
	}
	if body.Kind != components.KindPrimary {
		rec.Orbit = g.registry.OrbitPath(id, OrbitSegments)
	}
	g.bodies = append(g.bodies, rec)
	g.picker.AddSphere(node, id, body.Radius)
	return id
}

// syncTransforms copies orbital offsets and spin angles into the scene graph.
func (g *Game) syncTransforms() {
	for i := range g.bodies {
		rec := &g.bodies[i]
		g.graph.SetLocal(rec.Node, systems.Transform{
			Translation: g.registry.Offset(rec.ID),
			Rotation:    systems.RotationY(g.registry.Spin(rec.ID)),
		})
	}
}

// Update advances the simulation by one frame of dt wall-clock seconds.
func (g *Game) Update(dt float64) {
	g.perf.StartTick()

	g.elapsed += dt
	simTime := g.elapsed * g.cfg.Time.Scale

	g.perf.StartPhase(telemetry.PhaseOrbits)
	g.registry.Advance(simTime)

	g.perf.StartPhase(telemetry.PhaseTransforms)
	g.syncTransforms()
	g.graph.Resolve()

	g.perf.StartPhase(telemetry.PhaseComets)
	g.comets.Tick()

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.director.Update(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.flushTelemetry()

	g.perf.EndTick()
}

// UpdateHeadless runs one fixed-step frame, spawning scripted comets first.
func (g *Game) UpdateHeadless() {
	if g.scripted > 0 {
		g.scripted--
		x := g.rng.Float64()*2 - 1
		y := g.rng.Float64()*2 - 1
		g.HandleDoubleClick(x, y)
	}
	g.Update(DT)
}

// RecordFrame records render-loop frame timing.
func (g *Game) RecordFrame() {
	g.perf.RecordFrame()
}

// Unload flushes and closes telemetry output. Calling it again is a no-op.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.output = nil
}

// Tick returns the number of frames simulated.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the current simulated time.
func (g *Game) SimTime() float64 {
	return g.registry.SimTime()
}

// Config returns the game's configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Bodies returns the body side-table indexed by BodyID.
func (g *Game) Bodies() []BodyRecord {
	return g.bodies
}

// Rings returns the ring side-table.
func (g *Game) Rings() []RingRecord {
	return g.rings
}

// Body looks up a body record by name.
func (g *Game) Body(name string) (BodyRecord, bool) {
	id, ok := g.registry.Lookup(name)
	if !ok {
		return BodyRecord{}, false
	}
	return g.bodies[id], true
}

// Graph returns the scene graph with transforms resolved for this frame.
func (g *Game) Graph() *systems.SceneGraph {
	return g.graph
}

// Comets returns the comet system.
func (g *Game) Comets() *systems.CometSystem {
	return g.comets
}

// View returns the camera view.
func (g *Game) View() *camera.View {
	return g.view
}

// Director returns the camera director.
func (g *Game) Director() *camera.Director {
	return g.director
}

// Systems returns metadata for the per-frame systems.
func (g *Game) Systems() *systems.SystemRegistry {
	return g.systemReg
}

// PerfStats returns rolling timing stats.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perf.Stats()
}

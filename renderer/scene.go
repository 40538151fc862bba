// Package renderer draws the orrery scene with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/game"
	"github.com/pthm-cable/orrery/systems"
)

const (
	sphereRings   = 24
	sphereSlices  = 32
	ringSegments  = 96
	labelFontSize = 12
)

// Layers selects the optional parts of the scene to draw.
type Layers struct {
	Orbits bool
	Trails bool
	Stars  bool
	Labels bool
}

// SceneRenderer draws bodies, rings, orbit guides and comets.
// GPU resources are created on first Draw, after the window exists.
type SceneRenderer struct {
	palette *Palette
	stars   *Starfield

	sphere   rl.Mesh
	models   map[string]rl.Model // textured unit spheres by texture path
	textures []rl.Texture2D

	initialized bool
}

// NewSceneRenderer creates a renderer with a starfield seeded from seed.
func NewSceneRenderer(seed int64, starRadius float64) *SceneRenderer {
	return &SceneRenderer{
		palette: NewPalette(),
		stars:   NewStarfield(seed, starRadius),
		models:  make(map[string]rl.Model),
	}
}

// Init loads textures for every body that has one on disk. Bodies whose
// texture is missing fall back to their flat colour.
func (r *SceneRenderer) Init(g *game.Game) {
	if r.initialized {
		return
	}
	r.sphere = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	for _, b := range g.Bodies() {
		if b.Texture == "" || !rl.FileExists(b.Texture) {
			continue
		}
		if _, ok := r.models[b.Texture]; ok {
			continue
		}
		tex := rl.LoadTexture(b.Texture)
		model := rl.LoadModelFromMesh(r.sphere)
		rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, tex)
		r.models[b.Texture] = model
		r.textures = append(r.textures, tex)
	}
	r.initialized = true
}

// Draw renders the scene from the game's current view.
func (r *SceneRenderer) Draw(g *game.Game, layers Layers) {
	if !r.initialized {
		r.Init(g)
	}

	cam := Camera3D(g.View())
	graph := g.Graph()

	rl.BeginMode3D(cam)

	if layers.Stars {
		r.stars.Draw()
	}
	if layers.Orbits {
		r.drawOrbits(g, graph)
	}
	r.drawBodies(g, graph)
	r.drawRings(g, graph)
	r.drawComets(g, layers.Trails)
	r.drawSelection(g, graph)

	rl.EndMode3D()

	if layers.Labels {
		r.drawLabels(g, graph, cam)
	}
}

func (r *SceneRenderer) drawOrbits(g *game.Game, graph *systems.SceneGraph) {
	for _, b := range g.Bodies() {
		if len(b.Orbit) < 2 {
			continue
		}
		frame := systems.Identity()
		if b.Pivot != systems.NoNode {
			frame = graph.Resolved(b.Pivot)
		}
		color := r.palette.Guide(b.Color)
		prev := vec3(frame.Apply(b.Orbit[len(b.Orbit)-1]))
		for _, p := range b.Orbit {
			cur := vec3(frame.Apply(p))
			rl.DrawLine3D(prev, cur, color)
			prev = cur
		}
	}
}

func (r *SceneRenderer) drawBodies(g *game.Game, graph *systems.SceneGraph) {
	for _, b := range g.Bodies() {
		world := graph.Resolved(b.Node)
		pos := vec3(world.Translation)
		radius := float32(b.Radius)

		model, ok := r.models[b.Texture]
		if !ok {
			rl.DrawSphereEx(pos, radius, sphereRings, sphereSlices, r.palette.Color(b.Color))
			continue
		}
		axis, angle := axisAngle(world.Rotation)
		rl.DrawModelEx(model, pos, axis, angle, rl.NewVector3(radius, radius, radius), rl.White)
	}
}

// drawRings tessellates each annulus in its node's local XZ plane. Both
// windings are emitted so the ring shows from above and below.
func (r *SceneRenderer) drawRings(g *game.Game, graph *systems.SceneGraph) {
	for _, ring := range g.Rings() {
		world := graph.Resolved(ring.Node)
		color := r.palette.Color(ring.Color)
		color.A = 200

		for i := 0; i < ringSegments; i++ {
			a0 := 2 * math.Pi * float64(i) / ringSegments
			a1 := 2 * math.Pi * float64(i+1) / ringSegments
			in0 := vec3(world.Apply(ringPoint(a0, ring.Inner)))
			out0 := vec3(world.Apply(ringPoint(a0, ring.Outer)))
			in1 := vec3(world.Apply(ringPoint(a1, ring.Inner)))
			out1 := vec3(world.Apply(ringPoint(a1, ring.Outer)))

			rl.DrawTriangle3D(in0, out0, out1, color)
			rl.DrawTriangle3D(in0, out1, in1, color)
			rl.DrawTriangle3D(in0, out1, out0, color)
			rl.DrawTriangle3D(in0, in1, out1, color)
		}
	}
}

func ringPoint(angle, radius float64) r3.Vec {
	return r3.Vec{X: math.Cos(angle) * radius, Z: math.Sin(angle) * radius}
}

func (r *SceneRenderer) drawComets(g *game.Game, trails bool) {
	radius := float32(g.Config().Comets.Radius)
	for _, c := range g.Comets().Live() {
		spent := float64(c.Age) / float64(c.MaxAge)
		head := CometColor(spent, 255)
		rl.DrawSphereEx(vec3(c.Position), radius, 6, 8, head)

		if !trails || len(c.Trail) < 2 {
			continue
		}
		n := len(c.Trail)
		for i := 1; i < n; i++ {
			alpha := uint8(200 * float64(n-i) / float64(n))
			rl.DrawLine3D(vec3(c.Trail[i-1]), vec3(c.Trail[i]), CometColor(spent, alpha))
		}
	}
}

func (r *SceneRenderer) drawSelection(g *game.Game, graph *systems.SceneGraph) {
	sel, ok := g.Selected()
	if !ok {
		return
	}
	world := graph.Resolved(sel.Node)
	body := g.Bodies()[sel.Body]
	color := r.palette.Highlight(body.Color)

	switch sel.Kind {
	case components.PickRing:
		prev := vec3(world.Apply(ringPoint(0, sel.Outer*1.03)))
		for i := 1; i <= ringSegments; i++ {
			cur := vec3(world.Apply(ringPoint(2*math.Pi*float64(i)/ringSegments, sel.Outer*1.03)))
			rl.DrawLine3D(prev, cur, color)
			prev = cur
		}
	default:
		rl.DrawSphereWires(vec3(world.Translation), float32(sel.Outer*1.2), 8, 12, color)
	}
}

func (r *SceneRenderer) drawLabels(g *game.Game, graph *systems.SceneGraph, cam rl.Camera3D) {
	forward, _, _ := g.View().Basis()
	eye := g.View().Position
	for _, b := range g.Bodies() {
		pos := graph.Resolved(b.Node).Translation
		if r3.Dot(r3.Sub(pos, eye), forward) <= 0 {
			continue
		}
		anchor := r3.Add(pos, r3.Vec{Y: b.Radius * 1.3})
		screen := rl.GetWorldToScreen(vec3(anchor), cam)
		w := rl.MeasureText(b.Name, labelFontSize)
		rl.DrawText(b.Name, int32(screen.X)-w/2, int32(screen.Y)-labelFontSize, labelFontSize, rl.LightGray)
	}
}

// Unload frees GPU resources.
func (r *SceneRenderer) Unload() {
	if !r.initialized {
		return
	}
	for _, tex := range r.textures {
		rl.UnloadTexture(tex)
	}
	rl.UnloadMesh(&r.sphere)
	r.models = make(map[string]rl.Model)
	r.textures = nil
	r.initialized = false
}

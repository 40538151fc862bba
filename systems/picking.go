package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// parallelEpsilon is the smallest |dir·normal| treated as a plane crossing.
const parallelEpsilon = 1e-9

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

// IntersectSphere returns the nearest non-negative distance at which the ray
// meets the sphere, if any.
func IntersectSphere(ray Ray, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(ray.Origin, center)
	b := r3.Dot(oc, ray.Dir)
	c := r3.Dot(oc, oc) - radius*radius
	disc := b*b - c
	// Negated so a NaN discriminant (degenerate ray) also misses
	if !(disc >= 0) {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		// Origin inside the sphere: take the exit point
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectAnnulus returns the distance at which the ray crosses a flat
// double-sided ring centred at center with the given normal, if the
// crossing lies between the inner and outer radius.
func IntersectAnnulus(ray Ray, center, normal r3.Vec, inner, outer float64) (float64, bool) {
	denom := r3.Dot(ray.Dir, normal)
	if math.Abs(denom) < parallelEpsilon {
		return 0, false
	}
	t := r3.Dot(r3.Sub(center, ray.Origin), normal) / denom
	if !(t >= 0) {
		return 0, false
	}
	r := r3.Norm(r3.Sub(ray.At(t), center))
	if !(r >= inner && r <= outer) {
		return 0, false
	}
	return t, true
}

// Pickable is a scene node the pointer can select.
type Pickable struct {
	Node  NodeID
	Kind  components.PickKind
	Body  BodyID  // owning body; for rings the planet carrying them
	Inner float64 // ring inner radius (rings only)
	Outer float64 // sphere radius, or ring outer radius
}

// Hit is the result of a successful pick.
type Hit struct {
	Target   Pickable
	Distance float64
	Point    r3.Vec
}

// Picker resolves pointer rays against the registered pickables.
type Picker struct {
	targets []Pickable
}

// NewPicker creates an empty picker.
func NewPicker() *Picker {
	return &Picker{}
}

// AddSphere registers a body node with the given radius.
func (p *Picker) AddSphere(node NodeID, body BodyID, radius float64) {
	p.targets = append(p.targets, Pickable{Node: node, Kind: components.PickBody, Body: body, Outer: radius})
}

// AddRing registers a ring node. The ring lies in its node's local XZ plane.
func (p *Picker) AddRing(node NodeID, owner BodyID, inner, outer float64) {
	p.targets = append(p.targets, Pickable{Node: node, Kind: components.PickRing, Body: owner, Inner: inner, Outer: outer})
}

// Pick returns the nearest pickable the ray intersects, using world
// transforms resolved from graph at call time. Equal distances resolve to
// the earliest registered target.
func (p *Picker) Pick(ray Ray, graph *SceneGraph) (Hit, bool) {
	var best Hit
	found := false

	for _, target := range p.targets {
		world := graph.WorldTransform(target.Node)

		var t float64
		var ok bool
		switch target.Kind {
		case components.PickRing:
			t, ok = IntersectAnnulus(ray, world.Translation, world.Rotate(Up), target.Inner, target.Outer)
		default:
			t, ok = IntersectSphere(ray, world.Translation, target.Outer)
		}
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Target: target, Distance: t, Point: ray.At(t)}
			found = true
		}
	}

	return best, found
}

// Selection holds at most one selected pickable.
type Selection struct {
	target Pickable
	active bool
}

// Set replaces the current selection.
func (s *Selection) Set(target Pickable) {
	s.target = target
	s.active = true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.target = Pickable{}
	s.active = false
}

// Selected returns the selected pickable, if any.
func (s *Selection) Selected() (Pickable, bool) {
	return s.target, s.active
}

// Active reports whether anything is selected.
func (s *Selection) Active() bool {
	return s.active
}

// Package systems contains the per-frame simulation systems of the orrery.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// BodyID indexes a body in an OrbitRegistry.
type BodyID int

// NoBody marks the absence of a body.
const NoBody BodyID = -1

// OrbitingBody holds the static kinematic parameters of one body.
// Only InitialPhase is chosen at creation; nothing here changes afterwards.
type OrbitingBody struct {
	Name         string
	Kind         components.BodyKind
	Radius       float64 // visual radius
	Distance     float64 // orbital semi-axis
	AngularSpeed float64 // radians per unit of simulated time
	EllipseX     float64
	EllipseZ     float64
	InitialPhase float64
	SpinRate     float64 // radians added to the spin angle every frame
	Primary      BodyID  // body this one orbits (satellites only)
}

// OrbitalOffset returns the body's offset from the centre of its orbit at
// simulated time t. It is a pure function of t and the static parameters.
// Satellites ignore the elliptical factors.
func OrbitalOffset(b *OrbitingBody, t float64) r3.Vec {
	angle := t*b.AngularSpeed + b.InitialPhase
	fx, fz := b.EllipseX, b.EllipseZ
	if b.Kind == components.KindSatellite {
		fx, fz = 1, 1
	}
	return r3.Vec{
		X: math.Cos(angle) * fx * b.Distance,
		Z: math.Sin(angle) * fz * b.Distance,
	}
}

// OrbitRegistry holds every orbiting body and its per-frame state.
type OrbitRegistry struct {
	bodies  []OrbitingBody
	offsets []r3.Vec
	spins   []float64
	simTime float64
}

// NewOrbitRegistry creates an empty registry.
func NewOrbitRegistry() *OrbitRegistry {
	return &OrbitRegistry{}
}

// Add registers a body and returns its ID. The offset for simulated time 0
// is available immediately.
func (r *OrbitRegistry) Add(b OrbitingBody) BodyID {
	if b.Kind != components.KindSatellite {
		b.Primary = NoBody
	}
	id := BodyID(len(r.bodies))
	r.bodies = append(r.bodies, b)
	r.offsets = append(r.offsets, OrbitalOffset(&r.bodies[id], r.simTime))
	r.spins = append(r.spins, 0)
	return id
}

// Len returns the number of registered bodies.
func (r *OrbitRegistry) Len() int {
	return len(r.bodies)
}

// Body returns the static parameters of a body.
func (r *OrbitRegistry) Body(id BodyID) *OrbitingBody {
	return &r.bodies[id]
}

// Lookup finds a body by name.
func (r *OrbitRegistry) Lookup(name string) (BodyID, bool) {
	for i := range r.bodies {
		if r.bodies[i].Name == name {
			return BodyID(i), true
		}
	}
	return NoBody, false
}

// Advance recomputes every body's orbital offset for simulated time t and
// adds one frame of spin. t must not decrease between calls.
func (r *OrbitRegistry) Advance(t float64) {
	r.simTime = t
	for i := range r.bodies {
		b := &r.bodies[i]
		r.offsets[i] = OrbitalOffset(b, t)
		r.spins[i] = wrapAngle(r.spins[i] + b.SpinRate)
	}
}

// SimTime returns the simulated time of the last Advance.
func (r *OrbitRegistry) SimTime() float64 {
	return r.simTime
}

// Offset returns the body's offset from its orbit centre as of the last Advance.
func (r *OrbitRegistry) Offset(id BodyID) r3.Vec {
	return r.offsets[id]
}

// Spin returns the body's accumulated self-rotation about Y.
func (r *OrbitRegistry) Spin(id BodyID) float64 {
	return r.spins[id]
}

// OrbitPath samples the body's orbit as a closed polyline of n segments
// (n+1 points) in the frame of its orbit centre.
func (r *OrbitRegistry) OrbitPath(id BodyID, n int) []r3.Vec {
	if n < 3 {
		n = 3
	}
	b := r.bodies[id]
	b.InitialPhase = 0
	b.AngularSpeed = 1
	points := make([]r3.Vec, n+1)
	for i := 0; i <= n; i++ {
		points[i] = OrbitalOffset(&b, 2*math.Pi*float64(i)/float64(n))
	}
	return points
}

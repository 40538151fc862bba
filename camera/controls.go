package camera

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/systems"
)

// ControlKind selects the free-camera controller.
type ControlKind uint8

const (
	ControlOrbit ControlKind = iota
	ControlFly
)

func (k ControlKind) String() string {
	switch k {
	case ControlOrbit:
		return "orbit"
	case ControlFly:
		return "fly"
	}
	return "unknown"
}

// ParseControlKind maps a config name to a ControlKind.
func ParseControlKind(s string) (ControlKind, error) {
	switch strings.ToLower(s) {
	case "orbit":
		return ControlOrbit, nil
	case "fly":
		return ControlFly, nil
	}
	return ControlOrbit, fmt.Errorf("unknown control mode %q", s)
}

// OrbitParams configures OrbitControl.
type OrbitParams struct {
	Damping     float64
	MinDistance float64
	MaxDistance float64
	RotateSpeed float64 // radians per pixel of drag
	ZoomSpeed   float64 // fractional distance change per wheel step
}

// polarEpsilon keeps the orbit away from the poles.
const polarEpsilon = 1e-6

// OrbitControl orbits the view around Pivot with damped rotation and
// distance limits.
type OrbitControl struct {
	Params OrbitParams
	Pivot  r3.Vec

	theta, phi, radius float64
	dTheta, dPhi       float64
	scale              float64
}

// NewOrbitControl creates an orbit control around the origin.
func NewOrbitControl(p OrbitParams) *OrbitControl {
	return &OrbitControl{Params: p, scale: 1}
}

// Activate takes the view's current position as the orbit state and points
// the view at the pivot. Pending input is discarded.
func (c *OrbitControl) Activate(v *View) {
	offset := r3.Sub(v.Position, c.Pivot)
	c.radius = r3.Norm(offset)
	if c.radius < 1e-9 {
		c.radius = c.Params.MinDistance
		c.theta, c.phi = 0, math.Pi/2
	} else {
		c.theta = math.Atan2(offset.X, offset.Z)
		c.phi = math.Acos(systems.Clamp(offset.Y/c.radius, -1, 1))
	}
	c.dTheta, c.dPhi, c.scale = 0, 0, 1
	v.LookAt(c.Pivot)
}

// Rotate queues a drag of dx, dy pixels.
func (c *OrbitControl) Rotate(dx, dy float64) {
	c.dTheta -= dx * c.Params.RotateSpeed
	c.dPhi -= dy * c.Params.RotateSpeed
}

// Zoom queues wheel steps; positive moves closer.
func (c *OrbitControl) Zoom(steps float64) {
	c.scale *= math.Pow(1-c.Params.ZoomSpeed, steps)
}

// Update applies one frame of damped motion to the view.
func (c *OrbitControl) Update(v *View) {
	d := c.Params.Damping
	c.theta += c.dTheta * d
	c.phi = systems.Clamp(c.phi+c.dPhi*d, polarEpsilon, math.Pi-polarEpsilon)
	c.dTheta *= 1 - d
	c.dPhi *= 1 - d

	c.radius = systems.Clamp(c.radius*c.scale, c.Params.MinDistance, c.Params.MaxDistance)
	c.scale = 1

	sinPhi := math.Sin(c.phi)
	offset := r3.Vec{
		X: c.radius * sinPhi * math.Sin(c.theta),
		Y: c.radius * math.Cos(c.phi),
		Z: c.radius * sinPhi * math.Cos(c.theta),
	}
	v.Position = r3.Add(c.Pivot, offset)
	v.LookAt(c.Pivot)
}

// Distance returns the current orbit radius.
func (c *OrbitControl) Distance() float64 {
	return c.radius
}

// FlyParams configures FlyControl.
type FlyParams struct {
	MovementSpeed float64 // units per second
	RollSpeed     float64 // radians per second at full input
	LookSpeed     float64 // look input per pixel of drag
}

// FlyControl moves the view freely along its own axes.
type FlyControl struct {
	Params FlyParams

	// Move holds the held movement keys in view space:
	// X right, Y up, Z forward, each in [-1, 1].
	Move r3.Vec
	// Roll is the held roll input in [-1, 1].
	Roll float64

	yaw, pitch float64
}

// NewFlyControl creates a fly control.
func NewFlyControl(p FlyParams) *FlyControl {
	return &FlyControl{Params: p}
}

// Activate clears held input.
func (c *FlyControl) Activate(v *View) {
	c.Move = r3.Vec{}
	c.Roll, c.yaw, c.pitch = 0, 0, 0
}

// Look sets the look rate from a drag of dx, dy pixels. A zero drag stops
// turning.
func (c *FlyControl) Look(dx, dy float64) {
	c.yaw = systems.Clamp(-dx*c.Params.LookSpeed, -1, 1)
	c.pitch = systems.Clamp(-dy*c.Params.LookSpeed, -1, 1)
}

// Update moves and turns the view for a frame of dt seconds.
func (c *FlyControl) Update(v *View, dt float64) {
	forward, right, up := v.Basis()
	focus := r3.Norm(r3.Sub(v.Target, v.Position))
	if focus < 1e-9 {
		focus = 1
	}

	step := dt * c.Params.MovementSpeed
	move := r3.Add(r3.Scale(c.Move.X, right), r3.Add(r3.Scale(c.Move.Y, up), r3.Scale(c.Move.Z, forward)))
	v.Position = r3.Add(v.Position, r3.Scale(step, move))

	turn := dt * c.Params.RollSpeed
	rot := r3.NewRotation(c.yaw*turn, up)
	rot = compose(r3.NewRotation(c.pitch*turn, right), rot)
	rot = compose(r3.NewRotation(-c.Roll*turn, forward), rot)

	forward = rot.Rotate(forward)
	v.Up = rot.Rotate(up)
	v.Target = r3.Add(v.Position, r3.Scale(focus, forward))
}

// compose returns the rotation applying b, then a.
func compose(a, b r3.Rotation) r3.Rotation {
	return systems.Transform{Rotation: a}.Compose(systems.Transform{Rotation: b}).Rotation
}

// Package camera provides the 3D viewpoint and the controllers that drive it.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/systems"
)

// View is a perspective viewpoint looking from Position at Target.
type View struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Vertical field of view in radians
	FovY float64

	Aspect    float64
	Near, Far float64
}

// New creates a view at position looking at target with world up.
func New(position, target r3.Vec, fovY, aspect, near, far float64) *View {
	return &View{
		Position: position,
		Target:   target,
		Up:       systems.Up,
		FovY:     fovY,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

// Basis returns the view's orthonormal forward, right and up vectors.
func (v *View) Basis() (forward, right, up r3.Vec) {
	forward = unitOr(r3.Sub(v.Target, v.Position), r3.Vec{Z: -1})
	right = r3.Cross(forward, v.Up)
	if r3.Norm(right) < 1e-9 {
		// Looking straight along Up: pick any perpendicular
		right = r3.Cross(forward, r3.Vec{Z: 1})
		if r3.Norm(right) < 1e-9 {
			right = r3.Vec{X: 1}
		}
	}
	right = r3.Unit(right)
	up = r3.Cross(right, forward)
	return forward, right, up
}

// LookAt points the view at target, keeping world up.
func (v *View) LookAt(target r3.Vec) {
	v.Target = target
	v.Up = systems.Up
}

// RayFromNDC returns the world ray through a point in normalized device
// coordinates, x to the right and y up, both in [-1, 1].
func (v *View) RayFromNDC(x, y float64) systems.Ray {
	forward, right, up := v.Basis()
	tanHalf := math.Tan(v.FovY / 2)
	dir := r3.Add(forward, r3.Add(
		r3.Scale(x*tanHalf*v.Aspect, right),
		r3.Scale(y*tanHalf, up),
	))
	return systems.Ray{Origin: v.Position, Dir: r3.Unit(dir)}
}

// Resize updates the aspect ratio for a new viewport size.
func (v *View) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.Aspect = float64(width) / float64(height)
}

// ScreenToNDC converts pixel coordinates (origin top-left) to normalized
// device coordinates.
func ScreenToNDC(sx, sy float64, width, height int) (x, y float64) {
	x = sx/float64(width)*2 - 1
	y = -(sy/float64(height)*2 - 1)
	return x, y
}

func unitOr(v, fallback r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < 1e-12 {
		return fallback
	}
	return r3.Scale(1/n, v)
}

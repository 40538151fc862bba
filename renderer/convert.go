package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/camera"
)

// Camera3D converts a view to a raylib perspective camera.
func Camera3D(v *camera.View) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(v.Position),
		Target:     vec3(v.Target),
		Up:         vec3(v.Up),
		Fovy:       float32(v.FovY * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// axisAngle returns the rotation axis and angle in degrees for DrawModelEx.
// A zero quaternion is treated as the identity.
func axisAngle(r r3.Rotation) (rl.Vector3, float32) {
	q := quat.Number(r)
	if q == (quat.Number{}) {
		return rl.NewVector3(0, 1, 0), 0
	}
	q = quat.Scale(1/quat.Abs(q), q)
	w := math.Max(-1, math.Min(1, q.Real))
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return rl.NewVector3(0, 1, 0), 0
	}
	axis := rl.NewVector3(float32(q.Imag/s), float32(q.Jmag/s), float32(q.Kmag/s))
	return axis, float32(2 * math.Acos(w) * 180 / math.Pi)
}

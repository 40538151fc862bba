package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func vecNear(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

// buildSystem returns a graph with a primary, one planet, a pivot and a
// satellite, plus a ring on the planet.
func buildSystem() (g *SceneGraph, planet, pivot, moon, ring NodeID) {
	g = NewSceneGraph()
	sun := g.AddNode(NoNode, NodeBody, "Sun", Identity())
	planet = g.AddNode(sun, NodeBody, "Earth", Transform{Translation: r3.Vec{X: 70}})
	pivot = g.AddNode(planet, NodePivot, "Moon pivot", Identity())
	moon = g.AddNode(pivot, NodeBody, "Moon", Transform{Translation: r3.Vec{X: 7}})
	ring = g.AddNode(planet, NodeRing, "Earth rings", Identity())
	return g, planet, pivot, moon, ring
}

func TestTransform_ZeroValueIsIdentity(t *testing.T) {
	var tr Transform
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := tr.Apply(p); !vecNear(got, p, 1e-12) {
		t.Errorf("zero transform moved point: %v", got)
	}
}

func TestSceneGraph_SatelliteComposition(t *testing.T) {
	g, planet, _, moon, _ := buildSystem()

	if got := g.WorldPosition(moon); !vecNear(got, r3.Vec{X: 77}, 1e-9) {
		t.Errorf("unrotated: expected (77, 0, 0), got %v", got)
	}

	// A quarter spin of the planet carries the satellite around with it
	g.SetLocal(planet, Transform{Translation: r3.Vec{X: 70}, Rotation: RotationY(math.Pi / 2)})
	got := g.WorldPosition(moon)
	if !vecNear(got, r3.Vec{X: 70, Z: -7}, 1e-9) {
		t.Errorf("spun: expected (70, 0, -7), got %v", got)
	}
	if d := r3.Norm(r3.Sub(got, g.WorldPosition(planet))); math.Abs(d-7) > 1e-9 {
		t.Errorf("satellite should stay 7 from its planet, got %f", d)
	}
}

func TestSceneGraph_PivotTilt(t *testing.T) {
	g, _, pivot, moon, _ := buildSystem()
	g.SetLocal(moon, Transform{Translation: r3.Vec{Z: 7}})
	g.SetLocal(pivot, Transform{Rotation: RotationX(math.Pi / 2)})

	got := r3.Sub(g.WorldPosition(moon), r3.Vec{X: 70})
	if !vecNear(got, r3.Vec{Y: -7}, 1e-9) {
		t.Errorf("expected tilted offset (0, -7, 0), got %v", got)
	}
}

func TestSceneGraph_RingFollowsPlanet(t *testing.T) {
	g, planet, _, _, ring := buildSystem()
	local := Transform{Translation: r3.Vec{X: -20, Z: 45}, Rotation: RotationY(1.1)}
	g.SetLocal(planet, local)

	world := g.WorldTransform(ring)
	if !vecNear(world.Translation, g.WorldPosition(planet), 1e-12) {
		t.Errorf("ring centre %v should equal planet centre %v", world.Translation, g.WorldPosition(planet))
	}
	if n := world.Rotate(Up); !vecNear(n, Up, 1e-9) {
		t.Errorf("spin about Y should keep the ring normal vertical, got %v", n)
	}
}

func TestSceneGraph_ResolveMatchesOnDemand(t *testing.T) {
	g, planet, pivot, _, _ := buildSystem()
	g.SetLocal(planet, Transform{Translation: r3.Vec{X: 12, Z: -30}, Rotation: RotationY(0.7)})
	g.SetLocal(pivot, Transform{Rotation: RotationX(0.3)})

	resolved := g.Resolve()
	if len(resolved) != g.Len() {
		t.Fatalf("expected %d transforms, got %d", g.Len(), len(resolved))
	}
	for i := range resolved {
		want := g.WorldTransform(NodeID(i))
		if !vecNear(resolved[i].Translation, want.Translation, 1e-9) {
			t.Errorf("node %d: resolved %v, on-demand %v", i, resolved[i].Translation, want.Translation)
		}
	}
}

func TestSceneGraph_MissingParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown parent")
		}
	}()
	g := NewSceneGraph()
	g.AddNode(3, NodeBody, "orphan", Identity())
}

package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

func TestIntersectSphere(t *testing.T) {
	ray := Ray{Dir: r3.Vec{Z: -1}}

	tests := []struct {
		name   string
		center r3.Vec
		radius float64
		want   float64
		hit    bool
	}{
		{"ahead", r3.Vec{Z: -10}, 1, 9, true},
		{"behind", r3.Vec{Z: 10}, 1, 0, false},
		{"beside", r3.Vec{X: 5, Z: -10}, 1, 0, false},
		{"inside", r3.Vec{}, 2, 2, true},
	}

	for _, tt := range tests {
		got, ok := IntersectSphere(ray, tt.center, tt.radius)
		if ok != tt.hit {
			t.Errorf("%s: hit = %v, want %v", tt.name, ok, tt.hit)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: distance %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestIntersectAnnulus(t *testing.T) {
	center := r3.Vec{}

	if _, ok := IntersectAnnulus(Ray{Origin: r3.Vec{X: 3, Y: 10}, Dir: r3.Vec{Y: -1}}, center, Up, 2, 4); !ok {
		t.Error("expected hit from above")
	}
	if _, ok := IntersectAnnulus(Ray{Origin: r3.Vec{X: 3, Y: -10}, Dir: r3.Vec{Y: 1}}, center, Up, 2, 4); !ok {
		t.Error("expected hit from below")
	}
	if _, ok := IntersectAnnulus(Ray{Origin: r3.Vec{X: 1, Y: 10}, Dir: r3.Vec{Y: -1}}, center, Up, 2, 4); ok {
		t.Error("expected miss through the hole")
	}
	if _, ok := IntersectAnnulus(Ray{Origin: r3.Vec{X: -10, Y: 0}, Dir: r3.Vec{X: 1}}, center, Up, 2, 4); ok {
		t.Error("expected miss for ray parallel to the ring plane")
	}
}

func TestIntersectDegenerateRay(t *testing.T) {
	nan := math.NaN()
	rays := map[string]Ray{
		"nan origin":    {Origin: r3.Vec{X: nan, Y: 10}, Dir: r3.Vec{Y: -1}},
		"nan direction": {Origin: r3.Vec{Y: 10}, Dir: r3.Vec{X: nan, Y: nan, Z: nan}},
	}

	for name, ray := range rays {
		if d, ok := IntersectSphere(ray, r3.Vec{}, 5); ok {
			t.Errorf("%s: sphere reported hit at %f", name, d)
		}
		if d, ok := IntersectAnnulus(ray, r3.Vec{}, Up, 0, 50); ok {
			t.Errorf("%s: annulus reported hit at %f", name, d)
		}
	}

	g := NewSceneGraph()
	body := g.AddNode(NoNode, NodeBody, "body", Transform{})
	ring := g.AddNode(body, NodeRing, "ring", Transform{})
	p := NewPicker()
	p.AddSphere(body, 0, 5)
	p.AddRing(ring, 0, 6, 10)
	if _, ok := p.Pick(rays["nan direction"], g); ok {
		t.Error("picker selected something with a NaN ray")
	}
}

func TestPicker_Empty(t *testing.T) {
	p := NewPicker()
	if _, ok := p.Pick(Ray{Dir: r3.Vec{Z: -1}}, NewSceneGraph()); ok {
		t.Error("expected no hit with no targets")
	}
}

func TestPicker_NearestWins(t *testing.T) {
	g := NewSceneGraph()
	far := g.AddNode(NoNode, NodeBody, "far", Transform{Translation: r3.Vec{Z: -20}})
	near := g.AddNode(NoNode, NodeBody, "near", Transform{Translation: r3.Vec{Z: -10}})

	p := NewPicker()
	p.AddSphere(far, 0, 1)
	p.AddSphere(near, 1, 1)

	hit, ok := p.Pick(Ray{Dir: r3.Vec{Z: -1}}, g)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Target.Node != near {
		t.Errorf("expected nearest node %d, got %d", near, hit.Target.Node)
	}
	if math.Abs(hit.Distance-9) > 1e-9 {
		t.Errorf("expected distance 9, got %f", hit.Distance)
	}

	if _, ok := p.Pick(Ray{Dir: r3.Vec{Y: 1}}, g); ok {
		t.Error("expected miss for ray pointing away")
	}
}

func TestPicker_RingAndPlanet(t *testing.T) {
	g := NewSceneGraph()
	planet := g.AddNode(NoNode, NodeBody, "Saturn", Transform{Translation: r3.Vec{Z: -50}})
	ring := g.AddNode(planet, NodeRing, "Saturn rings", Identity())

	p := NewPicker()
	p.AddSphere(planet, 0, 1)
	p.AddRing(ring, 0, 2, 4)

	hit, ok := p.Pick(Ray{Origin: r3.Vec{X: 3, Y: 10, Z: -50}, Dir: r3.Vec{Y: -1}}, g)
	if !ok || hit.Target.Kind != components.PickRing {
		t.Errorf("expected ring hit, got %+v (%v)", hit, ok)
	}

	hit, ok = p.Pick(Ray{Origin: r3.Vec{Y: 10, Z: -50}, Dir: r3.Vec{Y: -1}}, g)
	if !ok || hit.Target.Kind != components.PickBody {
		t.Errorf("expected planet hit through the ring hole, got %+v (%v)", hit, ok)
	}

	// Moving the planet carries the ring, and picking sees it at once
	g.SetLocal(planet, Transform{Translation: r3.Vec{X: 100, Z: -50}})
	if _, ok := p.Pick(Ray{Origin: r3.Vec{X: 103, Y: 10, Z: -50}, Dir: r3.Vec{Y: -1}}, g); !ok {
		t.Error("expected ring hit at the planet's new position")
	}
}

func TestPicker_TieBreakIsRegistrationOrder(t *testing.T) {
	g := NewSceneGraph()
	a := g.AddNode(NoNode, NodeBody, "a", Transform{Translation: r3.Vec{Z: -10}})
	b := g.AddNode(NoNode, NodeBody, "b", Transform{Translation: r3.Vec{Z: -10}})

	p := NewPicker()
	p.AddSphere(a, 0, 1)
	p.AddSphere(b, 1, 1)

	for i := 0; i < 10; i++ {
		hit, _ := p.Pick(Ray{Dir: r3.Vec{Z: -1}}, g)
		if hit.Target.Node != a {
			t.Fatalf("expected first registered node, got %d", hit.Target.Node)
		}
	}
}

func TestSelection(t *testing.T) {
	var s Selection
	if _, ok := s.Selected(); ok {
		t.Error("expected empty selection")
	}

	s.Set(Pickable{Node: 3})
	s.Set(Pickable{Node: 5})
	if got, ok := s.Selected(); !ok || got.Node != 5 {
		t.Errorf("expected node 5 selected, got %v (%v)", got.Node, ok)
	}

	s.Clear()
	if s.Active() {
		t.Error("expected selection cleared")
	}
}

package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/orrery/components"
)

func TestOrbitalOffset_QuarterTurn(t *testing.T) {
	b := OrbitingBody{Kind: components.KindPlanet, Distance: 70, AngularSpeed: 1, EllipseX: 1, EllipseZ: 0.88}

	p := OrbitalOffset(&b, 0)
	if math.Abs(p.X-70) > 1e-9 || p.Y != 0 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("t=0: expected (70, 0, 0), got %v", p)
	}

	p = OrbitalOffset(&b, math.Pi/2)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Z-61.6) > 1e-9 {
		t.Errorf("t=pi/2: expected (~0, 0, 61.6), got %v", p)
	}
}

func TestOrbitalOffset_SatelliteIgnoresEllipse(t *testing.T) {
	b := OrbitingBody{Kind: components.KindSatellite, Distance: 7, AngularSpeed: 9, EllipseX: 0.5, EllipseZ: 0.5}

	for _, tm := range []float64{0, 0.3, 1.7, 12} {
		r := math.Hypot(OrbitalOffset(&b, tm).X, OrbitalOffset(&b, tm).Z)
		if math.Abs(r-7) > 1e-9 {
			t.Errorf("t=%v: expected circular radius 7, got %f", tm, r)
		}
	}
}

func TestOrbitRegistry_Deterministic(t *testing.T) {
	build := func() *OrbitRegistry {
		r := NewOrbitRegistry()
		r.Add(OrbitingBody{Name: "a", Kind: components.KindPlanet, Distance: 30, AngularSpeed: 4.15, EllipseX: 1, EllipseZ: 0.85, InitialPhase: 1.2})
		r.Add(OrbitingBody{Name: "b", Kind: components.KindPlanet, Distance: 250, AngularSpeed: 0.006, EllipseX: 1, EllipseZ: 0.78, InitialPhase: 4.4})
		return r
	}

	r1 := build()
	r1.Advance(5)
	r1.Advance(123.456)

	r2 := build()
	r2.Advance(123.456)

	for i := 0; i < r1.Len(); i++ {
		if r1.Offset(BodyID(i)) != r2.Offset(BodyID(i)) {
			t.Errorf("body %d: offset depends on history: %v vs %v", i, r1.Offset(BodyID(i)), r2.Offset(BodyID(i)))
		}
	}
}

func TestOrbitRegistry_AddMakesOffsetAvailable(t *testing.T) {
	r := NewOrbitRegistry()
	id := r.Add(OrbitingBody{Kind: components.KindPlanet, Distance: 50, AngularSpeed: 1, EllipseX: 1, EllipseZ: 1})

	if math.Abs(r.Offset(id).X-50) > 1e-9 {
		t.Errorf("expected offset at t=0 immediately after Add, got %v", r.Offset(id))
	}
	if r.Body(id).Primary != NoBody {
		t.Errorf("planet should have no primary, got %d", r.Body(id).Primary)
	}
}

func TestOrbitRegistry_SpinWraps(t *testing.T) {
	r := NewOrbitRegistry()
	id := r.Add(OrbitingBody{Kind: components.KindPlanet, SpinRate: 1})

	for i := 0; i < 100; i++ {
		r.Advance(float64(i))
		s := r.Spin(id)
		if s < 0 || s >= 2*math.Pi {
			t.Fatalf("spin %f out of [0, 2pi)", s)
		}
	}
}

func TestOrbitRegistry_Lookup(t *testing.T) {
	r := NewOrbitRegistry()
	r.Add(OrbitingBody{Name: "Sun", Kind: components.KindPrimary})
	earth := r.Add(OrbitingBody{Name: "Earth", Kind: components.KindPlanet})

	if id, ok := r.Lookup("Earth"); !ok || id != earth {
		t.Errorf("expected Earth at %d, got %d (%v)", earth, id, ok)
	}
	if _, ok := r.Lookup("Pluto"); ok {
		t.Error("expected lookup miss for unknown body")
	}
}

func TestOrbitPath_Closed(t *testing.T) {
	r := NewOrbitRegistry()
	id := r.Add(OrbitingBody{Kind: components.KindPlanet, Distance: 90, AngularSpeed: 0.53, EllipseX: 1, EllipseZ: 0.83, InitialPhase: 2})

	path := r.OrbitPath(id, 200)
	if len(path) != 201 {
		t.Fatalf("expected 201 points, got %d", len(path))
	}
	first, last := path[0], path[len(path)-1]
	if math.Abs(first.X-last.X) > 1e-9 || math.Abs(first.Z-last.Z) > 1e-9 {
		t.Errorf("path not closed: %v vs %v", first, last)
	}
	if math.Abs(first.X-90) > 1e-9 {
		t.Errorf("path should start at phase 0, got %v", first)
	}
}

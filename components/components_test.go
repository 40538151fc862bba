package components

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewTrailPadsWithOrigin(t *testing.T) {
	origin := r3.Vec{X: 10, Y: -5, Z: 3}
	tr := NewTrail(50, origin)

	if tr.Capacity() != 50 {
		t.Fatalf("expected capacity 50, got %d", tr.Capacity())
	}
	if len(tr.Samples) != 0 {
		t.Errorf("expected empty history, got %d samples", len(tr.Samples))
	}
	for i, p := range tr.Buffer {
		if p != origin {
			t.Fatalf("buffer[%d] = %v, want %v", i, p, origin)
		}
	}
}

func TestTrailPushMostRecentFirst(t *testing.T) {
	tr := NewTrail(4, r3.Vec{})
	for i := 1; i <= 3; i++ {
		tr.Push(r3.Vec{X: float64(i)})
	}

	want := []float64{3, 2, 1}
	for i, x := range want {
		if tr.Samples[i].X != x {
			t.Errorf("samples[%d].X = %v, want %v", i, tr.Samples[i].X, x)
		}
	}

	// Padding repeats the oldest sample, not the spawn origin
	if tr.Buffer[3].X != 1 {
		t.Errorf("expected padding with oldest sample 1, got %v", tr.Buffer[3].X)
	}
}

func TestTrailEvictsOldest(t *testing.T) {
	tr := NewTrail(3, r3.Vec{})
	for i := 1; i <= 5; i++ {
		tr.Push(r3.Vec{X: float64(i)})
		if len(tr.Samples) > tr.Capacity() {
			t.Fatalf("history grew past capacity: %d", len(tr.Samples))
		}
		if len(tr.Buffer) != tr.Capacity() {
			t.Fatalf("buffer length %d, want %d", len(tr.Buffer), tr.Capacity())
		}
	}

	want := []float64{5, 4, 3}
	for i, x := range want {
		if tr.Buffer[i].X != x {
			t.Errorf("buffer[%d].X = %v, want %v", i, tr.Buffer[i].X, x)
		}
	}
}

func TestTrailCapacityOne(t *testing.T) {
	tr := NewTrail(1, r3.Vec{})
	tr.Push(r3.Vec{X: 1})
	tr.Push(r3.Vec{X: 2})

	if len(tr.Samples) != 1 || tr.Samples[0].X != 2 {
		t.Errorf("expected single newest sample 2, got %v", tr.Samples)
	}
	if tr.Buffer[0].X != 2 {
		t.Errorf("expected buffer [2], got %v", tr.Buffer)
	}
}

func TestKindNames(t *testing.T) {
	if KindSatellite.String() != "Satellite" {
		t.Errorf("unexpected name %q", KindSatellite.String())
	}
	if BodyKind(99).String() != "Unknown" {
		t.Errorf("expected Unknown for out-of-range kind")
	}
	if RetireEscaped.String() != "escaped" {
		t.Errorf("unexpected reason %q", RetireEscaped.String())
	}
}

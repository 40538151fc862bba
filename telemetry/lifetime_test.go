package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestLifetimeTrackerRetire(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, 100, r3.Vec{X: 3})

	rec, ok := lt.Retire(7, 900, 800, 800, r3.Vec{X: 3, Y: 4}, "expired")
	if !ok {
		t.Fatal("expected record for registered comet")
	}
	if rec.SpawnTick != 100 || rec.EndTick != 900 || rec.Reason != "expired" {
		t.Errorf("unexpected record %+v", rec)
	}
	if math.Abs(rec.Travelled-4) > 1e-9 {
		t.Errorf("travelled = %v, want 4", rec.Travelled)
	}
	if lt.Count() != 0 {
		t.Errorf("expected comet removed, %d tracked", lt.Count())
	}

	if _, ok := lt.Retire(7, 901, 801, 800, r3.Vec{}, "expired"); ok {
		t.Error("second retirement should not produce a record")
	}
}

func TestLifetimeTrackerForget(t *testing.T) {
	lt := NewLifetimeTracker()
	for i := uint32(0); i < 5; i++ {
		lt.Register(i, 0, r3.Vec{})
	}
	lt.Forget()
	if lt.Count() != 0 {
		t.Errorf("expected empty tracker, got %d", lt.Count())
	}
}

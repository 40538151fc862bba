// Package components defines ECS components and shared entity kinds for the orrery.
package components

import "gonum.org/v1/gonum/spatial/r3"

// BodyKind classifies an orbiting body.
type BodyKind uint8

const (
	KindPrimary   BodyKind = iota // Central body, does not orbit
	KindPlanet                    // Orbits the primary on an ellipse
	KindSatellite                 // Orbits a planet on a circle in a tilted plane
)

// PickKind classifies a pickable scene entity.
type PickKind uint8

const (
	PickBody PickKind = iota // Primary, planet or satellite sphere
	PickRing                 // Flat annulus riding a planet
)

// Position is a comet's world position.
type Position struct {
	r3.Vec
}

// Velocity is a comet's per-frame displacement, fixed at spawn.
type Velocity struct {
	r3.Vec
}

// Lifetime tracks a comet's age in frames.
type Lifetime struct {
	ID     uint32 // Spawn serial, stable for telemetry
	Age    int32
	MaxAge int32
}

// Trail holds a comet's position history, most recent first.
// Samples never exceeds the capacity of Buffer; Buffer always has
// exactly capacity entries, padded with the oldest known sample.
type Trail struct {
	Samples []r3.Vec
	Buffer  []r3.Vec
}

// NewTrail creates a trail of the given capacity whose buffer is filled
// with origin so that no sample ever sits at the world origin by accident.
func NewTrail(capacity int, origin r3.Vec) Trail {
	t := Trail{
		Samples: make([]r3.Vec, 0, capacity),
		Buffer:  make([]r3.Vec, capacity),
	}
	for i := range t.Buffer {
		t.Buffer[i] = origin
	}
	return t
}

// Capacity returns the fixed trail length.
func (t *Trail) Capacity() int {
	return len(t.Buffer)
}

// Push records p as the newest sample, evicting the oldest when full,
// then rebuilds the padded buffer.
func (t *Trail) Push(p r3.Vec) {
	capacity := len(t.Buffer)
	if len(t.Samples) < capacity {
		t.Samples = t.Samples[:len(t.Samples)+1]
	}
	// Shift toward the back; the last slot falls off when full
	copy(t.Samples[1:], t.Samples[:len(t.Samples)-1])
	t.Samples[0] = p
	t.rebuild(p)
}

// rebuild copies samples into the buffer and pads with the oldest sample.
// fallback is used only when there are no samples at all.
func (t *Trail) rebuild(fallback r3.Vec) {
	n := copy(t.Buffer, t.Samples)
	last := fallback
	if n > 0 {
		last = t.Samples[n-1]
	}
	for i := n; i < len(t.Buffer); i++ {
		t.Buffer[i] = last
	}
}

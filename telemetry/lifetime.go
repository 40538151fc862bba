package telemetry

import "gonum.org/v1/gonum/spatial/r3"

// CometRecord is the ledger row written when a comet retires.
type CometRecord struct {
	ID        uint32  `csv:"id"`
	SpawnTick int32   `csv:"spawn_tick"`
	EndTick   int32   `csv:"end_tick"`
	Age       int32   `csv:"age"`
	MaxAge    int32   `csv:"max_age"`
	Reason    string  `csv:"reason"`
	SpawnX    float64 `csv:"spawn_x"`
	SpawnY    float64 `csv:"spawn_y"`
	SpawnZ    float64 `csv:"spawn_z"`
	EndX      float64 `csv:"end_x"`
	EndY      float64 `csv:"end_y"`
	EndZ      float64 `csv:"end_z"`
	Travelled float64 `csv:"travelled"`
}

type cometEntry struct {
	spawnTick int32
	origin    r3.Vec
}

// LifetimeTracker remembers where and when each live comet was spawned so
// a full record can be produced when it retires.
type LifetimeTracker struct {
	live map[uint32]cometEntry
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		live: make(map[uint32]cometEntry),
	}
}

// Register records a newly spawned comet.
func (lt *LifetimeTracker) Register(id uint32, spawnTick int32, origin r3.Vec) {
	lt.live[id] = cometEntry{spawnTick: spawnTick, origin: origin}
}

// Retire removes a comet and returns its ledger row. The second result is
// false for comets that were never registered.
func (lt *LifetimeTracker) Retire(id uint32, endTick, age, maxAge int32, end r3.Vec, reason string) (CometRecord, bool) {
	entry, ok := lt.live[id]
	if !ok {
		return CometRecord{}, false
	}
	delete(lt.live, id)

	return CometRecord{
		ID:        id,
		SpawnTick: entry.spawnTick,
		EndTick:   endTick,
		Age:       age,
		MaxAge:    maxAge,
		Reason:    reason,
		SpawnX:    entry.origin.X,
		SpawnY:    entry.origin.Y,
		SpawnZ:    entry.origin.Z,
		EndX:      end.X,
		EndY:      end.Y,
		EndZ:      end.Z,
		Travelled: r3.Norm(r3.Sub(end, entry.origin)),
	}, true
}

// Forget drops every tracked comet without producing records.
func (lt *LifetimeTracker) Forget() {
	clear(lt.live)
}

// Count returns the number of tracked comets.
func (lt *LifetimeTracker) Count() int {
	return len(lt.live)
}

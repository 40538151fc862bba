package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	counts [eventCount]int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// dt: nominal seconds per tick, used to size the window in ticks
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
	}
}

// Record counts one event in the current window.
func (c *Collector) Record(e EventType) {
	if c == nil || e >= eventCount {
		return
	}
	c.counts[e]++
}

// Count returns the current window's count for an event.
func (c *Collector) Count(e EventType) int {
	if c == nil || e >= eventCount {
		return 0
	}
	return c.counts[e]
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// wallTime is the elapsed wall-clock seconds of the run, which differs from
// ticks*dt when frames vary in length. ages holds the age in ticks of every
// live comet at window end.
func (c *Collector) Flush(currentTick int32, wallTime, simTime float64, ages []float64) WindowStats {
	mean, p50, p90, oldest := ComputeAgeStats(ages)

	var suppressRate, missRate float64
	if attempts := c.counts[EventCometSpawned] + c.counts[EventSpawnSuppressed]; attempts > 0 {
		suppressRate = float64(c.counts[EventSpawnSuppressed]) / float64(attempts)
	}
	if clicks := c.counts[EventPick] + c.counts[EventPickMiss]; clicks > 0 {
		missRate = float64(c.counts[EventPickMiss]) / float64(clicks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		WallTimeSec:     wallTime,
		SimTime:         simTime,

		LiveComets: len(ages),

		CometsSpawned:    c.counts[EventCometSpawned],
		SpawnsSuppressed: c.counts[EventSpawnSuppressed],
		CometsExpired:    c.counts[EventCometExpired],
		CometsEscaped:    c.counts[EventCometEscaped],
		SuppressRate:     suppressRate,

		Picks:          c.counts[EventPick],
		PickMisses:     c.counts[EventPickMiss],
		MissRate:       missRate,
		Resets:         c.counts[EventReset],
		ControlChanges: c.counts[EventControlChange],

		AgeMean: mean,
		AgeP50:  p50,
		AgeP90:  p90,
		AgeMax:  oldest,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.counts = [eventCount]int{}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

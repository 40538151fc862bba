package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	WallTimeSec     float64 `csv:"wall_time"`
	SimTime         float64 `csv:"sim_time"`

	// Comet population at window end
	LiveComets int `csv:"live_comets"`

	// Comet events during window
	CometsSpawned    int     `csv:"comets_spawned"`
	SpawnsSuppressed int     `csv:"spawns_suppressed"`
	CometsExpired    int     `csv:"comets_expired"`
	CometsEscaped    int     `csv:"comets_escaped"`
	SuppressRate     float64 `csv:"suppress_rate"`

	// Interaction
	Picks          int     `csv:"picks"`
	PickMisses     int     `csv:"pick_misses"`
	MissRate       float64 `csv:"miss_rate"`
	Resets         int     `csv:"resets"`
	ControlChanges int     `csv:"control_changes"`

	// Age distribution of live comets, in ticks
	AgeMean float64 `csv:"age_mean"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`
	AgeMax  float64 `csv:"age_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeAgeStats calculates mean, median, p90 and maximum of the values.
func ComputeAgeStats(values []float64) (mean, p50, p90, oldest float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = floats.Sum(values) / float64(n)
	oldest = floats.Max(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p50, p90, oldest
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("live_comets", s.LiveComets),
		slog.Int("comets_spawned", s.CometsSpawned),
		slog.Int("comets_expired", s.CometsExpired),
		slog.Int("comets_escaped", s.CometsEscaped),
		slog.Int("picks", s.Picks),
		slog.Int("pick_misses", s.PickMisses),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"wall_time", s.WallTimeSec,
		"sim_time", s.SimTime,
		"live_comets", s.LiveComets,
		"comets_spawned", s.CometsSpawned,
		"spawns_suppressed", s.SpawnsSuppressed,
		"comets_expired", s.CometsExpired,
		"comets_escaped", s.CometsEscaped,
		"suppress_rate", s.SuppressRate,
		"picks", s.Picks,
		"pick_misses", s.PickMisses,
		"miss_rate", s.MissRate,
		"resets", s.Resets,
		"control_changes", s.ControlChanges,
		"age_mean", s.AgeMean,
		"age_p50", s.AgeP50,
		"age_p90", s.AgeP90,
		"age_max", s.AgeMax,
	)
}

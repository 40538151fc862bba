package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the frame step, in execution order.
const (
	PhaseOrbits     = "orbits"
	PhaseTransforms = "transforms"
	PhaseComets     = "comets"
	PhaseCamera     = "camera"
	PhaseTelemetry  = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{PhaseOrbits, PhaseTransforms, PhaseComets, PhaseCamera, PhaseTelemetry}

// phaseCount is len(Phases).
const phaseCount = 5

// noPhase marks that no phase is being timed.
const noPhase = -1

func phaseIndex(name string) int {
	for i, p := range Phases {
		if p == name {
			return i
		}
	}
	return noPhase
}

// frameSample is the timing of one frame step, phases indexed like Phases.
type frameSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector keeps a ring of recent frame timings.
type PerfCollector struct {
	ring  []frameSample
	next  int
	count int

	cur        frameSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over the last windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]frameSample, windowSize), phase: noPhase}
}

// StartTick begins timing a frame step.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = frameSample{}
	p.phase = noPhase
}

// StartPhase closes the running phase and starts timing the named one.
// Names outside Phases are not recorded.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseIndex(name)
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != noPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes the frame step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = noPhase
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks a presented frame in windowed runs.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds timings averaged over the collector's window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MaxTickDuration time.Duration
	PhasePct        map[string]float64 // share of the average step, in percent
	TicksPerSecond  float64
	FPS             float64 // zero in headless runs
}

// Stats averages the stored samples.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{PhasePct: make(map[string]float64, len(Phases))}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phases [phaseCount]time.Duration
	for _, sample := range p.ring[:p.count] {
		total += sample.total
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)
		for i, d := range sample.phases {
			phases[i] += d
		}
	}

	s.AvgTickDuration = total / time.Duration(p.count)
	if total > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
		for i, name := range Phases {
			s.PhasePct[name] = float64(phases[i]) / float64(total) * 100
		}
	}
	return s
}

// LogStats logs the timings at Info.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, name := range Phases {
		attrs = append(attrs, name+"_pct", float64(int(s.PhasePct[name]*10))/10)
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	FPS           float64 `csv:"fps"`
	OrbitsPct     float64 `csv:"orbits_pct"`
	TransformsPct float64 `csv:"transforms_pct"`
	CometsPct     float64 `csv:"comets_pct"`
	CameraPct     float64 `csv:"camera_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		FPS:           s.FPS,
		OrbitsPct:     s.PhasePct[PhaseOrbits],
		TransformsPct: s.PhasePct[PhaseTransforms],
		CometsPct:     s.PhasePct[PhaseComets],
		CameraPct:     s.PhasePct[PhaseCamera],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}

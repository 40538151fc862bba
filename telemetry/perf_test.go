package telemetry

import (
	"testing"
	"time"
)

func runTicks(pc *PerfCollector, n int, orbits, comets time.Duration) {
	for i := 0; i < n; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseOrbits)
		time.Sleep(orbits)
		pc.StartPhase(PhaseComets)
		time.Sleep(comets)
		pc.EndTick()
	}
}

func TestPerfCollectorPhaseShares(t *testing.T) {
	pc := NewPerfCollector(10)
	runTicks(pc, 5, 50*time.Microsecond, 500*time.Microsecond)

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Fatalf("expected positive timings, got %+v", stats)
	}
	if stats.MaxTickDuration < stats.AvgTickDuration {
		t.Errorf("max %v below average %v", stats.MaxTickDuration, stats.AvgTickDuration)
	}
	if stats.PhasePct[PhaseComets] <= stats.PhasePct[PhaseOrbits] {
		t.Errorf("comets %.1f%% should exceed orbits %.1f%%",
			stats.PhasePct[PhaseComets], stats.PhasePct[PhaseOrbits])
	}
	if sum := stats.PhasePct[PhaseComets] + stats.PhasePct[PhaseOrbits]; sum > 100.0001 {
		t.Errorf("phase shares sum to %.2f%%", sum)
	}
	if stats.PhasePct[PhaseCamera] != 0 {
		t.Errorf("untimed phase should be 0%%, got %v", stats.PhasePct[PhaseCamera])
	}
}

func TestPerfCollectorIgnoresUnknownPhase(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartTick()
	pc.StartPhase("render")
	pc.StartPhase(PhaseOrbits)
	pc.EndTick()

	stats := pc.Stats()
	if _, ok := stats.PhasePct["render"]; ok {
		t.Error("unknown phase should not be reported")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)
	runTicks(pc, 3, 0, 2*time.Millisecond)
	runTicks(pc, 3, 0, 0)

	// The slow ticks have rolled out of the window
	if avg := pc.Stats().AvgTickDuration; avg >= 2*time.Millisecond {
		t.Errorf("expected old samples evicted, avg %v", avg)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTickDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct")
	}
}

func TestPerfCollectorFrameRate(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	fps := pc.Stats().FPS
	if fps < 20 || fps > 80 {
		t.Errorf("expected FPS between 20 and 80 for 16ms frames, got %v", fps)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhaseComets: 40, PhaseCamera: 5},
	}
	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 1500 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.CometsPct != 40 || row.CameraPct != 5 || row.OrbitsPct != 0 {
		t.Errorf("phase columns %+v", row)
	}
}

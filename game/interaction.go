package game

import (
	"log/slog"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// Pick casts a ray through the pointer position given in normalized device
// coordinates against the transforms resolved this frame.
func (g *Game) Pick(x, y float64) (systems.Hit, bool) {
	return g.picker.Pick(g.view.RayFromNDC(x, y), g.graph)
}

// HandleClick selects the nearest entity under the pointer. A miss leaves
// the selection and info panel untouched. It reports whether anything was hit.
func (g *Game) HandleClick(x, y float64) bool {
	hit, ok := g.Pick(x, y)
	if !ok {
		g.collector.Record(telemetry.EventPickMiss)
		return false
	}
	g.collector.Record(telemetry.EventPick)

	g.selection.Set(hit.Target)
	if info, ok := g.project(hit.Target); ok {
		g.info = info
	}
	g.director.Follow(hit.Target.Node)

	slog.Debug("selection_changed",
		"node", g.graph.Node(hit.Target.Node).Name,
		"kind", hit.Target.Kind.String(),
		"distance", hit.Distance,
		"tick", g.tick,
	)
	return true
}

// HandleDoubleClick spawns a comet along the pointer ray at the configured
// spawn distance from the camera. The gesture is ignored while something is
// selected or when the ray hits a body or ring. It reports whether a comet
// was spawned.
func (g *Game) HandleDoubleClick(x, y float64) bool {
	if g.selection.Active() {
		g.collector.Record(telemetry.EventSpawnSuppressed)
		return false
	}
	ray := g.view.RayFromNDC(x, y)
	if _, hit := g.picker.Pick(ray, g.graph); hit {
		g.collector.Record(telemetry.EventSpawnSuppressed)
		return false
	}

	origin := ray.At(g.cfg.Comets.SpawnDistance)
	id := g.comets.Spawn(origin)
	g.lifetimes.Register(id, g.tick, origin)
	g.collector.Record(telemetry.EventCometSpawned)

	slog.Debug("comet_spawned", "id", id, "x", origin.X, "y", origin.Y, "z", origin.Z, "tick", g.tick)
	return true
}

// Reset clears the selection unconditionally, blanks the info panel and
// hands the camera back to the most recently chosen free control.
func (g *Game) Reset() {
	was := g.selection.Active()
	g.selection.Clear()
	g.info = Info{}
	g.director.Release()
	g.collector.Record(telemetry.EventReset)

	slog.Debug("selection_cleared", "had_selection", was, "control", g.director.Control().String())
}

// ClearComets removes every live comet without writing ledger rows.
func (g *Game) ClearComets() {
	n := g.comets.Len()
	g.comets.Clear()
	g.lifetimes.Forget()
	slog.Debug("comets_cleared", "count", n, "tick", g.tick)
}

// SetControlMode requests a free-camera control. While something is
// selected the change is deferred until Reset.
func (g *Game) SetControlMode(kind camera.ControlKind) {
	if kind == g.director.Requested() {
		return
	}
	g.collector.Record(telemetry.EventControlChange)
	g.director.SetControlMode(kind)
}

// Selected returns the current selection, if any.
func (g *Game) Selected() (systems.Pickable, bool) {
	return g.selection.Selected()
}

// SelectedName returns the display name of the selection, or "".
func (g *Game) SelectedName() string {
	target, ok := g.selection.Selected()
	if !ok {
		return ""
	}
	if target.Kind == components.PickRing {
		return g.graph.Node(target.Node).Name
	}
	return g.bodies[target.Body].Name
}

// Info returns the info panel fields.
func (g *Game) Info() Info {
	return g.info
}

package camera

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/systems"
)

// Mode is the director's high-level state.
type Mode uint8

const (
	ModeFree Mode = iota
	ModeFollowing
)

func (m Mode) String() string {
	if m == ModeFollowing {
		return "following"
	}
	return "free"
}

// Locator resolves a scene node to its current world position.
// *systems.SceneGraph satisfies it.
type Locator interface {
	WorldPosition(id systems.NodeID) r3.Vec
}

// FollowParams configures follow mode.
type FollowParams struct {
	Offset   r3.Vec  // world-space offset from the target
	Fraction float64 // share of the remaining gap closed per frame
}

// Director decides each frame whether the view follows a selected node or
// is driven by the free control.
type Director struct {
	view    *View
	orbit   *OrbitControl
	fly     *FlyControl
	locator Locator
	follow  FollowParams

	mode    Mode
	control ControlKind // controller currently driving free mode
	chosen  ControlKind // most recently requested controller
	target  systems.NodeID
}

// NewDirector creates a director in free mode with the given controller active.
func NewDirector(view *View, orbit *OrbitControl, fly *FlyControl, locator Locator, follow FollowParams, kind ControlKind) *Director {
	d := &Director{
		view:    view,
		orbit:   orbit,
		fly:     fly,
		locator: locator,
		follow:  follow,
		control: kind,
		chosen:  kind,
		target:  systems.NoNode,
	}
	d.activate()
	return d
}

func (d *Director) activate() {
	switch d.control {
	case ControlFly:
		d.fly.Activate(d.view)
	default:
		d.orbit.Activate(d.view)
	}
}

// Follow switches to following the given node. The free control is
// suspended until Release.
func (d *Director) Follow(node systems.NodeID) {
	d.mode = ModeFollowing
	d.target = node
	d.view.Up = systems.Up
}

// Release returns to free mode using the most recently requested control.
func (d *Director) Release() {
	d.mode = ModeFree
	d.target = systems.NoNode
	d.control = d.chosen
	d.activate()
}

// SetControlMode requests a free-camera controller. While following, the
// request is recorded but not applied; it reports whether the change took
// effect now.
func (d *Director) SetControlMode(kind ControlKind) bool {
	d.chosen = kind
	if d.mode == ModeFollowing {
		slog.Debug("control_mode_deferred", "requested", kind.String(), "target", int(d.target))
		return false
	}
	if kind != d.control {
		d.control = kind
		d.activate()
	}
	return true
}

// Update advances the view by one frame of dt seconds.
func (d *Director) Update(dt float64) {
	if d.mode == ModeFollowing {
		target := d.locator.WorldPosition(d.target)
		desired := r3.Add(target, d.follow.Offset)
		d.view.Position = systems.LerpVec(d.view.Position, desired, d.follow.Fraction)
		d.view.LookAt(target)
		return
	}

	switch d.control {
	case ControlFly:
		d.fly.Update(d.view, dt)
	default:
		d.orbit.Update(d.view)
	}
}

// Mode returns the current mode.
func (d *Director) Mode() Mode {
	return d.mode
}

// Control returns the controller driving free mode.
func (d *Director) Control() ControlKind {
	return d.control
}

// Requested returns the most recently requested controller.
func (d *Director) Requested() ControlKind {
	return d.chosen
}

// Target returns the followed node, or NoNode in free mode.
func (d *Director) Target() systems.NodeID {
	return d.target
}

// View returns the driven view.
func (d *Director) View() *View {
	return d.view
}

// Orbit returns the orbit controller.
func (d *Director) Orbit() *OrbitControl {
	return d.orbit
}

// Fly returns the fly controller.
func (d *Director) Fly() *FlyControl {
	return d.fly
}

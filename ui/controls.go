package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/camera"
)

// ControlsState is what the controls panel needs to draw.
type ControlsState struct {
	Requested camera.ControlKind
	Following bool
	Target    string
}

// ControlsAction reports the widgets the user activated this frame.
type ControlsAction struct {
	Reset          bool
	ControlChanged bool
	Control        camera.ControlKind
}

// ControlsPanel renders the top-left panel with the camera controls and
// overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Bounds returns the rectangle covered by the panel at its last draw.
func (c *ControlsPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
}

// Draw renders the panel and returns the actions taken.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsAction {
	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight

	c.height = pad*2 + line + 4 + line + 26 + line + 34 + line + int32(len(overlays.All()))*(line+4)
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + pad
	y := r.DrawTitle(x, c.y+pad, "Orrery")
	inner := float32(c.width - pad*2)

	var action ControlsAction

	y = r.DrawSectionHeader(x, y, "Camera")
	active := gui.ToggleGroup(rl.Rectangle{X: float32(x), Y: float32(y), Width: inner / 2, Height: 22}, "Orbit;Fly", int32(state.Requested))
	if kind := camera.ControlKind(active); kind != state.Requested {
		action.ControlChanged = true
		action.Control = kind
	}
	y += 26

	if state.Following {
		y = r.DrawMuted(x, y, "Following "+state.Target)
	} else {
		y = r.DrawMuted(x, y, "Free camera")
	}

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: 28}, "Reset view (Esc)") {
		action.Reset = true
	}
	y += 34

	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, desc := range overlays.All() {
		bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: 14, Height: 14}
		checked := gui.CheckBox(bounds, desc.Name+" ["+desc.KeyLabel+"]", overlays.IsEnabled(desc.ID))
		overlays.SetEnabled(desc.ID, checked)
		y += line + 4
	}

	return action
}

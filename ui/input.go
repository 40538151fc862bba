package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/game"
)

const (
	// doubleClickWindow is the longest gap between two clicks of a double-click, in seconds.
	doubleClickWindow = 0.3
	// dragThreshold is how far the pointer may move before a press stops counting as a click, in pixels.
	dragThreshold = 4
)

// Input translates raylib mouse and keyboard state into orrery actions.
type Input struct {
	overlays *OverlayRegistry

	pressPos  rl.Vector2
	dragged   float32
	lastClick float64
	lastPos   rl.Vector2
	hasClick  bool
}

// NewInput creates an input handler that toggles the given overlays.
func NewInput(overlays *OverlayRegistry) *Input {
	return &Input{overlays: overlays}
}

// Update processes one frame of input. blocked lists screen regions owned
// by UI panels; pointer presses inside them never reach the scene.
func (in *Input) Update(g *game.Game, blocked ...rl.Rectangle) {
	in.handleKeys(g)

	mouse := rl.GetMousePosition()
	overUI := false
	for _, b := range blocked {
		if rl.CheckCollisionPointRec(mouse, b) {
			overUI = true
			break
		}
	}

	director := g.Director()
	free := director.Mode() == camera.ModeFree
	fly := director.Control() == camera.ControlFly

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overUI {
		in.pressPos = mouse
		in.dragged = 0
	}

	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !overUI {
		in.dragged += abs32(delta.X) + abs32(delta.Y)
		if free && !fly {
			director.Orbit().Rotate(float64(delta.X), float64(delta.Y))
		}
	}
	if free && fly {
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !overUI {
			director.Fly().Look(float64(delta.X), float64(delta.Y))
		} else {
			director.Fly().Look(0, 0)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && free && !fly && !overUI {
		director.Orbit().Zoom(float64(wheel))
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) && !overUI && in.dragged < dragThreshold {
		in.click(g, mouse)
	}
}

// click resolves a completed click, promoting it to a double-click when
// it lands close to the previous one in time and space.
func (in *Input) click(g *game.Game, pos rl.Vector2) {
	x, y := camera.ScreenToNDC(float64(pos.X), float64(pos.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	now := rl.GetTime()

	if in.hasClick && now-in.lastClick <= doubleClickWindow &&
		abs32(pos.X-in.lastPos.X)+abs32(pos.Y-in.lastPos.Y) < dragThreshold*2 {
		// The first click already picked; the second only spawns
		in.hasClick = false
		g.HandleDoubleClick(x, y)
		return
	}

	in.hasClick = true
	in.lastClick = now
	in.lastPos = pos
	g.HandleClick(x, y)
}

func (in *Input) handleKeys(g *game.Game) {
	if rl.IsKeyPressed(rl.KeyEscape) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyX) {
		g.ClearComets()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		next := camera.ControlFly
		if g.Director().Requested() == camera.ControlFly {
			next = camera.ControlOrbit
		}
		g.SetControlMode(next)
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		in.overlays.HandleKeyPress(key)
	}

	fly := g.Director().Fly()
	fly.Move = r3.Vec{
		X: axis(rl.KeyD, rl.KeyA),
		Y: axis(rl.KeyR, rl.KeyF),
		Z: axis(rl.KeyW, rl.KeyS),
	}
	fly.Roll = axis(rl.KeyE, rl.KeyQ)
}

// axis returns +1, -1 or 0 for a pair of opposing held keys.
func axis(pos, neg int32) float64 {
	v := 0.0
	if rl.IsKeyDown(pos) {
		v++
	}
	if rl.IsKeyDown(neg) {
		v--
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// KeyHelp is the key reference shown in the HUD.
const KeyHelp = "drag: look | wheel: zoom | WASD/RF/QE: fly | C: control | X: clear comets | Esc: reset | O T B L P: overlays"

package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/game"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/ui"
)

var background = rl.Color{R: 4, G: 6, B: 12, A: 255}

// app holds the windowed front end: scene renderer, panels and input.
type app struct {
	game     *game.Game
	scene    *renderer.SceneRenderer
	palette  *renderer.Palette
	overlays *ui.OverlayRegistry
	input    *ui.Input
	controls *ui.ControlsPanel
	info     *ui.InfoPanel
	hud      *ui.HUD
	perf     *ui.PerfPanel
}

func newApp(g *game.Game, seed int64) *app {
	overlays := ui.NewOverlayRegistry()
	return &app{
		game:     g,
		scene:    renderer.NewSceneRenderer(seed, g.Config().Camera.Far*0.8),
		palette:  renderer.NewPalette(),
		overlays: overlays,
		input:    ui.NewInput(overlays),
		controls: ui.NewControlsPanel(10, 10, 220),
		info:     ui.NewInfoPanel(300),
		hud:      ui.NewHUD(),
		perf:     ui.NewPerfPanel(10, 300),
	}
}

// infoData collects the info panel contents for the current selection.
func (a *app) infoData() ui.InfoData {
	data := ui.InfoData{Info: a.game.Info()}
	if sel, ok := a.game.Selected(); ok {
		data.Selected = true
		data.Color = a.palette.Color(a.game.Bodies()[sel.Body].Color)
	}
	return data
}

// blocked returns the screen regions owned by panels.
func (a *app) blocked() []rl.Rectangle {
	return []rl.Rectangle{
		a.controls.Bounds(),
		a.info.Bounds(int32(rl.GetScreenWidth()), a.infoData()),
	}
}

func (a *app) draw() {
	g := a.game
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(background)

	a.scene.Draw(g, renderer.Layers{
		Orbits: a.overlays.IsEnabled(ui.OverlayOrbits),
		Trails: a.overlays.IsEnabled(ui.OverlayTrails),
		Stars:  a.overlays.IsEnabled(ui.OverlayStars),
		Labels: a.overlays.IsEnabled(ui.OverlayLabels),
	})

	director := g.Director()
	action := a.controls.Draw(ui.ControlsState{
		Requested: director.Requested(),
		Following: director.Mode() == camera.ModeFollowing,
		Target:    g.SelectedName(),
	}, a.overlays)
	if action.ControlChanged {
		g.SetControlMode(action.Control)
	}
	if action.Reset {
		g.Reset()
	}

	a.info.Draw(w, a.infoData())

	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perf.SetPosition(10, int32(a.controls.Bounds().Height)+20)
		a.perf.Draw(g.PerfStats(), g.Systems())
	}

	a.hud.Draw(h, ui.HUDData{
		FPS:        rl.GetFPS(),
		Tick:       g.Tick(),
		SimTime:    g.SimTime(),
		Comets:     g.Comets().Len(),
		CameraMode: director.Mode().String(),
		Control:    director.Control().String(),
	})
	a.hud.DrawControls(w, h, ui.KeyHelp)

	rl.EndDrawing()
}

func (a *app) unload() {
	a.scene.Unload()
}

package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/systems"
	"github.com/pthm-cable/orrery/telemetry"
)

// HUDData contains the status line values.
type HUDData struct {
	FPS        int32
	Tick       int32
	SimTime    float64
	Comets     int
	CameraMode string
	Control    string
}

// HUD renders the bottom status line and key help.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the status line along the bottom of the screen.
func (h *HUD) Draw(screenHeight int32, data HUDData) {
	text := fmt.Sprintf("FPS %d | tick %d | t=%.1f | comets %d | camera %s (%s)",
		data.FPS, data.Tick, data.SimTime, data.Comets, data.CameraMode, data.Control)
	rl.DrawText(text, 10, screenHeight-22, h.renderer.Theme.FontSize, h.renderer.Theme.ValueColor)
}

// DrawControls renders the key help in the bottom-right corner.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	w := rl.MeasureText(controls, h.renderer.Theme.FontSize)
	rl.DrawText(controls, screenWidth-w-10, screenHeight-22, h.renderer.Theme.FontSize, h.renderer.Theme.MutedColor)
}

// PerfPanel displays per-phase timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    260,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, one section per system category.
// Systems without a frame phase are listed as on demand.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, reg *systems.SystemRegistry) {
	r := p.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight

	cats := reg.Categories()
	height := pad*2 + line + 4 + line*2
	for _, cat := range cats {
		height += line
		for _, info := range reg.InCategory(cat) {
			if info.Timed {
				height += line + 2
			} else {
				height += line
			}
		}
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := r.DrawTitle(x, p.y+pad, "Performance")
	y = r.DrawLabelValue(x, y, "Avg tick", fmt.Sprintf("%.2f ms", float64(stats.AvgTickDuration)/float64(time.Millisecond)))
	y = r.DrawLabelValue(x, y, "Ticks/sec", fmt.Sprintf("%.0f", stats.TicksPerSecond))

	for _, cat := range cats {
		y = r.DrawSectionHeader(x, y, cat)
		for _, info := range reg.InCategory(cat) {
			if !info.Timed {
				y = r.DrawLabelValue(x, y, info.Name, "on demand")
				continue
			}
			y = r.DrawBar(x, y, info.Name, float32(stats.PhasePct[info.ID]/100), p.width-pad*2)
		}
	}
}
